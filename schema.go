package laz

import (
	"errors"
	"math"
	"reflect"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	stgpsr "github.com/yuin/stagparser"
)

var ErrCreateSchemaTdb = errors.New("laz: error creating tiledb schema")

// pointBatch is the columnar, struct-of-slices shape setStructFieldBuffers
// expects: one slice per TileDB attribute, all the same length. Field
// order and tiledb/filters tags drive both schema creation and buffer
// binding; newPointBatch and append fill each field by name, so a new
// attribute is also added there.
type pointBatch struct {
	X []float64 `tiledb:"dtype=float64,ftype=dim"`
	Y []float64 `tiledb:"dtype=float64,ftype=dim"`

	Z              []float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	Intensity      []uint16  `tiledb:"dtype=uint16,ftype=attr" filters:"bysh,zstd(level=16)"`
	ReturnNum      []uint8   `tiledb:"dtype=uint8,ftype=attr" filters:"zstd(level=16)"`
	NumReturns     []uint8   `tiledb:"dtype=uint8,ftype=attr" filters:"zstd(level=16)"`
	Classification []uint8   `tiledb:"dtype=uint8,ftype=attr" filters:"zstd(level=16)"`
	ScanAngleRank  []uint8   `tiledb:"dtype=uint8,ftype=attr" filters:"zstd(level=16)"`
	PointSourceID  []uint16  `tiledb:"dtype=uint16,ftype=attr" filters:"bysh,zstd(level=16)"`
	GPSTime        []float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
}

// newPointBatch allocates a pointBatch with every slice initialised to the
// given capacity, avoiding reallocation while a batch's points accumulate.
func newPointBatch(capacity int) *pointBatch {
	return &pointBatch{
		X:              make([]float64, 0, capacity),
		Y:              make([]float64, 0, capacity),
		Z:              make([]float64, 0, capacity),
		Intensity:      make([]uint16, 0, capacity),
		ReturnNum:      make([]uint8, 0, capacity),
		NumReturns:     make([]uint8, 0, capacity),
		Classification: make([]uint8, 0, capacity),
		ScanAngleRank:  make([]uint8, 0, capacity),
		PointSourceID:  make([]uint16, 0, capacity),
		GPSTime:        make([]float64, 0, capacity),
	}
}

func (b *pointBatch) append(r Record) {
	b.X = append(b.X, r.X)
	b.Y = append(b.Y, r.Y)
	b.Z = append(b.Z, r.Z)
	b.Intensity = append(b.Intensity, r.Intensity)
	b.ReturnNum = append(b.ReturnNum, uint8(r.ReturnNum))
	b.NumReturns = append(b.NumReturns, uint8(r.NumReturns))
	b.Classification = append(b.Classification, r.Classification)
	b.ScanAngleRank = append(b.ScanAngleRank, r.ScanAngleRank)
	b.PointSourceID = append(b.PointSourceID, r.PointSourceID)
	b.GPSTime = append(b.GPSTime, r.GPSTime)
}

func (b *pointBatch) len() int { return len(b.X) }

// pointSparseSchema builds a sparse array schema for decoded LAZ points,
// dimensioned on X/Y with Hilbert cell ordering so spatially nearby points
// land in the same tiles, mirroring the bathymetry beam array layout this
// decoder's ambient stack is drawn from.
func pointSparseSchema(ctx *tiledb.Context, bounds Bounds) (*tiledb.ArraySchema, error) {
	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	defer domain.Free()

	tileSz := 1000.0
	minF64 := math.MaxFloat64 * -1

	xdim, err := tiledb.NewDimension(ctx, "X", tiledb.TILEDB_FLOAT64, []float64{minF64, math.MaxFloat64}, tileSz)
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	defer xdim.Free()

	ydim, err := tiledb.NewDimension(ctx, "Y", tiledb.TILEDB_FLOAT64, []float64{minF64, math.MaxFloat64}, tileSz)
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	defer ydim.Free()

	dimFilters, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	defer dimFilters.Free()

	dimFilt, err := ZstdFilter(ctx, int32(16))
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	defer dimFilt.Free()

	if err := AddFilters(dimFilters, dimFilt); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	if err := xdim.SetFilterList(dimFilters); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	if err := ydim.SetFilterList(dimFilters); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}

	if err := domain.AddDimensions(xdim, ydim); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}

	schema, err := tiledb.NewArraySchema(ctx, tiledb.TILEDB_SPARSE)
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}

	if err := schema.SetDomain(domain); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	if err := schema.SetCapacity(100_000); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	if err := schema.SetCellOrder(tiledb.TILEDB_HILBERT); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	if err := schema.SetTileOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	if err := schema.SetAllowsDups(true); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}

	if err := schemaAttrs(&pointBatch{}, schema, ctx); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}

	if err := schema.Check(); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}

	return schema, nil
}

// fieldNames lists the exported field names of a struct, in declaration
// order, matching the order schemaAttrs attaches attributes in.
func fieldNames(t any) []string {
	names := make([]string, 0, 10)
	btype := reflect.TypeOf(t).Elem()
	for i := 0; i < btype.NumField(); i++ {
		if btype.Field(i).IsExported() {
			names = append(names, btype.Field(i).Name)
		}
	}
	return names
}

// schemaAttrs walks a struct's tiledb/filters tags and attaches the
// corresponding attribute to schema, skipping fields tagged as dimensions.
func schemaAttrs(t any, schema *tiledb.ArraySchema, ctx *tiledb.Context) error {
	filtDefs, _ := stgpsr.ParseStruct(t, "filters")
	tdbDefs, _ := stgpsr.ParseStruct(t, "tiledb")

	for _, name := range fieldNames(t) {
		fieldFiltDefs := filtDefs[name]

		fieldTdbDefs := make(map[string]stgpsr.Definition)
		for _, v := range tdbDefs[name] {
			fieldTdbDefs[v.Name()] = v
		}

		def, ok := fieldTdbDefs["ftype"]
		if !ok {
			return errors.Join(ErrCreateAttrTdb, errors.New("ftype tag not found"))
		}
		ftype, _ := def.Attribute("ftype")
		if ftype == "dim" {
			continue
		}

		if err := CreateAttr(name, fieldFiltDefs, fieldTdbDefs, schema, ctx); err != nil {
			return errors.Join(ErrCreateAttrTdb, err)
		}
	}

	return nil
}
