package laz

// FileMetadata is the summary view of a LAZ file's header and compression
// parameters, the shape intended for JSON serialisation via WriteJson.
type FileMetadata struct {
	URI              string
	Version          string
	PointDataFormat  byte
	NumPoints        uint64
	NumChunks        int
	ChunkSize        uint32
	Scale            [3]float64
	Offset           [3]float64
	Bounds           Bounds
	Compressor       uint16
	Items            []LaszipItem
	PointsByReturn   [5]uint32
}

// Bounds is the point cloud's axis-aligned extent, taken directly from the
// header's min/max fields.
type Bounds struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Summary builds a FileMetadata snapshot from the decoded header and
// LASzip VLR, suitable for a quick inventory of a file without decoding any
// points.
func (f *LazFile) Summary() FileMetadata {
	h := f.header
	return FileMetadata{
		URI:             f.Uri,
		Version:         versionString(h),
		PointDataFormat: h.Point_data_format_id,
		NumPoints:       f.numPoints,
		NumChunks:       f.chunks.count(),
		ChunkSize:       f.ChunkSize(),
		Scale:           [3]float64{h.X_scale_factor, h.Y_scale_factor, h.Z_scale_factor},
		Offset:          [3]float64{h.X_offset, h.Y_offset, h.Z_offset},
		Bounds: Bounds{
			MinX: h.Min_x, MinY: h.Min_y, MinZ: h.Min_z,
			MaxX: h.Max_x, MaxY: h.Max_y, MaxZ: h.Max_z,
		},
		Compressor:     f.vlr.Compressor,
		Items:          f.vlr.Items,
		PointsByReturn: h.Number_of_points_by_return,
	}
}

func versionString(h *Header) string {
	major := byte('0') + h.Version_major
	minor := byte('0') + h.Version_minor
	return string([]byte{major, '.', minor})
}
