package laz

import (
	"io"

	tiledb "github.com/TileDB-Inc/TileDB-Go"

	"github.com/go-laz/laz/rangecoder"
)

// Tell is a small helper function for telling the current position within a
// binary file opened for reading.
func Tell(stream Stream) (int64, error) {
	pos, err := stream.Seek(0, 1)

	return pos, err
}

// LazFile constains the relevant information for an opened LAZ file to
// enable streamed, chunk-independent point reading.
type LazFile struct {
	Uri      string
	filesize uint64
	config   *tiledb.Config
	ctx      *tiledb.Context
	vfs      *tiledb.VFS
	handler  *tiledb.VFSfh
	Stream

	header *Header
	vlr    *LaszipVLR
	chunks chunkTable

	chunkSize uint64
	numPoints uint64

	chunkIndex    int
	curChunkSize  uint64
	pointsInChunk uint64
	pointIndex    uint64
	seedPending   bool

	rdec   *rangecoder.Decoder
	p10dec *point10Decoder
	gpsDec *gpstime11Decoder

	seedPoint Point10
	seedGPS   GPSTime11
}

// OpenLaz opens a LAZ file for streamed IO, decodes its header, LASzip VLR,
// and chunk table, and positions the returned LazFile at the first point of
// the first chunk.
func OpenLaz(laz_uri string, config_uri string, in_memory bool) (*LazFile, error) {
	var (
		f      LazFile
		config *tiledb.Config
		err    error
	)

	f.Uri = laz_uri

	if config_uri == "" {
		config, err = tiledb.NewConfig()
		if err != nil {
			return nil, err
		}
	} else {
		config, err = tiledb.LoadConfig(config_uri)
		if err != nil {
			return nil, err
		}
	}
	f.config = config

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return nil, err
	}
	f.ctx = ctx

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		return nil, err
	}
	f.vfs = vfs

	handler, err := vfs.Open(laz_uri, tiledb.TILEDB_VFS_READ)
	if err != nil {
		return nil, err
	}
	f.handler = handler

	filesize, err := vfs.FileSize(laz_uri)
	if err != nil {
		return nil, err
	}
	f.filesize = filesize

	stream, err := GenericStream(handler, filesize, in_memory)
	if err != nil {
		return nil, err
	}
	f.Stream = stream

	if err := f.init(); err != nil {
		return nil, err
	}

	return &f, nil
}

// OpenLazStream builds a LazFile directly from an already-open Stream,
// bypassing TileDB VFS entirely. Used for in-memory and test fixtures.
func OpenLazStream(stream Stream) (*LazFile, error) {
	f := &LazFile{Stream: stream}
	if err := f.init(); err != nil {
		return nil, err
	}
	return f, nil
}

// init decodes the header, LASzip VLR, and chunk table, and loads chunk 0.
func (f *LazFile) init() error {
	header, vlr, err := DecodeHeader(f.Stream)
	if err != nil {
		return err
	}
	f.header = header
	f.vlr = vlr

	if _, err := f.Stream.Seek(int64(header.Offset_to_point_data), 0); err != nil {
		return wrapDecodeError(rangecoder.ErrTruncatedStream, -1, -1)
	}

	chunks, err := readChunkTable(f.Stream)
	if err != nil {
		return err
	}
	f.chunks = chunks

	f.chunkSize = uint64(vlr.Chunk_size)
	f.numPoints = header.NumPoints()
	if vlr.Chunk_size <= 0 {
		f.chunkSize = f.numPoints
	}

	f.rdec = rangecoder.NewDecoder(f.Stream)
	f.p10dec = newPoint10Decoder(f.rdec)
	f.gpsDec = newGPSTime11Decoder(f.rdec)

	return f.loadChunk(0)
}

// Releases the open tiledb file handler connections.
func (f *LazFile) Close() {
	if f.handler == nil {
		return
	}
	f.handler.Close()
	f.vfs.Free()
	f.ctx.Free()
	f.config.Free()
}

// Header exposes the decoded LAS header.
func (f *LazFile) Header() *Header { return f.header }

// LaszipVLR exposes the decoded LASzip compression parameters.
func (f *LazFile) LaszipVLR() *LaszipVLR { return f.vlr }

// NumPoints is the total point count declared by the header.
func (f *LazFile) NumPoints() uint64 { return f.numPoints }

// ChunkSize is the number of points per chunk (the last chunk may hold
// fewer).
func (f *LazFile) ChunkSize() uint32 { return uint32(f.chunkSize) }

// NumChunks is the number of chunks in the chunk table.
func (f *LazFile) NumChunks() int { return f.chunks.count() }

// loadChunk seeks to the start of chunk i, reads its raw seed point, and
// resets the predictive decoders' state for a new chunk.
func (f *LazFile) loadChunk(i int) error {
	if i >= f.chunks.count() {
		return io.EOF
	}

	if _, err := f.Stream.Seek(f.chunks.starts[i], 0); err != nil {
		return wrapDecodeError(rangecoder.ErrTruncatedStream, int64(i)*int64(f.chunkSize), i)
	}

	f.chunkIndex = i
	f.curChunkSize = f.chunkSize
	if i == f.chunks.count()-1 {
		remaining := f.numPoints - uint64(i)*f.chunkSize
		if remaining < f.chunkSize {
			f.curChunkSize = remaining
		}
	}

	var rawBuf [rawPoint10Size + rawGPSTime11Size]byte
	if _, err := f.Stream.Read(rawBuf[:]); err != nil {
		return wrapDecodeError(rangecoder.ErrTruncatedStream, int64(i)*int64(f.chunkSize), i)
	}
	firstPoint := decodeRawPoint10(rawBuf[:rawPoint10Size])
	firstGPS := decodeRawGPSTime11(rawBuf[rawPoint10Size:])
	f.seedPoint = firstPoint
	f.seedGPS = firstGPS

	*f.rdec = *rangecoder.NewDecoder(f.Stream)
	if err := f.rdec.Start(); err != nil {
		return wrapDecodeError(err, int64(i)*int64(f.chunkSize), i)
	}

	f.p10dec.init(firstPoint)
	f.gpsDec.init(firstGPS)
	f.pointsInChunk = 0
	f.seedPending = true

	return nil
}

// Read decodes and returns the next point in file order. It returns io.EOF
// once NumPoints points have been emitted.
func (f *LazFile) Read() (Record, error) {
	if f.pointIndex >= f.numPoints {
		return Record{}, io.EOF
	}

	if f.seedPending {
		return f.emitSeedPoint()
	}

	if f.pointsInChunk >= f.curChunkSize {
		if err := f.loadChunk(f.chunkIndex + 1); err != nil {
			return Record{}, err
		}
		return f.emitSeedPoint()
	}

	p10, err := f.p10dec.read()
	if err != nil {
		return Record{}, wrapDecodeError(err, int64(f.pointIndex), f.chunkIndex)
	}
	gps, err := f.gpsDec.read()
	if err != nil {
		return Record{}, wrapDecodeError(err, int64(f.pointIndex), f.chunkIndex)
	}

	f.pointsInChunk++
	f.pointIndex++

	return newRecord(f.header, p10, gps), nil
}

// emitSeedPoint returns the raw, uncompressed first point a fresh loadChunk
// has just read, advancing the point counters to match. It reads from the
// seed saved at load time rather than the predictive decoders' internal
// state, since init() deliberately zeroes lastItem's intensity as a
// prediction baseline for the first compressed point that follows.
func (f *LazFile) emitSeedPoint() (Record, error) {
	f.seedPending = false
	f.pointsInChunk = 1
	f.pointIndex++
	return newRecord(f.header, f.seedPoint, f.seedGPS), nil
}

// JumpToChunk repositions the reader at the first point of chunk i,
// independent of any chunk read before it.
func (f *LazFile) JumpToChunk(i int) error {
	if i < 0 || i >= f.chunks.count() {
		return &LazError{Kind: ErrInvalidChunkTable, PointIndex: -1, ChunkIndex: i}
	}
	if err := f.loadChunk(i); err != nil {
		return err
	}
	f.pointIndex = uint64(i) * f.chunkSize
	return nil
}
