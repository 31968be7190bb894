package laz

import "github.com/go-laz/laz/rangecoder"

// numberReturnMap selects the medians-and-intensity bucket m for a given
// (num_returns, return_num) pair.
var numberReturnMap = [8][8]int{
	{15, 14, 13, 12, 11, 10, 9, 8},
	{14, 0, 1, 3, 6, 10, 10, 9},
	{13, 1, 2, 4, 7, 11, 11, 10},
	{12, 3, 4, 5, 8, 12, 12, 11},
	{11, 6, 7, 8, 9, 13, 13, 12},
	{10, 10, 11, 12, 13, 14, 14, 13},
	{9, 10, 11, 12, 13, 14, 15, 14},
	{8, 9, 10, 11, 12, 13, 14, 15},
}

// numberReturnLevel selects the height bucket el for a given
// (num_returns, return_num) pair.
var numberReturnLevel = [8][8]int{
	{0, 1, 2, 3, 4, 5, 6, 7},
	{1, 0, 1, 2, 3, 4, 5, 6},
	{2, 1, 0, 1, 2, 3, 4, 5},
	{3, 2, 1, 0, 1, 2, 3, 4},
	{4, 3, 2, 1, 0, 1, 2, 3},
	{5, 4, 3, 2, 1, 0, 1, 2},
	{6, 5, 4, 3, 2, 1, 0, 1},
	{7, 6, 5, 4, 3, 2, 1, 0},
}

// u32ZeroBit0 clears the low bit, used to derive coarse k-context buckets.
func u32ZeroBit0(n int) int { return n &^ 1 }

// u8Fold wraps an int into an unsigned byte, mirroring LASzip's unsigned
// 8-bit addition for scan angle rank deltas.
func u8Fold(n int) byte { return byte(n & 0xFF) }

// point10Decoder reconstructs POINT10 records from the entropy-coded
// stream, one chunk's worth of predictive state at a time.
type point10Decoder struct {
	dec *rangecoder.Decoder

	mChangedValues *rangecoder.SymbolModel
	icIntensity    *rangecoder.IntegerCompressor
	mScanAngleRank [2]*rangecoder.SymbolModel
	icPointSource  *rangecoder.IntegerCompressor

	mBitByte        [256]*rangecoder.SymbolModel
	mClassification [256]*rangecoder.SymbolModel
	mUserData       [256]*rangecoder.SymbolModel

	icDx *rangecoder.IntegerCompressor
	icDy *rangecoder.IntegerCompressor
	icZ  *rangecoder.IntegerCompressor

	lastXDiffMedian5 [16]*rangecoder.StreamingMedian5
	lastYDiffMedian5 [16]*rangecoder.StreamingMedian5

	lastIntensity [16]uint16
	lastHeight    [8]uint32

	lastItem Point10
}

func newPoint10Decoder(dec *rangecoder.Decoder) *point10Decoder {
	return &point10Decoder{
		dec:            dec,
		mChangedValues: rangecoder.NewSymbolModel(64),
		icIntensity:    rangecoder.NewIntegerCompressor(dec, 16, 4, 0, 0),
		mScanAngleRank: [2]*rangecoder.SymbolModel{
			rangecoder.NewSymbolModel(256),
			rangecoder.NewSymbolModel(256),
		},
		icPointSource: rangecoder.NewIntegerCompressor(dec, 16, 1, 0, 0),
		icDx:          rangecoder.NewIntegerCompressor(dec, 32, 2, 0, 0),
		icDy:          rangecoder.NewIntegerCompressor(dec, 32, 22, 0, 0),
		icZ:           rangecoder.NewIntegerCompressor(dec, 32, 20, 0, 0),
	}
}

// init resets all predictive state from the first, uncompressed point of a
// new chunk.
func (p *point10Decoder) init(first Point10) {
	for i := range p.lastXDiffMedian5 {
		p.lastXDiffMedian5[i] = rangecoder.NewStreamingMedian5()
		p.lastYDiffMedian5[i] = rangecoder.NewStreamingMedian5()
	}
	p.lastIntensity = [16]uint16{}
	p.lastHeight = [8]uint32{}

	p.mChangedValues.Init()
	p.icIntensity.InitDecompressor()
	p.mScanAngleRank[0].Init()
	p.mScanAngleRank[1].Init()
	p.icPointSource.InitDecompressor()

	for _, m := range p.mBitByte {
		if m != nil {
			m.Init()
		}
	}
	for _, m := range p.mClassification {
		if m != nil {
			m.Init()
		}
	}
	for _, m := range p.mUserData {
		if m != nil {
			m.Init()
		}
	}

	p.icDx.InitDecompressor()
	p.icDy.InitDecompressor()
	p.icZ.InitDecompressor()

	p.lastItem = first
	p.lastItem.Intensity = 0
}

func (p *point10Decoder) read() (Point10, error) {
	changed, err := p.dec.DecodeSymbol(p.mChangedValues)
	if err != nil {
		return Point10{}, err
	}

	if changed&0b100000 != 0 {
		key := p.lastItem.Bitfield
		m := p.mBitByte[key]
		if m == nil {
			m = rangecoder.NewSymbolModel(256)
			m.Init()
			p.mBitByte[key] = m
		}
		bitfield, err := p.dec.DecodeSymbol(m)
		if err != nil {
			return Point10{}, err
		}
		p.lastItem.Bitfield = byte(bitfield)
	}

	r := p.lastItem.ReturnNum()
	n := p.lastItem.NumReturns()
	m := numberReturnMap[n][r]
	el := numberReturnLevel[n][r]

	if changed&0b10000 != 0 {
		ctx := m
		if ctx > 3 {
			ctx = 3
		}
		v, err := p.icIntensity.Decompress(uint32(p.lastIntensity[m]), ctx)
		if err != nil {
			return Point10{}, err
		}
		p.lastItem.Intensity = uint16(v)
		p.lastIntensity[m] = p.lastItem.Intensity
	} else {
		p.lastItem.Intensity = p.lastIntensity[m]
	}

	if changed&0b1000 != 0 {
		key := p.lastItem.Classification
		cm := p.mClassification[key]
		if cm == nil {
			cm = rangecoder.NewSymbolModel(256)
			cm.Init()
			p.mClassification[key] = cm
		}
		v, err := p.dec.DecodeSymbol(cm)
		if err != nil {
			return Point10{}, err
		}
		p.lastItem.Classification = byte(v)
	}

	if changed&0b100 != 0 {
		f := p.lastItem.ScanDirFlag()
		v, err := p.dec.DecodeSymbol(p.mScanAngleRank[f])
		if err != nil {
			return Point10{}, err
		}
		p.lastItem.Scan_angle_rank = u8Fold(v + int(p.lastItem.Scan_angle_rank))
	}

	if changed&0b10 != 0 {
		key := p.lastItem.User_data
		um := p.mUserData[key]
		if um == nil {
			um = rangecoder.NewSymbolModel(256)
			um.Init()
			p.mUserData[key] = um
		}
		v, err := p.dec.DecodeSymbol(um)
		if err != nil {
			return Point10{}, err
		}
		p.lastItem.User_data = byte(v)
	}

	if changed&0b1 != 0 {
		v, err := p.icPointSource.Decompress(uint32(p.lastItem.Point_source_id), 0)
		if err != nil {
			return Point10{}, err
		}
		p.lastItem.Point_source_id = uint16(v)
	}

	median := p.lastXDiffMedian5[m].Get()
	nIsOne := 0
	if n == 1 {
		nIsOne = 1
	}
	diffX, err := p.icDx.Decompress(uint32(median), nIsOne)
	if err != nil {
		return Point10{}, err
	}
	p.lastItem.X = p.lastItem.X + diffX
	p.lastXDiffMedian5[m].Add(int32(diffX))

	medianY := p.lastYDiffMedian5[m].Get()
	kBits := p.icDx.K
	ctxY := nIsOne
	if kBits < 20 {
		ctxY += u32ZeroBit0(kBits)
	} else {
		ctxY += 20
	}
	diffY, err := p.icDy.Decompress(uint32(medianY), ctxY)
	if err != nil {
		return Point10{}, err
	}
	p.lastItem.Y = p.lastItem.Y + diffY
	p.lastYDiffMedian5[m].Add(int32(diffY))

	kAvg := (p.icDx.K + p.icDy.K) / 2
	ctxZ := nIsOne
	if kAvg < 18 {
		ctxZ += u32ZeroBit0(kAvg)
	} else {
		ctxZ += 18
	}
	z, err := p.icZ.Decompress(p.lastHeight[el], ctxZ)
	if err != nil {
		return Point10{}, err
	}
	p.lastItem.Z = z
	p.lastHeight[el] = z

	return p.lastItem, nil
}
