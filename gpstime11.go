package laz

import "github.com/go-laz/laz/rangecoder"

const (
	gpstimeMulti       = 500
	gpstimeMultiMinus  = -10
	gpstimeMultiTotal  = gpstimeMulti - gpstimeMultiMinus + 6
	gpstimeUnchanged   = gpstimeMulti - gpstimeMultiMinus + 1
	gpstimeCodeFull    = gpstimeMulti - gpstimeMultiMinus + 2
)

// gpstime11Decoder reconstructs GPSTIME11 records: the raw bit pattern of
// the point's GPS time, predicted from up to four concurrently tracked
// time sequences (LASzip's "multi" scheme handles the common case of
// several interleaved return pulses whose times diverge by a roughly
// constant step).
type gpstime11Decoder struct {
	dec *rangecoder.Decoder

	mGpstimeMulti *rangecoder.SymbolModel
	mGpstime0Diff *rangecoder.SymbolModel
	icGpstime     *rangecoder.IntegerCompressor

	last, next          int
	lastGpstime         [4]uint64
	lastGpstimeDiff     [4]int32
	multiExtremeCounter [4]int
}

func newGPSTime11Decoder(dec *rangecoder.Decoder) *gpstime11Decoder {
	return &gpstime11Decoder{
		dec:           dec,
		mGpstimeMulti: rangecoder.NewSymbolModel(gpstimeMultiTotal),
		mGpstime0Diff: rangecoder.NewSymbolModel(6),
		icGpstime:     rangecoder.NewIntegerCompressor(dec, 32, 9, 0, 0),
	}
}

// init resets predictive state from the raw first GPS time of a new chunk.
func (g *gpstime11Decoder) init(first GPSTime11) {
	g.last = 0
	g.next = 0
	g.lastGpstimeDiff = [4]int32{}
	g.multiExtremeCounter = [4]int{}

	g.mGpstimeMulti.Init()
	g.mGpstime0Diff.Init()
	g.icGpstime.InitDecompressor()

	g.lastGpstime = [4]uint64{uint64(first), 0, 0, 0}
}

func (g *gpstime11Decoder) read() (GPSTime11, error) {
	if g.lastGpstimeDiff[g.last] == 0 {
		if err := g.readLastDiffZero(); err != nil {
			return 0, err
		}
	} else {
		if err := g.readLastDiffNonzero(); err != nil {
			return 0, err
		}
	}
	return GPSTime11(g.lastGpstime[g.last]), nil
}

func (g *gpstime11Decoder) readLastDiffZero() error {
	multi, err := g.dec.DecodeSymbol(g.mGpstime0Diff)
	if err != nil {
		return err
	}

	switch {
	case multi == 1:
		val, err := g.icGpstime.Decompress(0, 0)
		if err != nil {
			return err
		}
		g.lastGpstimeDiff[g.last] = int32(val)
		g.lastGpstime[g.last] += uint64(int32(val))
		g.multiExtremeCounter[g.last] = 0
	case multi == 2:
		g.next = (g.next + 1) & 3
		hi, err := g.icGpstime.Decompress(uint32(g.lastGpstime[g.last]>>32), 8)
		if err != nil {
			return err
		}
		lo, err := g.dec.ReadInt()
		if err != nil {
			return err
		}
		g.lastGpstime[g.next] = (uint64(hi) << 32) | uint64(lo)

		g.last = g.next
		g.lastGpstimeDiff[g.last] = 0
		g.multiExtremeCounter[g.last] = 0
	case multi > 2:
		g.last = (g.last + multi - 2) & 3
		return g.read2()
	}

	return nil
}

// read2 re-enters the zero/nonzero dispatch after a sequence rotation,
// mirroring the reference reader's recursive re-entry into read().
func (g *gpstime11Decoder) read2() error {
	_, err := g.read()
	return err
}

func (g *gpstime11Decoder) readLastDiffNonzero() error {
	multi, err := g.dec.DecodeSymbol(g.mGpstimeMulti)
	if err != nil {
		return err
	}

	switch {
	case multi == 1:
		pred := g.lastGpstimeDiff[g.last]
		val, err := g.icGpstime.Decompress(uint32(pred), 1)
		if err != nil {
			return err
		}
		g.lastGpstime[g.last] += uint64(int32(val))
		g.multiExtremeCounter[g.last] = 0

	case multi < gpstimeUnchanged:
		var diff int32
		switch {
		case multi == 0:
			v, err := g.icGpstime.Decompress(0, 7)
			if err != nil {
				return err
			}
			diff = int32(v)
			g.multiExtremeCounter[g.last]++
			if g.multiExtremeCounter[g.last] > 3 {
				g.lastGpstimeDiff[g.last] = diff
				g.multiExtremeCounter[g.last] = 0
			}
		case multi < gpstimeMulti:
			pred := int32(multi) * g.lastGpstimeDiff[g.last]
			ctx := 2
			if multi >= 10 {
				ctx = 3
			}
			v, err := g.icGpstime.Decompress(uint32(pred), ctx)
			if err != nil {
				return err
			}
			diff = int32(v)
		case multi == gpstimeMulti:
			pred := int32(gpstimeMulti) * g.lastGpstimeDiff[g.last]
			v, err := g.icGpstime.Decompress(uint32(pred), 4)
			if err != nil {
				return err
			}
			diff = int32(v)
			g.multiExtremeCounter[g.last]++
			if g.multiExtremeCounter[g.last] > 3 {
				g.lastGpstimeDiff[g.last] = diff
				g.multiExtremeCounter[g.last] = 0
			}
		default:
			reflected := gpstimeMulti - multi
			if reflected > gpstimeMultiMinus {
				pred := int32(reflected) * g.lastGpstimeDiff[g.last]
				v, err := g.icGpstime.Decompress(uint32(pred), 5)
				if err != nil {
					return err
				}
				diff = int32(v)
			} else {
				pred := int32(gpstimeMultiMinus) * g.lastGpstimeDiff[g.last]
				v, err := g.icGpstime.Decompress(uint32(pred), 6)
				if err != nil {
					return err
				}
				diff = int32(v)
				g.multiExtremeCounter[g.last]++
				if g.multiExtremeCounter[g.last] > 3 {
					g.lastGpstimeDiff[g.last] = diff
					g.multiExtremeCounter[g.last] = 0
				}
			}
		}
		g.lastGpstime[g.last] += uint64(diff)

	case multi == gpstimeCodeFull:
		g.next = (g.next + 1) & 3
		pred := uint32(g.lastGpstime[g.last] >> 32)
		hi, err := g.icGpstime.Decompress(pred, 8)
		if err != nil {
			return err
		}
		lo, err := g.dec.ReadInt()
		if err != nil {
			return err
		}
		g.lastGpstime[g.next] = (uint64(hi) << 32) | uint64(lo)

		g.last = g.next
		g.lastGpstimeDiff[g.last] = 0
		g.multiExtremeCounter[g.last] = 0

	case multi > gpstimeCodeFull:
		g.last = (g.last + multi - gpstimeCodeFull) & 3
		return g.read2()
	}

	return nil
}
