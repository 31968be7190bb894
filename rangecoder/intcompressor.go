package rangecoder

// IntegerCompressor decodes signed residuals of configurable bit-width using
// context-indexed adaptive models: a per-context "k-selector" symbol model
// chooses a magnitude class, and a per-magnitude model (or raw bits, for
// wide classes) supplies the correction itself.
type IntegerCompressor struct {
	dec *Decoder

	bits     int
	contexts int
	bitsHigh int

	corrBits  int
	corrRange uint32
	corrMin   int32
	corrMax   int32

	mBits         []*SymbolModel
	mCorrectorBit *BitModel
	mCorrectorSym []*SymbolModel // index 1..corrBits-1; index 0 unused

	// K is the most recently decoded magnitude class, exposed for context
	// chaining (e.g. POINT10's dy/dz contexts derive from dx/dy's k).
	K int
}

// NewIntegerCompressor configures an IntegerCompressor. bitsHigh defaults to
// 8 when 0 is passed. If rangeArg is nonzero it overrides bits to derive the
// corrector range from an arbitrary (non-power-of-two) bound.
func NewIntegerCompressor(dec *Decoder, bits, contexts, bitsHigh, rangeArg int) *IntegerCompressor {
	if bitsHigh == 0 {
		bitsHigh = 8
	}

	ic := &IntegerCompressor{
		dec:      dec,
		bits:     bits,
		contexts: contexts,
		bitsHigh: bitsHigh,
	}

	switch {
	case rangeArg != 0:
		r := rangeArg
		corrBits := 0
		for r != 0 {
			r >>= 1
			corrBits++
		}
		corrRange := uint32(rangeArg)
		if corrRange == (1 << uint(corrBits-1)) {
			corrBits--
		}
		ic.corrBits = corrBits
		ic.corrRange = corrRange
		ic.corrMin = -int32(corrRange) / 2
		ic.corrMax = ic.corrMin + int32(corrRange) - 1
	case bits > 0 && bits < 32:
		ic.corrBits = bits
		ic.corrRange = 1 << uint(bits)
		ic.corrMin = -int32(ic.corrRange) / 2
		ic.corrMax = ic.corrMin + int32(ic.corrRange) - 1
	default:
		ic.corrBits = 32
		ic.corrRange = 0
		ic.corrMin = -0x7FFFFFFF
		ic.corrMax = 0x7FFFFFFF
	}

	return ic
}

// InitDecompressor lazily allocates the k-selector and magnitude models on
// first call, then (re-)initializes every model. Called at every chunk
// boundary.
func (ic *IntegerCompressor) InitDecompressor() {
	if ic.mBits == nil {
		ic.mBits = make([]*SymbolModel, ic.contexts)
		for i := range ic.mBits {
			ic.mBits[i] = NewSymbolModel(ic.corrBits + 1)
		}

		ic.mCorrectorBit = &BitModel{}

		ic.mCorrectorSym = make([]*SymbolModel, ic.corrBits)
		for i := 1; i < ic.corrBits; i++ {
			if i <= ic.bitsHigh {
				ic.mCorrectorSym[i] = NewSymbolModel(1 << uint(i))
			} else {
				ic.mCorrectorSym[i] = NewSymbolModel(1 << uint(ic.bitsHigh))
			}
		}
	}

	for _, m := range ic.mBits {
		m.Init()
	}

	ic.mCorrectorBit.Init()
	for i := 1; i < ic.corrBits; i++ {
		ic.mCorrectorSym[i].Init()
	}
}

func (ic *IntegerCompressor) readCorrector(m *SymbolModel) (int32, error) {
	k, err := ic.dec.DecodeSymbol(m)
	if err != nil {
		return 0, err
	}
	ic.K = k

	if k == 0 {
		bit, err := ic.dec.DecodeBit(ic.mCorrectorBit)
		if err != nil {
			return 0, err
		}
		return int32(bit), nil
	}

	if k >= 32 {
		return ic.corrMin, nil
	}

	c, err := ic.dec.DecodeSymbol(ic.mCorrectorSym[k])
	if err != nil {
		return 0, err
	}

	if k > ic.bitsHigh {
		k1 := uint(k - ic.bitsHigh)
		raw, err := ic.dec.ReadBits(k1)
		if err != nil {
			return 0, err
		}
		c = (c << k1) | int(raw)
	}

	if c >= (1 << uint(k-1)) {
		c++
	} else {
		c -= (1 << uint(k)) - 1
	}

	return int32(c), nil
}

// Decompress reconstructs a value from a prediction and the next decoded
// corrector, reducing the result into [0, corrRange) when corrRange is
// nonzero. When corrRange is zero (32-bit correctors), the conversion back
// to uint32 performs the equivalent 32-bit wraparound.
func (ic *IntegerCompressor) Decompress(pred uint32, context int) (uint32, error) {
	c, err := ic.readCorrector(ic.mBits[context])
	if err != nil {
		return 0, err
	}

	real := int64(pred) + int64(c)

	if ic.corrRange > 0 {
		if real < 0 {
			real += int64(ic.corrRange)
		} else if real >= int64(ic.corrRange) {
			real -= int64(ic.corrRange)
		}
	}

	return uint32(real), nil
}
