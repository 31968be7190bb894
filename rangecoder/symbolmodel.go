package rangecoder

const symbolModelLengthShift = 15
const symbolModelMaxCount = 1 << symbolModelLengthShift

// SymbolModel is an adaptive n-ary probability model, 2 <= n <= 2048. Models
// with more than 16 symbols grow a decoder lookup table to accelerate
// DecodeSymbol; smaller alphabets are bisected directly.
type SymbolModel struct {
	numSymbols int
	lastSymbol int

	distribution []uint32
	decoderTable []uint32
	symbolCount  []uint32

	tableShift uint32
	tableSize  int

	totalCount         uint32
	updateCycle        uint32
	symbolsUntilUpdate uint32
}

// NewSymbolModel allocates a model for the given alphabet size. Call Init
// before first use.
func NewSymbolModel(numSymbols int) *SymbolModel {
	if numSymbols < 2 || numSymbols > 2048 {
		panic("rangecoder: invalid number of symbols")
	}

	m := &SymbolModel{numSymbols: numSymbols, lastSymbol: numSymbols - 1}

	if numSymbols > 16 {
		tableBits := uint32(3)
		for numSymbols > (1 << (tableBits + 2)) {
			tableBits++
		}
		m.tableShift = symbolModelLengthShift - tableBits
		m.tableSize = 1 << tableBits
		m.decoderTable = make([]uint32, m.tableSize+2)
	}

	m.distribution = make([]uint32, numSymbols)
	m.symbolCount = make([]uint32, numSymbols)

	return m
}

// Init resets the model to uniform symbol counts and rebuilds the
// distribution and decoder table.
func (m *SymbolModel) Init() {
	m.totalCount = 0
	for i := range m.symbolCount {
		m.symbolCount[i] = 1
	}
	m.updateCycle = uint32(m.numSymbols)
	m.update()
	m.symbolsUntilUpdate = uint32(m.numSymbols+6) >> 1
	m.updateCycle = m.symbolsUntilUpdate
}

func (m *SymbolModel) hasDecoderTable() bool {
	return m.decoderTable != nil
}

// update rescales counts (if over threshold), rebuilds the cumulative
// distribution, and rebuilds the decoder table.
func (m *SymbolModel) update() {
	m.totalCount += m.updateCycle
	if m.totalCount > symbolModelMaxCount {
		m.totalCount = 0
		for i := range m.symbolCount {
			m.symbolCount[i] = (m.symbolCount[i] + 1) >> 1
			m.totalCount += m.symbolCount[i]
		}
	}

	sum := uint32(0)
	s := 0
	scale := uint32(0x80000000) / m.totalCount

	if m.tableSize == 0 {
		for k := 0; k < m.numSymbols; k++ {
			m.distribution[k] = (scale * sum) >> (31 - symbolModelLengthShift)
			sum += m.symbolCount[k]
		}
	} else {
		for k := 0; k < m.numSymbols; k++ {
			m.distribution[k] = (scale * sum) >> (31 - symbolModelLengthShift)
			sum += m.symbolCount[k]
			w := int(m.distribution[k] >> m.tableShift)
			for s < w {
				s++
				m.decoderTable[s] = uint32(k - 1)
			}
		}
		m.decoderTable[0] = 0
		for s <= m.tableSize {
			s++
			m.decoderTable[s] = uint32(m.numSymbols - 1)
		}
	}

	m.updateCycle = (5 * m.updateCycle) >> 2
	maxCycle := uint32(m.numSymbols+6) << 3
	if m.updateCycle > maxCycle {
		m.updateCycle = maxCycle
	}
	m.symbolsUntilUpdate = m.updateCycle
}

func (m *SymbolModel) incrementSymbolCount(sym int) {
	m.symbolCount[sym]++
	m.symbolsUntilUpdate--
	if m.symbolsUntilUpdate == 0 {
		m.update()
	}
}
