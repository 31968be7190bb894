package rangecoder

// StreamingMedian5 tracks the median of the 5 most recently added values
// using the linear-scan-with-shift insertion variant (equivalent to, but
// simpler to verify than, the manual branchy insertion some references use).
type StreamingMedian5 struct {
	values [5]int32
	high   bool
}

// NewStreamingMedian5 returns a fresh, zeroed median tracker.
func NewStreamingMedian5() *StreamingMedian5 {
	return &StreamingMedian5{high: true}
}

func (s *StreamingMedian5) addHigh(v int32) {
	i := 4
	for j := 0; j < 5; j++ {
		if v < s.values[j] {
			i = j
			break
		}
	}

	copy(s.values[i+1:], s.values[i:4])
	s.values[i] = v

	if i > 2 {
		s.high = false
	}
}

func (s *StreamingMedian5) addLow(v int32) {
	i := 0
	for j := 4; j >= 0; j-- {
		if v > s.values[j] {
			i = j
			break
		}
	}

	copy(s.values[:i], s.values[1:i+1])
	s.values[i] = v

	if i < 2 {
		s.high = true
	}
}

// Add inserts a new value into the window.
func (s *StreamingMedian5) Add(v int32) {
	if s.high {
		s.addHigh(v)
	} else {
		s.addLow(v)
	}
}

// Get returns the current median.
func (s *StreamingMedian5) Get() int32 {
	return s.values[2]
}
