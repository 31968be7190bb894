package rangecoder

import "testing"

func TestStreamingMedian5InitialState(t *testing.T) {
	s := NewStreamingMedian5()
	if got := s.Get(); got != 0 {
		t.Errorf("Get() = %d, want 0", got)
	}
}

func TestStreamingMedian5Ascending(t *testing.T) {
	s := NewStreamingMedian5()
	for _, v := range []int32{10, 20, 30, 40, 50} {
		s.Add(v)
	}
	if got := s.Get(); got != 30 {
		t.Errorf("Get() = %d, want 30", got)
	}
}

func TestStreamingMedian5Descending(t *testing.T) {
	s := NewStreamingMedian5()
	for _, v := range []int32{50, 40, 30, 20, 10} {
		s.Add(v)
	}
	want := [5]int32{0, 10, 20, 30, 40}
	if s.values != want {
		t.Errorf("values = %v, want %v", s.values, want)
	}
	if got := s.Get(); got != 20 {
		t.Errorf("Get() = %d, want 20", got)
	}
}

func TestStreamingMedian5SlidingWindow(t *testing.T) {
	s := NewStreamingMedian5()
	seq := []int32{5, 1, 9, 3, 7, 2, 8, 0}
	for _, v := range seq {
		s.Add(v)
	}
	want := [5]int32{0, 3, 5, 7, 8}
	if s.values != want {
		t.Errorf("values = %v, want %v", s.values, want)
	}
	if got := s.Get(); got != 5 {
		t.Errorf("Get() = %d, want 5", got)
	}
}
