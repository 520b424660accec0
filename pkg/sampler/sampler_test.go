package sampler

import (
	"testing"

	"github.com/lucent-render/lucent/pkg/core"
)

func TestRandomSampler_Determinism(t *testing.T) {
	s1 := NewRandomSampler(4, 42)
	s2 := NewRandomSampler(4, 42)

	s1.StartPixel(3, 7)
	s2.StartPixel(3, 7)

	for i := 0; i < 16; i++ {
		v1, v2 := s1.Get1D(), s2.Get1D()
		if v1 != v2 {
			t.Errorf("Same seed and pixel produced different values at draw %d: %v vs %v", i, v1, v2)
		}
		p1, p2 := s1.Get2D(), s2.Get2D()
		if p1 != p2 {
			t.Errorf("Same seed and pixel produced different pairs at draw %d: %v vs %v", i, p1, p2)
		}
	}
}

func TestRandomSampler_PixelRestartRepeatsStream(t *testing.T) {
	s := NewRandomSampler(2, 7)

	s.StartPixel(5, 5)
	first := []float64{s.Get1D(), s.Get1D(), s.Get1D()}

	s.StartPixel(1, 1) // Different pixel disturbs the engine
	s.Get1D()

	s.StartPixel(5, 5)
	for i, want := range first {
		if got := s.Get1D(); got != want {
			t.Errorf("Restarted pixel stream diverged at draw %d: got %v, want %v", i, got, want)
		}
	}
}

func TestSampler_ValueRange(t *testing.T) {
	samplers := map[string]Sampler{
		"random":     NewRandomSampler(9, 1),
		"stratified": NewStratifiedSampler(3, 3, true, 4, 1),
	}

	for name, s := range samplers {
		s.StartPixel(0, 0)
		for s.StartNextSample() {
			if v := s.Get1D(); v < 0 || v >= 1 {
				t.Errorf("%s: Get1D out of [0,1): %v", name, v)
			}
			p := s.Get2D()
			if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
				t.Errorf("%s: Get2D out of [0,1)²: %v", name, p)
			}
		}
	}
}

func TestSampler_StartNextSampleExhaustion(t *testing.T) {
	s := NewRandomSampler(3, 42)
	s.StartPixel(0, 0)

	// One true per configured sample, then false
	for i := 0; i < 3; i++ {
		if !s.StartNextSample() {
			t.Fatalf("StartNextSample call %d returned false before the budget ran out", i+1)
		}
	}
	if s.StartNextSample() {
		t.Error("Expected StartNextSample to return false after 3 samples")
	}
}

func TestStratifiedSampler_RoundCount(t *testing.T) {
	s := NewStratifiedSampler(2, 2, true, 2, 0)

	cases := map[int]int{1: 1, 2: 4, 4: 4, 5: 9, 9: 9, 10: 16}
	for n, want := range cases {
		if got := s.RoundCount(n); got != want {
			t.Errorf("RoundCount(%d) = %d, expected %d", n, got, want)
		}
	}
}

func TestRandomSampler_RoundCountIdentity(t *testing.T) {
	s := NewRandomSampler(4, 0)
	for _, n := range []int{1, 3, 5, 17} {
		if got := s.RoundCount(n); got != n {
			t.Errorf("RoundCount(%d) = %d, expected identity", n, got)
		}
	}
}

func TestSampler_2DArrays(t *testing.T) {
	s := NewStratifiedSampler(2, 2, true, 2, 11)
	n := s.RoundCount(4)
	s.Request2DArray(n)
	s.Request2DArray(n)

	s.StartPixel(2, 3)
	for sample := 0; s.StartNextSample(); sample++ {
		first := s.Get2DArray(n)
		second := s.Get2DArray(n)
		if first == nil || second == nil {
			t.Fatalf("Sample %d: expected two arrays of length %d, got nil", sample, n)
		}
		if len(first) != n || len(second) != n {
			t.Errorf("Sample %d: array lengths %d and %d, expected %d", sample, len(first), len(second), n)
		}
		for _, p := range first {
			if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
				t.Errorf("Array value out of [0,1)²: %v", p)
			}
		}
		// A third request has nothing registered behind it
		if extra := s.Get2DArray(n); extra != nil {
			t.Errorf("Sample %d: expected nil for unregistered third array", sample)
		}
	}
}

func TestSampler_Get2DArrayWrongLength(t *testing.T) {
	s := NewRandomSampler(2, 5)
	s.Request2DArray(4)
	s.StartPixel(0, 0)
	s.StartNextSample()

	if got := s.Get2DArray(8); got != nil {
		t.Errorf("Expected nil for mismatched array length, got %d values", len(got))
	}
}

func TestSampler_CloneIndependence(t *testing.T) {
	s := NewStratifiedSampler(2, 2, true, 3, 42)
	s.Request2DArray(4)

	clone := s.Clone(42)
	if clone.SamplesPerPixel() != s.SamplesPerPixel() {
		t.Errorf("Clone samples per pixel = %d, expected %d", clone.SamplesPerPixel(), s.SamplesPerPixel())
	}

	// Clone carries array registrations
	clone.StartPixel(1, 1)
	clone.StartNextSample()
	if arr := clone.Get2DArray(4); arr == nil {
		t.Error("Clone did not carry the 2D array registration")
	}

	// Same seed, same pixel: identical streams
	s.StartPixel(9, 9)
	c2 := s.Clone(42)
	c2.StartPixel(9, 9)
	for i := 0; i < 8; i++ {
		if v1, v2 := s.Get1D(), c2.Get1D(); v1 != v2 {
			t.Errorf("Clone with same seed diverged at draw %d: %v vs %v", i, v1, v2)
		}
	}
}

func TestSampler_GetCameraSample(t *testing.T) {
	s := NewRandomSampler(4, 42)
	s.StartPixel(10, 20)

	cs := s.GetCameraSample(10, 20)

	if cs.PFilm.X < 10 || cs.PFilm.X >= 11 {
		t.Errorf("Film X = %v, expected within [10, 11)", cs.PFilm.X)
	}
	if cs.PFilm.Y < 20 || cs.PFilm.Y >= 21 {
		t.Errorf("Film Y = %v, expected within [20, 21)", cs.PFilm.Y)
	}
	if cs.Time < 0 || cs.Time >= 1 {
		t.Errorf("Time = %v, expected within [0, 1)", cs.Time)
	}
	if cs.PLens.X < 0 || cs.PLens.X >= 1 || cs.PLens.Y < 0 || cs.PLens.Y >= 1 {
		t.Errorf("Lens sample = %v, expected within [0, 1)²", cs.PLens)
	}
}

func TestStratifiedSampler_Coverage1D(t *testing.T) {
	// With 16 samples and jitter off, the first dimension must place exactly
	// one value in each of the 16 strata
	s := NewStratifiedSampler(4, 4, false, 1, 3)
	s.StartPixel(0, 0)

	seen := make([]bool, 16)
	for s.StartNextSample() {
		v := s.Get1D()
		stratum := int(v * 16)
		if stratum < 0 || stratum > 15 {
			t.Fatalf("Value %v outside [0,1)", v)
		}
		if seen[stratum] {
			t.Errorf("Stratum %d sampled twice", stratum)
		}
		seen[stratum] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("Stratum %d never sampled", i)
		}
	}
}

func TestStratifiedSampler_Coverage2D(t *testing.T) {
	s := NewStratifiedSampler(3, 3, true, 1, 3)
	s.StartPixel(4, 4)

	seen := make(map[[2]int]bool)
	for s.StartNextSample() {
		p := s.Get2D()
		cell := [2]int{int(p.X * 3), int(p.Y * 3)}
		if seen[cell] {
			t.Errorf("Grid cell %v sampled twice", cell)
		}
		seen[cell] = true
	}
	if len(seen) != 9 {
		t.Errorf("Expected all 9 grid cells covered, got %d", len(seen))
	}
}

func TestSampler_Reseed(t *testing.T) {
	s := NewRandomSampler(2, 1)
	s.StartPixel(0, 0)
	before := s.Get1D()

	s.Reseed(1)
	s.StartPixel(0, 0)
	after := s.Get1D()

	if before != after {
		t.Errorf("Reseed with identical seed changed the stream: %v vs %v", before, after)
	}

	s.Reseed(999)
	s.StartPixel(0, 0)
	if other := s.Get1D(); other == before {
		t.Errorf("Different seed produced identical first draw %v", other)
	}
}

func TestCameraSampleDrawOrder(t *testing.T) {
	// The camera sample must consume film jitter, time, then lens from the
	// stream, matching a manual draw sequence on an identical sampler
	s1 := NewRandomSampler(1, 42)
	s2 := NewRandomSampler(1, 42)
	s1.StartPixel(2, 2)
	s2.StartPixel(2, 2)

	cs := s1.GetCameraSample(2, 2)

	jitter := s2.Get2D()
	time := s2.Get1D()
	lens := s2.Get2D()

	if cs.PFilm != core.NewVec2(2+jitter.X, 2+jitter.Y) {
		t.Errorf("Film point %v does not match manual draw %v", cs.PFilm, jitter)
	}
	if cs.Time != time {
		t.Errorf("Time %v does not match manual draw %v", cs.Time, time)
	}
	if cs.PLens != lens {
		t.Errorf("Lens point %v does not match manual draw %v", cs.PLens, lens)
	}
}
