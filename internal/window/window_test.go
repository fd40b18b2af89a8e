package window

import (
	"math"
	"testing"
)

func TestWindowPushAndMean(t *testing.T) {
	w := New(3)

	if w.Len() != 0 {
		t.Fatalf("expected empty window, got len %d", w.Len())
	}
	if _, err := w.Mean(); err != ErrEmptyWindow {
		t.Errorf("expected ErrEmptyWindow, got %v", err)
	}

	w.Push(1)
	w.Push(2)
	m, err := w.Mean()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != 1.5 {
		t.Errorf("expected mean 1.5, got %v", m)
	}
	if w.Full() {
		t.Error("window should not be full after 2 of 3 pushes")
	}

	w.Push(3)
	if !w.Full() {
		t.Error("window should be full after 3 pushes")
	}
}

func TestWindowEviction(t *testing.T) {
	w := New(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		w.Push(v)
	}

	// Only the 3 most recent samples remain.
	if w.Len() != 3 {
		t.Fatalf("expected len 3, got %d", w.Len())
	}
	oldest, err := w.Oldest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oldest != 3 {
		t.Errorf("expected oldest 3, got %v", oldest)
	}
	m, _ := w.Mean()
	if m != 4 {
		t.Errorf("expected mean 4, got %v", m)
	}
}

func TestWindowChronologicalIndexing(t *testing.T) {
	w := New(4)
	for v := 1.0; v <= 6; v++ {
		w.Push(v)
	}
	want := []float64{3, 4, 5, 6}
	for i, exp := range want {
		if got := w.At(i); got != exp {
			t.Errorf("At(%d): expected %v, got %v", i, exp, got)
		}
	}
}

func TestWindowCapacityInvariant(t *testing.T) {
	// After >= N pushes into a capacity-N window, length stays pinned at N
	// and the mean reflects only the N most recent samples.
	for _, capacity := range []int{10, 30, 50, 365} {
		w := New(capacity)
		for i := 0; i < capacity*2; i++ {
			w.Push(float64(i))
			if w.Len() > capacity {
				t.Fatalf("cap %d: len %d exceeds capacity", capacity, w.Len())
			}
		}
		if w.Len() != capacity {
			t.Fatalf("cap %d: expected len %d, got %d", capacity, capacity, w.Len())
		}
		// Samples capacity..2*capacity-1 remain.
		wantMean := (float64(capacity) + float64(2*capacity-1)) / 2
		m, _ := w.Mean()
		if math.Abs(m-wantMean) > 1e-9 {
			t.Errorf("cap %d: expected mean %v, got %v", capacity, wantMean, m)
		}
	}
}

func TestWindowIndependence(t *testing.T) {
	a := New(10)
	b := New(30)
	a.Fill(50)
	b.Fill(10)

	ma, _ := a.Mean()
	mb, _ := b.Mean()
	if ma != 50 || mb != 10 {
		t.Errorf("windows share state: means %v, %v", ma, mb)
	}
}

func TestWindowFillAndReset(t *testing.T) {
	w := New(5)
	w.Fill(50)
	if !w.Full() {
		t.Fatal("Fill should leave the window full")
	}
	m, _ := w.Mean()
	if m != 50 {
		t.Errorf("expected mean 50, got %v", m)
	}

	w.Reset()
	if w.Len() != 0 {
		t.Errorf("expected empty window after Reset, got len %d", w.Len())
	}
	if _, err := w.Mean(); err != ErrEmptyWindow {
		t.Errorf("expected ErrEmptyWindow after Reset, got %v", err)
	}
}
