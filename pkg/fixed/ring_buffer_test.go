package fixed

import (
	"testing"
)

func TestRingBuffer_FillAndWrap(t *testing.T) {
	r := NewRingBuffer(3)

	if r.IsFull() {
		t.Error("new buffer must not be full")
	}

	for i := 1; i <= 3; i++ {
		r.Add(FromInt(i))
	}
	if !r.IsFull() || r.Size() != 3 {
		t.Fatalf("expected full buffer of size 3, got size %d", r.Size())
	}
	if r.Latest().String() != "3" || r.Oldest().String() != "1" {
		t.Errorf("latest/oldest = %s/%s; want 3/1", r.Latest(), r.Oldest())
	}

	// Overwrites the oldest entry.
	r.Add(FromInt(4))
	if r.Size() != 3 {
		t.Errorf("size after wrap = %d; want 3", r.Size())
	}
	if r.Latest().String() != "4" || r.Oldest().String() != "2" {
		t.Errorf("latest/oldest after wrap = %s/%s; want 4/2", r.Latest(), r.Oldest())
	}
}

func TestRingBuffer_Statistics(t *testing.T) {
	r := NewRingBuffer(4)
	for _, v := range []int{2, 4, 6, 8} {
		r.Add(FromInt(v))
	}

	if got := r.Sum().String(); got != "20" {
		t.Errorf("Sum = %s; want 20", got)
	}
	if got := r.Mean().String(); got != "5" {
		t.Errorf("Mean = %s; want 5", got)
	}
	if got := r.Min().String(); got != "2" {
		t.Errorf("Min = %s; want 2", got)
	}
	if got := r.Max().String(); got != "8" {
		t.Errorf("Max = %s; want 8", got)
	}
}

func TestRingBuffer_Get(t *testing.T) {
	r := NewRingBuffer(3)
	r.Add(FromInt(10))
	r.Add(FromInt(20))

	if got := r.Get(0).String(); got != "20" {
		t.Errorf("Get(0) = %s; want 20", got)
	}
	if got := r.Get(1).String(); got != "10" {
		t.Errorf("Get(1) = %s; want 10", got)
	}
}

func TestRingBuffer_GetOutOfRangePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on out-of-range index")
		}
	}()
	NewRingBuffer(2).Get(0)
}

func TestRingBuffer_Clear(t *testing.T) {
	r := NewRingBuffer(2)
	r.Add(FromInt(1))
	r.Clear()
	if r.Size() != 0 {
		t.Errorf("size after clear = %d; want 0", r.Size())
	}
}

func TestRingBuffer_InvalidCapacityPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on non-positive capacity")
		}
	}()
	NewRingBuffer(0)
}
