package queue

import "testing"

func TestRingFIFOAndWraparound(t *testing.T) {
	var r ring[int]

	for round := 0; round < 3; round++ {
		for i := 0; i < 10; i++ {
			r.push(round*10 + i)
		}
		if r.len() != 10 {
			t.Fatalf("len = %d, want 10", r.len())
		}
		for i := 0; i < 10; i++ {
			if v := r.pop(); v != round*10+i {
				t.Fatalf("pop = %d, want %d", v, round*10+i)
			}
		}
		if r.len() != 0 {
			t.Fatalf("len = %d, want 0", r.len())
		}
	}
}

func TestRingInterleaved(t *testing.T) {
	var r ring[int]

	next, want := 0, 0
	for i := 0; i < 100; i++ {
		r.push(next)
		next++
		r.push(next)
		next++
		if v := r.pop(); v != want {
			t.Fatalf("pop = %d, want %d", v, want)
		}
		want++
	}
	for r.len() > 0 {
		if v := r.pop(); v != want {
			t.Fatalf("pop = %d, want %d", v, want)
		}
		want++
	}
	if want != next {
		t.Fatalf("drained %d values, pushed %d", want, next)
	}
}

func TestRingClearReleasesElements(t *testing.T) {
	var r ring[*int]

	r.push(new(int))
	r.push(new(int))
	r.clear()

	if r.len() != 0 {
		t.Fatalf("len = %d, want 0", r.len())
	}
	for i, v := range r.buf {
		if v != nil {
			t.Fatalf("slot %d still holds an element after clear", i)
		}
	}
	r.push(nil)
	if v := r.pop(); v != nil {
		t.Fatal("stale element after clear")
	}
}
