package fifo

import (
	"errors"
	"testing"

	"github.com/ardnew/ucconfig/pkg"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		mode    Mode
		wantErr error
	}{
		{"power of two", 8, ModeTrigger, nil},
		{"minimum size", 2, ModeAuto, nil},
		{"non power of two", 7, ModeTrigger, pkg.ErrNonPowerOfTwo},
		{"zero size", 0, ModeTrigger, pkg.ErrNonPowerOfTwo},
		{"bad mode", 8, Mode(99), pkg.ErrNoMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.size)
			f, err := New(buf, tt.mode, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && f == nil {
				t.Fatal("New() returned nil fifo with no error")
			}
		})
	}
}

func TestPutPopSize(t *testing.T) {
	f, err := New(make([]byte, 8), ModeTrigger, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := 0; i < 7; i++ {
		if err := f.Put(byte(i)); err != nil {
			t.Fatalf("Put(%d) error = %v", i, err)
		}
	}
	if got, want := f.Size(), 7; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
	// Capacity 8 keeps one slot empty: one more Put must report Full.
	if err := f.Put(7); !errors.Is(err, pkg.ErrFull) {
		t.Fatalf("Put() on full fifo error = %v, want ErrFull", err)
	}

	for i := 0; i < 7; i++ {
		b, err := f.Pop()
		if err != nil {
			t.Fatalf("Pop() error = %v", err)
		}
		if b != byte(i) {
			t.Fatalf("Pop() = %d, want %d", b, i)
		}
	}
	if _, err := f.Pop(); !errors.Is(err, pkg.ErrEmpty) {
		t.Fatalf("Pop() on empty fifo error = %v, want ErrEmpty", err)
	}
}

func TestWraparound(t *testing.T) {
	f, err := New(make([]byte, 4), ModeTrigger, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		f.Put(byte(i))
	}
	f.Pop()
	f.Pop()
	// head has wrapped past the end of the backing array.
	f.Put(10)
	f.Put(11)
	if err := f.Put(12); !errors.Is(err, pkg.ErrFull) {
		t.Fatalf("Put() error = %v, want ErrFull", err)
	}
	want := []byte{2, 10, 11}
	for _, w := range want {
		b, err := f.Pop()
		if err != nil {
			t.Fatalf("Pop() error = %v", err)
		}
		if b != w {
			t.Fatalf("Pop() = %d, want %d", b, w)
		}
	}
}

func TestAutoModeDrainsOnPut(t *testing.T) {
	var drained []byte
	f, err := New(make([]byte, 4), ModeAuto, func(b byte) {
		drained = append(drained, b)
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	// The first Put lands in an idle fifo and is drained at once; that
	// Get clears the idle flag, so the second Put is only buffered.
	f.Put(1)
	f.Put(2)
	if len(drained) != 1 || drained[0] != 1 {
		t.Fatalf("drained = %v, want [1]", drained)
	}
	if f.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 after auto drain", f.Size())
	}
}

func TestTriggerModeRequiresFlush(t *testing.T) {
	var drained []byte
	f, err := New(make([]byte, 4), ModeTrigger, func(b byte) {
		drained = append(drained, b)
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	f.Put(1)
	f.Put(2)
	if len(drained) != 0 {
		t.Fatalf("drained = %v before Flush, want none", drained)
	}
	f.Flush()
	if len(drained) != 2 || drained[0] != 1 || drained[1] != 2 {
		t.Fatalf("drained = %v, want [1 2]", drained)
	}
	if !f.Idle() {
		t.Fatal("Idle() = false after Flush, want true")
	}
}

func TestFlushOnAlreadyEmptyFifo(t *testing.T) {
	called := false
	f, _ := New(make([]byte, 4), ModeTrigger, func(b byte) { called = true })
	f.Flush()
	if called {
		t.Fatal("sink invoked on flush of an empty fifo")
	}
	if !f.Idle() {
		t.Fatal("Idle() = false, want true")
	}
}

func TestSinkObservesByteBeforeTailAdvances(t *testing.T) {
	var sizes []int
	f, _ := New(make([]byte, 4), ModeTrigger, nil)
	f.sink = func(b byte) {
		sizes = append(sizes, f.Size())
	}
	f.Put(1)
	f.Put(2)
	f.Flush()
	if len(sizes) != 2 || sizes[0] != 2 || sizes[1] != 1 {
		t.Fatalf("sizes observed during drain = %v, want [2 1]", sizes)
	}
}
