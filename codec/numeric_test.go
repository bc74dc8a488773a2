package codec

import "testing"

// fakeFlash is a fixed-size byte array standing in for non-volatile
// storage, addressed the same way the trap package addresses real
// flash.
type fakeFlash [256]byte

func (f *fakeFlash) reader() FlashReader {
	return func(addr uint16) uint8 { return f[addr] }
}

func (f *fakeFlash) writer() FlashWriter {
	return func(data uint8, addr uint16) { f[addr] = data }
}

func TestU8RoundTrip(t *testing.T) {
	var f fakeFlash
	next := WriteU8(f.writer(), 10, 0xAB)
	if next != 11 {
		t.Fatalf("WriteU8 next = %d, want 11", next)
	}
	v, next := ReadU8(f.reader(), 10)
	if v != 0xAB || next != 11 {
		t.Fatalf("ReadU8 = (%d, %d), want (171, 11)", v, next)
	}
}

func TestI8RoundTrip(t *testing.T) {
	var f fakeFlash
	WriteI8(f.writer(), 0, -5)
	v, next := ReadI8(f.reader(), 0)
	if v != -5 || next != 1 {
		t.Fatalf("ReadI8 = (%d, %d), want (-5, 1)", v, next)
	}
}

func TestCharRoundTrip(t *testing.T) {
	var f fakeFlash
	WriteChar(f.writer(), 3, 'Q')
	v, next := ReadChar(f.reader(), 3)
	if v != 'Q' || next != 4 {
		t.Fatalf("ReadChar = (%q, %d), want ('Q', 4)", v, next)
	}
}

func TestU16RoundTrip(t *testing.T) {
	var f fakeFlash
	next := WriteU16(f.writer(), 0, 0x1234)
	if next != 2 {
		t.Fatalf("WriteU16 next = %d, want 2", next)
	}
	if f[0] != 0x12 || f[1] != 0x34 {
		t.Fatalf("WriteU16 wrote %02x %02x, want 12 34", f[0], f[1])
	}
	v, next := ReadU16(f.reader(), 0)
	if v != 0x1234 || next != 2 {
		t.Fatalf("ReadU16 = (%04x, %d), want (1234, 2)", v, next)
	}
}

func TestI16RoundTrip(t *testing.T) {
	var f fakeFlash
	WriteI16(f.writer(), 0, -1000)
	v, _ := ReadI16(f.reader(), 0)
	if v != -1000 {
		t.Fatalf("ReadI16 = %d, want -1000", v)
	}
}

func TestU32RoundTrip(t *testing.T) {
	var f fakeFlash
	next := WriteU32(f.writer(), 0, 0xDEADBEEF)
	if next != 4 {
		t.Fatalf("WriteU32 next = %d, want 4", next)
	}
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	for i, w := range want {
		if f[i] != w {
			t.Fatalf("byte %d = %02x, want %02x", i, f[i], w)
		}
	}
	v, next := ReadU32(f.reader(), 0)
	if v != 0xDEADBEEF || next != 4 {
		t.Fatalf("ReadU32 = (%08x, %d), want (deadbeef, 4)", v, next)
	}
}

func TestI32RoundTrip(t *testing.T) {
	var f fakeFlash
	WriteI32(f.writer(), 0, -123456789)
	v, _ := ReadI32(f.reader(), 0)
	if v != -123456789 {
		t.Fatalf("ReadI32 = %d, want -123456789", v)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	tests := []float64{0, 1.5, -1.5, 3.1415, -200000.0001}
	var f fakeFlash
	for _, v := range tests {
		WriteFloat(f.writer(), 0, v)
		got, _ := ReadFloat(f.reader(), 0)
		if diff := got - v; diff > 0.00005 || diff < -0.00005 {
			t.Fatalf("float round trip %v got %v", v, got)
		}
	}
}

func TestFloatOverflowTruncatesDeterministically(t *testing.T) {
	var f fakeFlash
	// |v| > FloatMax: the scaled value overflows int32 and wraps,
	// but the wrap is well defined rather than platform dependent:
	// 2147493647 keeps its low 32 bits as -2147473649.
	WriteFloat(f.writer(), 0, FloatMax+1)
	got, next := ReadFloat(f.reader(), 0)
	if next != 4 {
		t.Fatalf("ReadFloat next = %d, want 4", next)
	}
	if got != -214747.3649 {
		t.Fatalf("ReadFloat = %v, want -214747.3649", got)
	}
}

func TestSequentialAdvance(t *testing.T) {
	var f fakeFlash
	addr := uint16(0)
	addr = WriteU8(f.writer(), addr, 1)
	addr = WriteU16(f.writer(), addr, 2)
	addr = WriteU32(f.writer(), addr, 3)
	if addr != 7 {
		t.Fatalf("cumulative advance = %d, want 7", addr)
	}
}
