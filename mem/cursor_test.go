package mem

import "testing"

type fakeFlash [64]byte

func (f *fakeFlash) reader() func(uint16) uint8 {
	return func(addr uint16) uint8 { return f[addr] }
}

func (f *fakeFlash) writer() func(uint8, uint16) {
	return func(data uint8, addr uint16) { f[addr] = data }
}

func TestSeekAppliesOffset(t *testing.T) {
	var c Cursor
	c.SetOffset(100)
	c.Seek(5)
	if c.Ptr() != 105 {
		t.Fatalf("Ptr() = %d, want 105", c.Ptr())
	}
}

func TestSeekWithoutOffset(t *testing.T) {
	var c Cursor
	c.Seek(42)
	if c.Ptr() != 42 {
		t.Fatalf("Ptr() = %d, want 42", c.Ptr())
	}
}

func TestSetPtrIgnoresOffset(t *testing.T) {
	var c Cursor
	c.SetOffset(100)
	c.SetPtr(7)
	if c.Ptr() != 7 {
		t.Fatalf("Ptr() = %d, want 7", c.Ptr())
	}
}

func TestTypedAccessorsAdvancePtr(t *testing.T) {
	var f fakeFlash
	var c Cursor

	c.WriteU8(f.writer(), 200)
	if c.Ptr() != 1 {
		t.Fatalf("Ptr() after WriteU8 = %d, want 1", c.Ptr())
	}

	c.WriteU16(f.writer(), 0xBEEF)
	if c.Ptr() != 3 {
		t.Fatalf("Ptr() after WriteU16 = %d, want 3", c.Ptr())
	}

	c.WriteU32(f.writer(), 0xCAFEBABE)
	if c.Ptr() != 7 {
		t.Fatalf("Ptr() after WriteU32 = %d, want 7", c.Ptr())
	}

	c.SetPtr(0)
	if v := c.ReadU8(f.reader()); v != 200 {
		t.Fatalf("ReadU8 = %d, want 200", v)
	}
	if v := c.ReadU16(f.reader()); v != 0xBEEF {
		t.Fatalf("ReadU16 = %04x, want BEEF", v)
	}
	if v := c.ReadU32(f.reader()); v != 0xCAFEBABE {
		t.Fatalf("ReadU32 = %08x, want CAFEBABE", v)
	}
	if c.Ptr() != 7 {
		t.Fatalf("Ptr() after reads = %d, want 7", c.Ptr())
	}
}

func TestFloatAccessorRoundTrip(t *testing.T) {
	var f fakeFlash
	var c Cursor
	c.WriteFloat(f.writer(), -12.75)
	c.SetPtr(0)
	got := c.ReadFloat(f.reader())
	if diff := got - (-12.75); diff > 0.0001 || diff < -0.0001 {
		t.Fatalf("ReadFloat = %v, want -12.75", got)
	}
}

func TestCharAndSignedAccessors(t *testing.T) {
	var f fakeFlash
	var c Cursor
	c.WriteChar(f.writer(), 'Q')
	c.WriteI8(f.writer(), -9)
	c.WriteI16(f.writer(), -1000)
	c.WriteI32(f.writer(), -100000)

	c.SetPtr(0)
	if v := c.ReadChar(f.reader()); v != 'Q' {
		t.Fatalf("ReadChar = %q, want 'Q'", v)
	}
	if v := c.ReadI8(f.reader()); v != -9 {
		t.Fatalf("ReadI8 = %d, want -9", v)
	}
	if v := c.ReadI16(f.reader()); v != -1000 {
		t.Fatalf("ReadI16 = %d, want -1000", v)
	}
	if v := c.ReadI32(f.reader()); v != -100000 {
		t.Fatalf("ReadI32 = %d, want -100000", v)
	}
}
