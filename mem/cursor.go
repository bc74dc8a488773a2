package mem

import "github.com/ardnew/ucconfig/codec"

// Cursor tracks the current flash address used by the read and write
// commands. Every typed accessor advances Ptr by the size of the
// value it transferred, mirroring ucconfig_memPointer in the source
// this protocol was distilled from.
type Cursor struct {
	ptr    uint16
	offset uint16
}

// SetOffset sets the base offset added to every address supplied by
// SET_ADDRESS, per UCCONFIG_setAddressOffset. It does not itself move
// Ptr.
func (c *Cursor) SetOffset(offset uint16) {
	c.offset = offset
}

// Offset returns the configured base offset.
func (c *Cursor) Offset() uint16 {
	return c.offset
}

// Ptr returns the current flash address.
func (c *Cursor) Ptr() uint16 {
	return c.ptr
}

// SetPtr sets the current flash address directly, bypassing the
// configured offset. The trap package's typed Get accessors use it to
// leave the cursor just past a read at an explicit address.
func (c *Cursor) SetPtr(ptr uint16) {
	c.ptr = ptr
}

// Seek sets Ptr to address plus the configured offset, per
// SET_ADDRESS: mem_ptr = str2int(address) + mem_offset.
func (c *Cursor) Seek(address uint32) {
	c.ptr = uint16(address) + c.offset
}

// ReadU8 reads an unsigned byte at Ptr and advances Ptr past it.
func (c *Cursor) ReadU8(r codec.FlashReader) uint8 {
	v, next := codec.ReadU8(r, c.ptr)
	c.ptr = next
	return v
}

// WriteU8 writes an unsigned byte at Ptr and advances Ptr past it.
func (c *Cursor) WriteU8(w codec.FlashWriter, v uint8) {
	c.ptr = codec.WriteU8(w, c.ptr, v)
}

// ReadI8 reads a signed byte at Ptr and advances Ptr past it.
func (c *Cursor) ReadI8(r codec.FlashReader) int8 {
	v, next := codec.ReadI8(r, c.ptr)
	c.ptr = next
	return v
}

// WriteI8 writes a signed byte at Ptr and advances Ptr past it.
func (c *Cursor) WriteI8(w codec.FlashWriter, v int8) {
	c.ptr = codec.WriteI8(w, c.ptr, v)
}

// ReadChar reads a character byte at Ptr and advances Ptr past it.
func (c *Cursor) ReadChar(r codec.FlashReader) byte {
	v, next := codec.ReadChar(r, c.ptr)
	c.ptr = next
	return v
}

// WriteChar writes a character byte at Ptr and advances Ptr past it.
func (c *Cursor) WriteChar(w codec.FlashWriter, v byte) {
	c.ptr = codec.WriteChar(w, c.ptr, v)
}

// ReadU16 reads an unsigned 16-bit value at Ptr and advances Ptr past it.
func (c *Cursor) ReadU16(r codec.FlashReader) uint16 {
	v, next := codec.ReadU16(r, c.ptr)
	c.ptr = next
	return v
}

// WriteU16 writes an unsigned 16-bit value at Ptr and advances Ptr past it.
func (c *Cursor) WriteU16(w codec.FlashWriter, v uint16) {
	c.ptr = codec.WriteU16(w, c.ptr, v)
}

// ReadI16 reads a signed 16-bit value at Ptr and advances Ptr past it.
func (c *Cursor) ReadI16(r codec.FlashReader) int16 {
	v, next := codec.ReadI16(r, c.ptr)
	c.ptr = next
	return v
}

// WriteI16 writes a signed 16-bit value at Ptr and advances Ptr past it.
func (c *Cursor) WriteI16(w codec.FlashWriter, v int16) {
	c.ptr = codec.WriteI16(w, c.ptr, v)
}

// ReadU32 reads an unsigned 32-bit value at Ptr and advances Ptr past it.
func (c *Cursor) ReadU32(r codec.FlashReader) uint32 {
	v, next := codec.ReadU32(r, c.ptr)
	c.ptr = next
	return v
}

// WriteU32 writes an unsigned 32-bit value at Ptr and advances Ptr past it.
func (c *Cursor) WriteU32(w codec.FlashWriter, v uint32) {
	c.ptr = codec.WriteU32(w, c.ptr, v)
}

// ReadI32 reads a signed 32-bit value at Ptr and advances Ptr past it.
func (c *Cursor) ReadI32(r codec.FlashReader) int32 {
	v, next := codec.ReadI32(r, c.ptr)
	c.ptr = next
	return v
}

// WriteI32 writes a signed 32-bit value at Ptr and advances Ptr past it.
func (c *Cursor) WriteI32(w codec.FlashWriter, v int32) {
	c.ptr = codec.WriteI32(w, c.ptr, v)
}

// ReadFloat reads a fixed-scale float at Ptr and advances Ptr past it.
func (c *Cursor) ReadFloat(r codec.FlashReader) float64 {
	v, next := codec.ReadFloat(r, c.ptr)
	c.ptr = next
	return v
}

// WriteFloat writes a fixed-scale float at Ptr and advances Ptr past it.
func (c *Cursor) WriteFloat(w codec.FlashWriter, v float64) {
	c.ptr = codec.WriteFloat(w, c.ptr, v)
}
