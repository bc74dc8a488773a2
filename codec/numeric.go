package codec

// FlashReader reads one byte from non-volatile storage at address.
type FlashReader func(address uint16) uint8

// FlashWriter writes one byte to non-volatile storage at address.
type FlashWriter func(data uint8, address uint16)

// MaxDec is the number of fractional decimal digits preserved by the
// fixed-scale float encoding. Changing it changes the on-wire and
// on-flash representation of every stored float and is not compatible
// with existing host tooling.
const MaxDec = 4

// floatScale is 10^MaxDec.
const floatScale = 10000

// FloatMax is the largest magnitude representable by the fixed-scale
// float encoding without int32 truncation, (2^31-1)/10^MaxDec.
const FloatMax = float64(2147483647) / floatScale

// WriteU8 writes an unsigned byte and returns the post-advance address.
func WriteU8(w FlashWriter, addr uint16, v uint8) uint16 {
	w(v, addr)
	return addr + 1
}

// ReadU8 reads an unsigned byte and returns it with the post-advance address.
func ReadU8(r FlashReader, addr uint16) (uint8, uint16) {
	return r(addr), addr + 1
}

// WriteI8 writes a signed byte and returns the post-advance address.
func WriteI8(w FlashWriter, addr uint16, v int8) uint16 {
	w(uint8(v), addr)
	return addr + 1
}

// ReadI8 reads a signed byte and returns it with the post-advance address.
func ReadI8(r FlashReader, addr uint16) (int8, uint16) {
	return int8(r(addr)), addr + 1
}

// WriteChar writes a single character byte and returns the post-advance address.
func WriteChar(w FlashWriter, addr uint16, v byte) uint16 {
	w(v, addr)
	return addr + 1
}

// ReadChar reads a single character byte and returns it with the post-advance address.
func ReadChar(r FlashReader, addr uint16) (byte, uint16) {
	return r(addr), addr + 1
}

// WriteU16 writes a big-endian (MSB first) 16-bit unsigned integer and
// returns the post-advance address.
func WriteU16(w FlashWriter, addr uint16, v uint16) uint16 {
	w(uint8(v>>8), addr)
	addr++
	w(uint8(v), addr)
	addr++
	return addr
}

// ReadU16 reads a big-endian 16-bit unsigned integer and returns it with
// the post-advance address.
func ReadU16(r FlashReader, addr uint16) (uint16, uint16) {
	hi := uint16(r(addr))
	addr++
	lo := uint16(r(addr))
	addr++
	return hi<<8 | lo, addr
}

// WriteI16 writes a big-endian 16-bit signed integer and returns the
// post-advance address.
func WriteI16(w FlashWriter, addr uint16, v int16) uint16 {
	return WriteU16(w, addr, uint16(v))
}

// ReadI16 reads a big-endian 16-bit signed integer and returns it with
// the post-advance address.
func ReadI16(r FlashReader, addr uint16) (int16, uint16) {
	u, next := ReadU16(r, addr)
	return int16(u), next
}

// WriteU32 writes a big-endian 32-bit unsigned integer and returns the
// post-advance address.
func WriteU32(w FlashWriter, addr uint16, v uint32) uint16 {
	w(uint8(v>>24), addr)
	addr++
	w(uint8(v>>16), addr)
	addr++
	w(uint8(v>>8), addr)
	addr++
	w(uint8(v), addr)
	addr++
	return addr
}

// ReadU32 reads a big-endian 32-bit unsigned integer and returns it with
// the post-advance address.
func ReadU32(r FlashReader, addr uint16) (uint32, uint16) {
	b0 := uint32(r(addr))
	addr++
	b1 := uint32(r(addr))
	addr++
	b2 := uint32(r(addr))
	addr++
	b3 := uint32(r(addr))
	addr++
	return b0<<24 | b1<<16 | b2<<8 | b3, addr
}

// WriteI32 writes a big-endian 32-bit signed integer and returns the
// post-advance address.
func WriteI32(w FlashWriter, addr uint16, v int32) uint16 {
	return WriteU32(w, addr, uint32(v))
}

// ReadI32 reads a big-endian 32-bit signed integer and returns it with
// the post-advance address.
func ReadI32(r FlashReader, addr uint16) (int32, uint16) {
	u, next := ReadU32(r, addr)
	return int32(u), next
}

// WriteFloat encodes v at fixed scale [MaxDec] into a big-endian int32
// and returns the post-advance address. Values with |v| > [FloatMax]
// silently truncate to the low 32 bits of the scaled value, mirroring
// the firmware's unchecked int32 cast; callers that need range
// validation must perform it before calling WriteFloat.
func WriteFloat(w FlashWriter, addr uint16, v float64) uint16 {
	scaled := int64(v * floatScale)
	return WriteI32(w, addr, int32(scaled))
}

// ReadFloat decodes a fixed-scale [MaxDec] float previously written by
// WriteFloat and returns it with the post-advance address.
func ReadFloat(r FlashReader, addr uint16) (float64, uint16) {
	scaled, next := ReadI32(r, addr)
	return float64(scaled) / floatScale, next
}
