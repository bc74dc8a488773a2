package codec

import "math"

// Sink receives the ASCII bytes produced by the Print* functions, one
// byte at a time, in emission order. It is the same shape as
// [fifo.Sink] but kept local so that codec does not import fifo; the
// trap package adapts a serial write callback to this type.
type Sink func(b byte)

// printUint renders v as decimal ASCII with no leading zeros, writing
// a single '0' for the zero value. It replaces string11.c's separate
// print_u8/print_u16/print_u32, which differ only in the width of
// their leading-zero suppression loop; a uint32-wide loop produces
// the same digits for any narrower unsigned value.
func printUint(sink Sink, v uint32) {
	if v == 0 {
		sink('0')
		return
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	for _, c := range buf[i:] {
		sink(c)
	}
}

// printInt renders v as decimal ASCII with a leading '-' for negative
// values, mirroring print_8/print_16/print_32's "negate and recurse
// into the unsigned printer" structure.
func printInt(sink Sink, v int32) {
	if v < 0 {
		sink('-')
		printUint(sink, uint32(-int64(v)))
		return
	}
	printUint(sink, uint32(v))
}

// PrintChar renders v as a single raw byte, per print_c.
func PrintChar(sink Sink, v byte) {
	sink(v)
}

// PrintU8 renders an unsigned byte as decimal ASCII.
func PrintU8(sink Sink, v uint8) {
	printUint(sink, uint32(v))
}

// PrintI8 renders a signed byte as decimal ASCII.
func PrintI8(sink Sink, v int8) {
	printInt(sink, int32(v))
}

// PrintU16 renders an unsigned 16-bit value as decimal ASCII.
func PrintU16(sink Sink, v uint16) {
	printUint(sink, uint32(v))
}

// PrintI16 renders a signed 16-bit value as decimal ASCII.
func PrintI16(sink Sink, v int16) {
	printInt(sink, int32(v))
}

// PrintU32 renders an unsigned 32-bit value as decimal ASCII.
func PrintU32(sink Sink, v uint32) {
	printUint(sink, v)
}

// PrintI32 renders a signed 32-bit value as decimal ASCII.
func PrintI32(sink Sink, v int32) {
	printInt(sink, v)
}

// PrintFloat renders v as "[-]whole.fraction" with exactly [MaxDec]
// fraction digits, per print_f. The fraction digits are derived from
// the fixed-scale integer representation (round(v*10^MaxDec)) rather
// than repeated multiply-and-truncate on the float itself, so a value
// returned by [ReadFloat] prints as exactly the scaled integer that
// was stored. [WriteFloat] truncates instead of rounding, so for an
// arbitrary v the printed text can differ by one in the last
// fraction digit from what WriteFloat would store.
func PrintFloat(sink Sink, v float64) {
	scaled := int64(math.Round(v * floatScale))
	if scaled < 0 {
		sink('-')
		scaled = -scaled
	}
	printUint(sink, uint32(scaled/floatScale))
	sink('.')
	frac := uint32(scaled % floatScale)
	var buf [MaxDec]byte
	for i := MaxDec - 1; i >= 0; i-- {
		buf[i] = byte('0' + frac%10)
		frac /= 10
	}
	for _, c := range buf {
		sink(c)
	}
}
