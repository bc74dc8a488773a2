package trap

import "github.com/ardnew/ucconfig/codec"

// Wire protocol byte constants. Values are fixed by the source this
// protocol was distilled from and MUST be preserved for compatibility
// with existing host tooling.
const (
	Newline  byte = 10
	TypeNone byte = 11

	SetAddress byte = 12
	Write      byte = 13
	Read       byte = 14
	Terminate  byte = 15
	AtAddress  byte = 16

	Ack      byte = 17
	Nack     byte = 18
	Nul      byte = 19
	NotUsed  byte = 20
	LenZero  byte = 21
	FrameEnd byte = 22
)

// isCommandByte reports whether b is one of the five recognized
// command opcodes a frame may open with.
func isCommandByte(b byte) bool {
	switch b {
	case SetAddress, Write, Read, Terminate, AtAddress:
		return true
	default:
		return false
	}
}

// decodeLen converts a LEN field byte to a byte count: 'A'..'X' encode
// 1..24 (byte-64). The result is not range-checked against either
// caller's valid window (WRITE allows 1..24, SET_ADDRESS allows 1..5),
// so each call site applies its own bound after decoding.
func decodeLen(b byte) int {
	return int(b) - 64
}

// Key is the activation key byte sequence. KeyLength is its length.
var Key = [4]byte{2, 4, 6, 8}

// KeyLength is the number of bytes in [Key].
const KeyLength = 4

// isKeyByte reports whether b is one of the bytes in [Key]. Used by
// the background admission filter; collapses the source's duplicated
// KEY_4 switch case into one check.
func isKeyByte(b byte) bool {
	for _, k := range Key {
		if b == k {
			return true
		}
	}
	return false
}

// FifoSize is the capacity of the shared background/active fifo.
const FifoSize = 32

// ActiveTimerMax is the active-mode timeout reload value, in units of
// [Trap.Loop] calls.
const ActiveTimerMax = 0xFFFF

// typeCharAllowed reports whether c is a permitted payload character
// for a WRITE command of the given type, per the per-byte validation
// rules: digits are always allowed; '.' only for FLOAT; '-' only for
// the signed integer types and FLOAT; CHAR permits any byte.
func typeCharAllowed(c byte, t codec.TypeTag) bool {
	if t == codec.TypeChar {
		return true
	}
	if c >= '0' && c <= '9' {
		return true
	}
	if c == '.' && t == codec.TypeFloat {
		return true
	}
	if c == '-' {
		switch t {
		case codec.TypeI8, codec.TypeI16, codec.TypeI32, codec.TypeFloat:
			return true
		}
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
