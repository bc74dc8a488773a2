package codec

// maxDigits bounds how many digit characters StrToInt, StrToUint, and
// StrToFloat will accumulate before giving up and returning zero. It
// mirrors string11.c's `i > 120` recovery guard, which exists to bound
// the loop on a buffer that, on the original target, was not otherwise
// length-checked.
const maxDigits = 120

// StrToInt parses an optional leading '-' followed by ASCII decimal
// digits. It returns 0 if any byte after the optional sign is not a
// digit, or if there are more than 120 digit bytes.
func StrToInt(s []byte) int32 {
	if len(s) == 0 {
		return 0
	}
	i := 0
	neg := s[0] == '-'
	if neg {
		i = 1
	}
	if len(s)-i > maxDigits {
		return 0
	}
	var n int32
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int32(c-'0')
	}
	if neg {
		n = -n
	}
	return n
}

// StrToUint parses ASCII decimal digits with no sign handling. It
// returns 0 on any non-digit byte or more than 120 digit bytes.
func StrToUint(s []byte) uint32 {
	if len(s) > maxDigits {
		return 0
	}
	var n uint32
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + uint32(c-'0')
	}
	return n
}

// StrToFloat parses an optional leading '-', digits, an optional single
// '.', and more digits. The result is the signed integer value of the
// digit stream divided by 10^(digits after the point). A second '.'
// is rejected, returning 0: the source this protocol was distilled from
// kept accumulating past a second '.' and produced silently wrong
// results, which this implementation declines to reproduce.
func StrToFloat(s []byte) float64 {
	if len(s) == 0 {
		return 0
	}
	i := 0
	neg := s[0] == '-'
	if neg {
		i = 1
	}
	if len(s)-i > maxDigits {
		return 0
	}
	var whole int64
	decimals := 0
	seenDot := false
	for ; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			if seenDot {
				return 0
			}
			seenDot = true
			continue
		}
		if c < '0' || c > '9' {
			return 0
		}
		whole = whole*10 + int64(c-'0')
		if seenDot {
			decimals++
		}
	}
	scale := 1.0
	for d := 0; d < decimals; d++ {
		scale *= 10
	}
	result := float64(whole) / scale
	if neg {
		result = -result
	}
	return result
}
