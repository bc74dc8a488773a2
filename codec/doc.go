// Package codec implements the big-endian numeric wire/flash encoding,
// the ASCII numeric parsers used to decode command payloads, and the
// ASCII printer used to render READ and AT_ADDRESS responses.
//
// Every pack/unpack operation is parameterized on a [FlashWriter] or
// [FlashReader] supplied per call rather than swapped globally, per the
// re-architecture note in the source specification's design notes
// ("parameterizing the numeric printer and codec on an explicit sink
// argument per call, eliminating the swap").
package codec
