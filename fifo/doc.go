// Package fifo implements the power-of-two circular byte buffer shared by
// the background activation-key detector and the active-mode frame
// accumulator.
//
// A [Fifo] owns no memory of its own: the caller supplies a backing array
// whose length must be a power of two, matching the zero-allocation
// embedded target this protocol was designed for. Three drain modes
// control when buffered bytes are handed to the configured sink:
//
//   - [ModeAuto]: a byte is drained to the sink as soon as it lands in an
//     otherwise-idle fifo.
//   - [ModeTrigger]: bytes accumulate until [Fifo.Flush] is called.
//   - [ModeDump]: reserved for full-only drain; the fifo never drains on
//     its own.
package fifo
