// Package trap implements the serial protocol engine and mode
// controller: activation-key detection against a passive background
// byte stream, a 9-byte command frame parser and dispatcher, response
// framing, and the BACKGROUND/ACTIVE state machine with its
// lifecycle hooks and timeout.
//
// A [Trap] is a single process-wide context (no dynamic allocation):
// construct one with [New], wire its callbacks with [Trap.Setup], and
// drive it with [Trap.Listen] from the serial-receive path and
// [Trap.Loop] from the application's foreground loop.
package trap
