package trap

import (
	"github.com/ardnew/ucconfig/codec"
	"github.com/ardnew/ucconfig/fifo"
	"github.com/ardnew/ucconfig/mem"
	"github.com/ardnew/ucconfig/pkg"
)

// Mode is the engine's BACKGROUND/ACTIVE state.
type Mode int

const (
	ModeBackground Mode = iota
	ModeActive
)

func (m Mode) String() string {
	switch m {
	case ModeBackground:
		return "background"
	case ModeActive:
		return "active"
	default:
		return "unknown"
	}
}

// Trap is the protocol engine and mode controller. It is a single,
// process-wide context: construct one with [New], wire it with
// [Trap.Setup], and drive it from [Trap.Listen] and [Trap.Loop].
// There is no internal locking; the caller's firmware is responsible
// for serializing calls to Listen against itself, per the
// single-threaded cooperative scheduling model this protocol assumes.
type Trap struct {
	read        codec.FlashReader
	write       codec.FlashWriter
	serialWrite func(byte)

	onEnter      func()
	onExit       func()
	onFirstWrite func()

	cur  mem.Cursor
	fifo *fifo.Fifo
	buf  [FifoSize]byte

	mode        Mode
	activeTimer uint32
	written     int
	keyPos      int
}

// New constructs an unconfigured Trap. Call [Trap.Setup] before
// driving it with Listen or Loop.
func New() *Trap {
	return &Trap{}
}

// Setup wires the required flash and serial callbacks and arms the
// background activation-key detector. All three callbacks are
// required; Setup returns [pkg.ErrInvalidParameter] if any is nil.
func (t *Trap) Setup(read codec.FlashReader, write codec.FlashWriter, serialWrite func(byte)) error {
	if read == nil || write == nil || serialWrite == nil {
		return pkg.ErrInvalidParameter
	}
	t.read = read
	t.write = write
	t.serialWrite = serialWrite
	t.keyPos = KeyLength
	t.mode = ModeBackground

	f, err := fifo.New(t.buf[:], fifo.ModeTrigger, t.checkKey)
	if err != nil {
		return err
	}
	t.fifo = f
	return nil
}

// SetAddressOffset sets the base added to every SET_ADDRESS request.
func (t *Trap) SetAddressOffset(offset uint16) {
	t.cur.SetOffset(offset)
}

// SetOnEnter installs the callback invoked on entry to active mode.
func (t *Trap) SetOnEnter(fn func()) {
	t.onEnter = fn
}

// SetOnExit installs the callback invoked when TERMINATE returns the
// engine to background mode. It is not invoked on timeout expiry
// (see [Trap.Loop]).
func (t *Trap) SetOnExit(fn func()) {
	t.onExit = fn
}

// SetOnFirstWrite installs the callback invoked immediately before
// the first successful WRITE of an active session.
func (t *Trap) SetOnFirstWrite(fn func()) {
	t.onFirstWrite = fn
}

// Mode returns the current BACKGROUND/ACTIVE state.
func (t *Trap) Mode() Mode {
	return t.mode
}

// Listen feeds one received serial byte into the engine. Call it from
// the serial-receive path for every byte; it is not reentrant with
// respect to itself.
func (t *Trap) Listen(b byte) {
	if t.fifo == nil {
		pkg.LogError(pkg.ComponentTrap, "listen before setup", "error", pkg.ErrNotConfigured)
		return
	}
	if t.mode == ModeActive {
		t.activeTimer = ActiveTimerMax
		t.fifo.Put(b)
		if b == FrameEnd {
			t.parseCommand()
		}
		return
	}

	if b == Key[KeyLength-1] && t.fifo.Size() >= KeyLength-1 {
		t.fifo.Put(b)
		t.fifo.Flush()
		return
	}
	if isKeyByte(b) {
		t.fifo.Put(b)
	}
}

// Loop services the active-mode timeout. Call it once per pass of the
// application's foreground loop. While active, each call decrements
// the residual timeout budget by 1; on reaching 0 the engine reverts
// to background without invoking the on-exit hook, reproducing the
// source this protocol was distilled from (flagged there as an open
// question, decided here to reproduce rather than guess a nicer
// behavior).
func (t *Trap) Loop() {
	if t.fifo == nil {
		pkg.LogError(pkg.ComponentTrap, "loop before setup", "error", pkg.ErrNotConfigured)
		return
	}
	if t.mode != ModeActive {
		return
	}
	t.activeTimer--
	if t.activeTimer == 0 {
		t.mode = ModeBackground
		pkg.LogInfo(pkg.ComponentTrap, "active session timed out, reverting to background")
	}
}

// checkKey is the background fifo's drain sink: the activation-key
// detector. It holds an "expected next index" counter across calls,
// counting down from [KeyLength].
func (t *Trap) checkKey(b byte) {
	if t.fifo.Size() > KeyLength {
		t.keyPos = KeyLength
		return
	}
	if b == Key[KeyLength-t.keyPos] {
		t.keyPos--
		if t.keyPos == 0 {
			t.keyPos = KeyLength
			t.enterActive()
		}
		return
	}
	t.keyPos = KeyLength
}

// enterActive transitions BACKGROUND to ACTIVE: resets the write
// count, sends ACK, and invokes on_enter, in that order — matching
// the source's ucconfig_active, which acknowledges and runs the
// enter hook before its (redundant, here folded into one) timer
// reload.
func (t *Trap) enterActive() {
	t.mode = ModeActive
	t.activeTimer = ActiveTimerMax
	t.written = 0
	t.sendAck()
	if t.onEnter != nil {
		t.onEnter()
	}
	pkg.LogInfo(pkg.ComponentTrap, "entered active mode")
}

// expectByte pops one byte and reports whether it equals want.
func (t *Trap) expectByte(want byte) bool {
	b, err := t.fifo.Pop()
	return err == nil && b == want
}

// parseCommand scans the fifo, from the tail, for a recognized
// command byte followed by NUL. A stray FRAME_END before any command
// stops the scan with no response.
func (t *Trap) parseCommand() {
	for t.fifo.Size() > 0 {
		b, err := t.fifo.Pop()
		if err != nil {
			return
		}
		if b == FrameEnd {
			return
		}
		if !isCommandByte(b) {
			continue
		}
		next, err := t.fifo.Pop()
		if err != nil || next != Nul {
			continue
		}
		switch b {
		case SetAddress:
			t.dispatchSetAddress()
			t.fifo.Flush()
		case Write:
			t.dispatchWrite()
			t.fifo.Flush()
		case Read:
			t.dispatchRead()
			t.fifo.Flush()
		case AtAddress:
			t.dispatchGetAddress()
			t.fifo.Flush()
		case Terminate:
			t.dispatchTerminate()
		}
		return
	}
}

// dispatchSetAddress handles a fully-matched SET_ADDRESS command,
// having already consumed its CMD and first NUL bytes.
func (t *Trap) dispatchSetAddress() {
	if !t.expectByte(TypeNone) {
		t.nack("set-address: expected TYPE_NONE")
		return
	}
	lb, err := t.fifo.Pop()
	if err != nil {
		t.nack("set-address: missing length byte")
		return
	}
	n := decodeLen(lb)
	if n < 1 || n > 5 {
		t.nack("set-address: length out of range")
		return
	}
	if !t.expectByte(NotUsed) || !t.expectByte(NotUsed) {
		t.nack("set-address: expected NOT_USED pair")
		return
	}
	var digits [5]byte
	for i := 0; i < n; i++ {
		d, err := t.fifo.Pop()
		if err != nil || !isDigit(d) {
			t.nack("set-address: non-digit in address")
			return
		}
		digits[i] = d
	}
	if !t.expectByte(Nul) {
		t.nack("set-address: missing trailing NUL")
		return
	}
	addr := codec.StrToInt(digits[:n])
	t.cur.Seek(uint32(addr))
	t.sendAck()
}

// dispatchGetAddress handles a fully-matched GET_ADDRESS command.
func (t *Trap) dispatchGetAddress() {
	if !t.expectByte(TypeNone) {
		t.nack("get-address: expected TYPE_NONE")
		return
	}
	if !t.expectByte(LenZero) {
		t.nack("get-address: expected LENGTH_ZERO")
		return
	}
	if !t.expectByte(NotUsed) || !t.expectByte(NotUsed) {
		t.nack("get-address: expected NOT_USED pair")
		return
	}
	if !t.expectByte(Nul) {
		t.nack("get-address: missing trailing NUL")
		return
	}
	t.sendAtAddress()
}

// dispatchTerminate handles a fully-matched TERMINATE command. Unlike
// every other command, it does not flush the remainder of the fifo
// afterward — a deliberate quirk of the source this protocol was
// distilled from, preserved here.
func (t *Trap) dispatchTerminate() {
	if !t.expectByte(TypeNone) {
		t.nack("terminate: expected TYPE_NONE")
		return
	}
	if !t.expectByte(LenZero) {
		t.nack("terminate: expected LENGTH_ZERO")
		return
	}
	if !t.expectByte(NotUsed) || !t.expectByte(NotUsed) {
		t.nack("terminate: expected NOT_USED pair")
		return
	}
	if !t.expectByte(Nul) {
		t.nack("terminate: missing trailing NUL")
		return
	}
	t.sendAck()
	t.mode = ModeBackground
	if t.onExit != nil {
		t.onExit()
	}
	pkg.LogInfo(pkg.ComponentTrap, "terminated, reverted to background")
}

// dispatchWrite handles a fully-matched WRITE command.
func (t *Trap) dispatchWrite() {
	typ, err := t.fifo.Pop()
	if err != nil {
		t.nack("write: missing type byte")
		return
	}
	tt := codec.TypeTag(typ)
	lb, err := t.fifo.Pop()
	if err != nil {
		t.nack("write: missing length byte")
		return
	}
	n := decodeLen(lb)
	if n < 1 || n > 24 {
		t.nack("write: length out of range")
		return
	}
	if !t.expectByte(NotUsed) || !t.expectByte(NotUsed) {
		t.nack("write: expected NOT_USED pair")
		return
	}
	var data [24]byte
	for i := 0; i < n; i++ {
		d, err := t.fifo.Pop()
		if err != nil || !typeCharAllowed(d, tt) {
			t.nack("write: invalid payload character")
			return
		}
		data[i] = d
	}
	if !t.expectByte(Nul) {
		t.nack("write: missing trailing NUL")
		return
	}
	if !t.writeValue(tt, data[:n]) {
		t.nack("write: unrecognized type")
		return
	}
	t.written++
	t.sendAck()
}

// writeValue dispatches the decoded payload to the matching codec
// write, invoking on_first_write beforehand if this is the session's
// first successful write. It reports false for an unrecognized type.
func (t *Trap) writeValue(tt codec.TypeTag, data []byte) bool {
	switch tt {
	case codec.TypeU8:
		t.callIfFirst()
		t.cur.WriteU8(t.write, uint8(codec.StrToUint(data)))
	case codec.TypeI8:
		t.callIfFirst()
		t.cur.WriteI8(t.write, int8(codec.StrToInt(data)))
	case codec.TypeU16:
		t.callIfFirst()
		t.cur.WriteU16(t.write, uint16(codec.StrToUint(data)))
	case codec.TypeI16:
		t.callIfFirst()
		t.cur.WriteI16(t.write, int16(codec.StrToInt(data)))
	case codec.TypeU32:
		t.callIfFirst()
		t.cur.WriteU32(t.write, codec.StrToUint(data))
	case codec.TypeI32:
		t.callIfFirst()
		t.cur.WriteI32(t.write, codec.StrToInt(data))
	case codec.TypeFloat:
		t.callIfFirst()
		t.cur.WriteFloat(t.write, codec.StrToFloat(data))
	case codec.TypeChar:
		t.callIfFirst()
		t.cur.WriteChar(t.write, data[0])
	default:
		return false
	}
	return true
}

// callIfFirst invokes on_first_write, if set, before the session's
// first successful write. The source calls this unconditionally
// (even with no callback installed); here an unset optional callback
// is silently skipped, per the error handling design's contract for
// optional hooks.
func (t *Trap) callIfFirst() {
	if t.written == 0 && t.onFirstWrite != nil {
		t.onFirstWrite()
	}
}

// dispatchRead handles a fully-matched READ command.
func (t *Trap) dispatchRead() {
	typ, err := t.fifo.Pop()
	if err != nil {
		t.nack("read: missing type byte")
		return
	}
	tt := codec.TypeTag(typ)
	if !t.expectByte(LenZero) {
		t.nack("read: expected LENGTH_ZERO")
		return
	}
	if !t.expectByte(NotUsed) || !t.expectByte(NotUsed) {
		t.nack("read: expected NOT_USED pair")
		return
	}
	if !t.expectByte(Nul) {
		t.nack("read: missing trailing NUL")
		return
	}
	t.sendReadValue(tt)
}

// sendReadValue reads the value at the cursor and emits the READ
// response frame for it, or a NACK if tt is unrecognized. Each branch
// emits a complete frame: the source's ucconfig_send_* functions print
// their own header and footer rather than sharing one, but collapsing
// that repetition into emitReadFrame changes no observable byte.
func (t *Trap) sendReadValue(tt codec.TypeTag) {
	switch tt {
	case codec.TypeU8:
		v := t.cur.ReadU8(t.read)
		t.emitReadFrame(tt, func(s codec.Sink) { codec.PrintU8(s, v) })
	case codec.TypeI8:
		v := t.cur.ReadI8(t.read)
		t.emitReadFrame(tt, func(s codec.Sink) { codec.PrintI8(s, v) })
	case codec.TypeU16:
		v := t.cur.ReadU16(t.read)
		t.emitReadFrame(tt, func(s codec.Sink) { codec.PrintU16(s, v) })
	case codec.TypeI16:
		v := t.cur.ReadI16(t.read)
		t.emitReadFrame(tt, func(s codec.Sink) { codec.PrintI16(s, v) })
	case codec.TypeU32:
		v := t.cur.ReadU32(t.read)
		t.emitReadFrame(tt, func(s codec.Sink) { codec.PrintU32(s, v) })
	case codec.TypeI32:
		v := t.cur.ReadI32(t.read)
		t.emitReadFrame(tt, func(s codec.Sink) { codec.PrintI32(s, v) })
	case codec.TypeFloat:
		v := t.cur.ReadFloat(t.read)
		t.emitReadFrame(tt, func(s codec.Sink) { codec.PrintFloat(s, v) })
	case codec.TypeChar:
		v := t.cur.ReadChar(t.read)
		t.emitReadFrame(tt, func(s codec.Sink) { codec.PrintChar(s, v) })
	default:
		t.nack("read: unrecognized type")
	}
}

func (t *Trap) emitReadFrame(tt codec.TypeTag, printValue func(codec.Sink)) {
	sink := codec.Sink(t.serialWrite)
	sink(Read)
	sink(Nul)
	sink(byte(tt))
	sink(LenZero)
	sink(NotUsed)
	sink(NotUsed)
	printValue(sink)
	sink(Nul)
	sink(FrameEnd)
	sink(Newline)
}

func (t *Trap) sendAtAddress() {
	sink := codec.Sink(t.serialWrite)
	sink(AtAddress)
	sink(Nul)
	sink(TypeNone)
	sink(LenZero)
	sink(NotUsed)
	sink(NotUsed)
	codec.PrintU16(sink, t.cur.Ptr())
	sink(Nul)
	sink(FrameEnd)
	sink(Newline)
}

func (t *Trap) sendAck() {
	sink := codec.Sink(t.serialWrite)
	sink(Ack)
	sink(Nul)
	sink(FrameEnd)
	sink(Newline)
}

// nack emits a NACK frame and records reason at debug level: NACK
// causes are never surfaced to the application as a Go error, only
// logged and signaled on the wire, per the error handling design.
func (t *Trap) nack(reason string) {
	t.sendNack()
	pkg.LogDebug(pkg.ComponentProtocol, "nack", "reason", reason)
}

func (t *Trap) sendNack() {
	sink := codec.Sink(t.serialWrite)
	sink(Nack)
	sink(Nul)
	sink(FrameEnd)
	sink(Newline)
}

// GetChar reads a character at address into dst and advances the
// cursor to address+1. The offset configured by SetAddressOffset is
// not applied; address is the raw flash address.
func (t *Trap) GetChar(dst *byte, address uint16) {
	v, next := codec.ReadChar(t.read, address)
	*dst = v
	t.cur.SetPtr(next)
}

// GetU8 reads an unsigned byte at address into dst and advances the
// cursor past it.
func (t *Trap) GetU8(dst *uint8, address uint16) {
	v, next := codec.ReadU8(t.read, address)
	*dst = v
	t.cur.SetPtr(next)
}

// GetI8 reads a signed byte at address into dst and advances the
// cursor past it.
func (t *Trap) GetI8(dst *int8, address uint16) {
	v, next := codec.ReadI8(t.read, address)
	*dst = v
	t.cur.SetPtr(next)
}

// GetU16 reads an unsigned 16-bit value at address into dst and
// advances the cursor past it.
func (t *Trap) GetU16(dst *uint16, address uint16) {
	v, next := codec.ReadU16(t.read, address)
	*dst = v
	t.cur.SetPtr(next)
}

// GetI16 reads a signed 16-bit value at address into dst and advances
// the cursor past it.
func (t *Trap) GetI16(dst *int16, address uint16) {
	v, next := codec.ReadI16(t.read, address)
	*dst = v
	t.cur.SetPtr(next)
}

// GetU32 reads an unsigned 32-bit value at address into dst and
// advances the cursor past it.
func (t *Trap) GetU32(dst *uint32, address uint16) {
	v, next := codec.ReadU32(t.read, address)
	*dst = v
	t.cur.SetPtr(next)
}

// GetI32 reads a signed 32-bit value at address into dst and advances
// the cursor past it.
func (t *Trap) GetI32(dst *int32, address uint16) {
	v, next := codec.ReadI32(t.read, address)
	*dst = v
	t.cur.SetPtr(next)
}

// GetFloat reads a fixed-scale float at address into dst and advances
// the cursor past it.
func (t *Trap) GetFloat(dst *float64, address uint16) {
	v, next := codec.ReadFloat(t.read, address)
	*dst = v
	t.cur.SetPtr(next)
}
