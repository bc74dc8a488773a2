// Command ucconfig-host is a PC-side companion for the ucconfig
// protocol engine. It opens a real serial port, sends the activation
// key, issues one wire command, and prints the device's response.
//
// Usage:
//
//	ucconfig-host -port /dev/ttyUSB0 set-address 100
//	ucconfig-host -port /dev/ttyUSB0 write u8 42
//	ucconfig-host -port /dev/ttyUSB0 read float
//	ucconfig-host -port /dev/ttyUSB0 get-address
//	ucconfig-host -port /dev/ttyUSB0 terminate
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/tarm/serial"

	"github.com/ardnew/ucconfig/codec"
	"github.com/ardnew/ucconfig/pkg"
	"github.com/ardnew/ucconfig/pkg/prof"
	"github.com/ardnew/ucconfig/trap"
)

// componentHost identifies this tool's log lines.
const componentHost pkg.Component = "host"

var (
	port    = flag.String("port", "/dev/ttyUSB0", "Serial device to open")
	baud    = flag.Int("baud", 9600, "Baud rate")
	verbose = flag.Bool("v", false, "Enable verbose logging")
	timeout = flag.Duration("timeout", 2*time.Second, "Response read timeout")
	cpuProf = flag.String("cpuprofile", "", "Write a CPU profile to this path before exiting (requires -tags profile)")
)

func main() {
	flag.Parse()

	if *verbose {
		pkg.SetLogLevel(slog.LevelDebug)
	}

	if *cpuProf != "" {
		if err := prof.StartCPU(*cpuProf); err != nil {
			pkg.LogError(componentHost, "failed to start cpu profile", "error", err)
			os.Exit(1)
		}
		defer prof.StopCPU()
	}

	args := flag.Args()
	if len(args) == 0 {
		pkg.LogError(componentHost, "no command given", "usage", "set-address|write|read|get-address|terminate")
		os.Exit(2)
	}

	cfg := &serial.Config{Name: *port, Baud: *baud, ReadTimeout: *timeout}
	conn, err := serial.OpenPort(cfg)
	if err != nil {
		pkg.LogError(componentHost, "failed to open port", "port", *port, "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	c := &client{conn: conn}
	if err := c.activate(); err != nil {
		pkg.LogError(componentHost, "activation failed", "error", err)
		os.Exit(1)
	}

	if err := c.dispatch(args[0], args[1:]); err != nil {
		pkg.LogError(componentHost, "command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

// client drives the wire protocol over an open serial connection.
type client struct {
	conn *serial.Port
}

// activate sends the 4-byte activation key and waits for the resulting
// ACK frame.
func (c *client) activate() error {
	if _, err := c.conn.Write(trap.Key[:]); err != nil {
		return err
	}
	_, err := c.readFrame()
	return err
}

func (c *client) dispatch(cmd string, args []string) error {
	switch cmd {
	case "set-address":
		if len(args) != 1 {
			return fmt.Errorf("set-address requires an address argument")
		}
		addr, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return err
		}
		return c.setAddress(uint16(addr))
	case "write":
		if len(args) != 2 {
			return fmt.Errorf("write requires a type and a value argument")
		}
		return c.write(args[0], args[1])
	case "read":
		if len(args) != 1 {
			return fmt.Errorf("read requires a type argument")
		}
		return c.read(args[0])
	case "get-address":
		return c.getAddress()
	case "terminate":
		return c.terminate()
	default:
		return fmt.Errorf("unrecognized command %q", cmd)
	}
}

// sendFrame writes CMD NUL TYPE LEN NOT_USED NOT_USED DATA... NUL
// FRAME_END in a single Write call; the device side feeds the received
// bytes to Listen one at a time.
func (c *client) sendFrame(cmdByte byte, tt codec.TypeTag, data []byte) error {
	frame := make([]byte, 0, 9+len(data))
	frame = append(frame, cmdByte, trap.Nul, byte(tt))
	if len(data) == 0 {
		frame = append(frame, trap.LenZero)
	} else {
		frame = append(frame, byte(len(data)+64))
	}
	frame = append(frame, trap.NotUsed, trap.NotUsed)
	frame = append(frame, data...)
	frame = append(frame, trap.Nul, trap.FrameEnd)
	_, err := c.conn.Write(frame)
	return err
}

// readFrame reads one response frame's payload bytes, stopping at
// FRAME_END. The trailing NEWLINE byte following FRAME_END is
// consumed but not returned.
func (c *client) readFrame() ([]byte, error) {
	var out []byte
	buf := make([]byte, 1)
	for {
		n, err := c.conn.Read(buf)
		if err != nil {
			return out, err
		}
		if n == 0 {
			continue
		}
		out = append(out, buf[0])
		if buf[0] == trap.FrameEnd {
			c.conn.Read(buf) // discard the trailing NEWLINE
			return out, nil
		}
	}
}

func (c *client) setAddress(addr uint16) error {
	var digits []byte
	codec.PrintU16(func(b byte) { digits = append(digits, b) }, addr)
	if err := c.sendFrame(trap.SetAddress, codec.TypeNone, digits); err != nil {
		return err
	}
	resp, err := c.readFrame()
	if err != nil {
		return err
	}
	return reportAck(resp)
}

func (c *client) getAddress() error {
	if err := c.sendFrame(trap.AtAddress, codec.TypeNone, nil); err != nil {
		return err
	}
	resp, err := c.readFrame()
	if err != nil {
		return err
	}
	fmt.Println(string(payload(resp)))
	return nil
}

func (c *client) terminate() error {
	if err := c.sendFrame(trap.Terminate, codec.TypeNone, nil); err != nil {
		return err
	}
	resp, err := c.readFrame()
	if err != nil {
		return err
	}
	return reportAck(resp)
}

func (c *client) write(typeName, value string) error {
	tt, err := parseTypeTag(typeName)
	if err != nil {
		return err
	}
	var data []byte
	switch tt {
	case codec.TypeChar:
		if len(value) != 1 {
			return fmt.Errorf("char value must be a single byte, got %q", value)
		}
		data = []byte(value)
	default:
		data = []byte(value)
	}
	if err := c.sendFrame(trap.Write, tt, data); err != nil {
		return err
	}
	resp, err := c.readFrame()
	if err != nil {
		return err
	}
	return reportAck(resp)
}

func (c *client) read(typeName string) error {
	tt, err := parseTypeTag(typeName)
	if err != nil {
		return err
	}
	if err := c.sendFrame(trap.Read, tt, nil); err != nil {
		return err
	}
	resp, err := c.readFrame()
	if err != nil {
		return err
	}
	fmt.Println(string(payload(resp)))
	return nil
}

// payload strips the CMD NUL TYPE LEN NOT_USED NOT_USED header and
// trailing NUL FRAME_END from a response frame, leaving the ASCII data.
func payload(frame []byte) []byte {
	const headerLen = 6
	if len(frame) < headerLen+2 {
		return nil
	}
	return frame[headerLen : len(frame)-2]
}

func reportAck(resp []byte) error {
	if len(resp) == 0 {
		return fmt.Errorf("empty response")
	}
	switch resp[0] {
	case trap.Ack:
		fmt.Println("ACK")
		return nil
	case trap.Nack:
		return fmt.Errorf("device NACKed")
	default:
		return fmt.Errorf("unexpected response byte %d", resp[0])
	}
}

func parseTypeTag(name string) (codec.TypeTag, error) {
	switch name {
	case "u8":
		return codec.TypeU8, nil
	case "i8":
		return codec.TypeI8, nil
	case "u16":
		return codec.TypeU16, nil
	case "i16":
		return codec.TypeI16, nil
	case "u32":
		return codec.TypeU32, nil
	case "i32":
		return codec.TypeI32, nil
	case "float":
		return codec.TypeFloat, nil
	case "char":
		return codec.TypeChar, nil
	default:
		return 0, fmt.Errorf("unrecognized type %q", name)
	}
}
