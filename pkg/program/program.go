package program

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"stackvm/pkg/color"

	"github.com/zeebo/blake3"
)

// Program is the fixed, resolved instruction array. Positions are addresses.
type Program []Instruction

// Len returns the number of addressable instructions
func (p Program) Len() int {
	return len(p)
}

// Valid reports whether addr points inside the program
func (p Program) Valid(addr int) bool {
	return addr >= 0 && addr < len(p)
}

// Fingerprint returns the BLAKE3 digest of the resolved instructions.
// Two programs with the same opcodes and operands in the same order
// have the same fingerprint.
func (p Program) Fingerprint() string {
	h := blake3.New()

	var buf [8]byte
	for _, in := range p {
		h.Write([]byte(in.Op))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], uint64(in.Arg))
		h.Write(buf[:])
	}

	return hex.EncodeToString(h.Sum(nil))
}

// WriteListing writes one line per address in the form "addr: Op arg".
func (p Program) WriteListing(w io.Writer) error {
	width := len(fmt.Sprintf("%d", max(len(p)-1, 0)))

	for addr, in := range p {
		arg := ""
		switch in.Op.Operand() {
		case Address:
			arg = " " + color.BlueText(fmt.Sprintf("@%d", in.Arg))
		case Immediate, Slot:
			arg = " " + color.BlueText(fmt.Sprintf("%d", in.Arg))
		}

		op := color.YellowText(string(in.Op))
		if in.Op == OpNoop {
			op = color.GrayText(string(in.Op))
		}

		_, err := fmt.Fprintf(w, "%s: %s%s\n", color.CyanText(fmt.Sprintf("%*d", width, addr)), op, arg)
		if err != nil {
			return err
		}
	}

	return nil
}

// Listing returns the listing as a string
func (p Program) Listing() string {
	var b strings.Builder
	_ = p.WriteListing(&b)
	return b.String()
}
