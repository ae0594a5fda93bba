package loader

import (
	"strconv"

	"stackvm/pkg/program"

	"github.com/charmbracelet/log"
)

// Structural keywords that do not map to an opcode of their own
const (
	kwLabel = "label"
	kwProc  = "Proc"
	kwEnd   = "End"
)

// mnemonics lists the source mnemonics that compile one-to-one to an opcode
var mnemonics = map[string]program.Opcode{
	"Push":       program.OpPush,
	"Pop":        program.OpPop,
	"Add":        program.OpAdd,
	"Sub":        program.OpSub,
	"Mul":        program.OpMul,
	"Div":        program.OpDiv,
	"Incr":       program.OpIncr,
	"Decr":       program.OpDecr,
	"Jump":       program.OpJump,
	"JE":         program.OpJE,
	"JNE":        program.OpJNE,
	"JGT":        program.OpJGT,
	"JLT":        program.OpJLT,
	"JGE":        program.OpJGE,
	"JLE":        program.OpJLE,
	"Get":        program.OpGet,
	"Set":        program.OpSet,
	"GetArg":     program.OpGetArg,
	"SetArg":     program.OpSetArg,
	"Print":      program.OpPrint,
	"PrintC":     program.OpPrintC,
	"PrintStack": program.OpPrintStack,
	"Call":       program.OpCall,
	"Ret":        program.OpRet,
}

// Span is the address range of a procedure declaration
type Span struct {
	Proc int // address of the Proc line
	End  int // address of the first End line after it
}

// Loader resolves program text into a Program in two passes: the first
// indexes lines, labels and procedures, the second compiles each line.
type Loader struct {
	lines  []Line
	labels map[string]int  // label name -> address of its declaration
	procs  map[string]Span // procedure name -> declaration span
	ends   map[int]int     // Proc line address -> matching End address
}

// NewLoader creates a loader for the given program text
func NewLoader(text string) *Loader {
	return &Loader{
		lines:  SplitLines(text),
		labels: make(map[string]int),
		procs:  make(map[string]Span),
		ends:   make(map[int]int),
	}
}

// Load resolves text into a Program
func Load(text string) (program.Program, error) {
	return NewLoader(text).Load()
}

// Load builds the label and procedure tables and compiles every line.
// The resulting program has exactly one instruction per surviving line.
func (ld *Loader) Load() (program.Program, error) {
	ld.indexLabels()
	if err := ld.indexProcs(); err != nil {
		return nil, err
	}

	log.Debug("Indexed program", "lines", len(ld.lines), "labels", len(ld.labels), "procs", len(ld.procs))

	prog := make(program.Program, len(ld.lines))
	for addr, l := range ld.lines {
		in, err := ld.compile(addr, l)
		if err != nil {
			return nil, err
		}
		prog[addr] = in
	}

	return prog, nil
}

// Lines returns the surviving line sequence
func (ld *Loader) Lines() []Line {
	return ld.lines
}

// Labels returns the label table
func (ld *Loader) Labels() map[string]int {
	return ld.labels
}

// Procs returns the procedure table
func (ld *Loader) Procs() map[string]Span {
	return ld.procs
}

// indexLabels records every "label <name>" line; later declarations win
func (ld *Loader) indexLabels() {
	for addr, l := range ld.lines {
		if len(l.Tokens) == 2 && l.Tokens[0] == kwLabel {
			ld.labels[l.Tokens[1]] = addr
		}
	}
}

// indexProcs records every "Proc <name>" line together with the first
// End line that follows it. Declarations do not nest.
func (ld *Loader) indexProcs() error {
	for addr, l := range ld.lines {
		if len(l.Tokens) != 2 || l.Tokens[0] != kwProc {
			continue
		}

		end := -1
		for j := addr + 1; j < len(ld.lines); j++ {
			if ld.lines[j].is(kwEnd) {
				end = j
				break
			}
		}

		if end < 0 {
			return newLoadError(l, ErrUnterminatedProc, l.Tokens[1])
		}

		ld.procs[l.Tokens[1]] = Span{Proc: addr, End: end}
		ld.ends[addr] = end
	}

	return nil
}

// compile translates a single line into its instruction
func (ld *Loader) compile(addr int, l Line) (program.Instruction, error) {
	head, args := l.Tokens[0], l.Tokens[1:]

	switch head {
	case kwLabel:
		if len(args) != 1 {
			return program.Instruction{}, newLoadError(l, ErrMalformedOperand, "")
		}
		return program.Instruction{Op: program.OpNoop}, nil

	case kwEnd:
		if len(args) != 0 {
			return program.Instruction{}, newLoadError(l, ErrMalformedOperand, args[0])
		}
		return program.Instruction{Op: program.OpNoop}, nil

	case kwProc:
		if len(args) != 1 {
			return program.Instruction{}, newLoadError(l, ErrMalformedOperand, "")
		}
		// falling into a declaration skips the body
		return program.Instruction{Op: program.OpJump, Arg: int64(ld.ends[addr] + 1)}, nil
	}

	op, ok := mnemonics[head]
	if !ok {
		return program.Instruction{}, newLoadError(l, ErrUnknownOpcode, head)
	}

	if op.Operand() == program.NoOperand {
		if len(args) != 0 {
			return program.Instruction{}, newLoadError(l, ErrMalformedOperand, args[0])
		}
		return program.Instruction{Op: op}, nil
	}

	if len(args) != 1 {
		return program.Instruction{}, newLoadError(l, ErrMalformedOperand, "")
	}
	arg := args[0]

	switch op.Operand() {
	case program.Address:
		if op == program.OpCall {
			span, ok := ld.procs[arg]
			if !ok {
				return program.Instruction{}, newLoadError(l, ErrUndefinedProc, arg)
			}
			return program.Instruction{Op: op, Arg: int64(span.Proc + 1)}, nil
		}

		target, ok := ld.labels[arg]
		if !ok {
			return program.Instruction{}, newLoadError(l, ErrUndefinedLabel, arg)
		}
		return program.Instruction{Op: op, Arg: int64(target)}, nil

	case program.Slot:
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return program.Instruction{}, newLoadError(l, ErrMalformedOperand, arg)
		}
		if n < 0 {
			return program.Instruction{}, newLoadError(l, ErrNegativeOperand, arg)
		}
		return program.Instruction{Op: op, Arg: n}, nil

	default:
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return program.Instruction{}, newLoadError(l, ErrMalformedOperand, arg)
		}
		return program.Instruction{Op: op, Arg: n}, nil
	}
}
