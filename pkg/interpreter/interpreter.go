package interpreter

import (
	"io"
	"os"

	"stackvm/pkg/program"

	"github.com/charmbracelet/log"
)

// Interpreter executes a resolved Program against an operand stack and a
// call-frame stack.
type Interpreter struct {
	prog program.Program // resolved instructions, read-only
	ip   int             // instruction pointer

	stack  *Stack  // operand stack
	frames []Frame // call stack

	out io.Writer // output writer for Print, PrintC and PrintStack

	trace    bool  // log every step at debug level
	maxSteps int   // maximum steps (0 = unlimited)
	steps    int   // steps executed
	halted   bool  // pointer left the program
	err      error // runtime error that aborted the run
}

type Option func(*Interpreter)

// WithWriter sets the output writer
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithMaxSteps sets a maximum number of steps before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithTrace logs each executed instruction at debug level
func WithTrace(enabled bool) Option {
	return func(i *Interpreter) { i.trace = enabled }
}

// NewInterpreter creates a new Interpreter instance
func NewInterpreter(prog program.Program, opts ...Option) *Interpreter {
	it := &Interpreter{
		prog:   prog,
		stack:  NewStack(),
		frames: make([]Frame, 0, 8),
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}

	return it
}

// Load replaces the current program, resetting state
func (i *Interpreter) Load(prog program.Program) {
	i.prog = prog
	i.Reset()
}

// Reset clears runtime state (stack, call stack, IP, counters)
func (i *Interpreter) Reset() {
	i.ip = 0
	i.stack = NewStack()
	i.frames = i.frames[:0]
	i.steps = 0
	i.halted = false
	i.err = nil
}

// Program returns the active program
func (i *Interpreter) Program() program.Program {
	return i.prog
}

// Step executes a single instruction, returning (halted, error).
// Once halted or aborted, Step has no further effect.
func (i *Interpreter) Step() (bool, error) {
	if i.err != nil {
		return false, i.err
	}

	if i.halted || !i.prog.Valid(i.ip) {
		i.halted = true
		return true, nil
	}

	pc := i.ip
	in := i.prog[pc]

	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		i.err = &RuntimeError{PC: pc, Instruction: in, Err: ErrMaxStepsExceeded}
		return false, i.err
	}

	if i.trace {
		log.Debug("Step", "pc", pc, "op", in, "stack", i.stack, "depth", len(i.frames))
	}

	err := coreStep(i, in)
	i.steps++

	if err != nil {
		i.err = &RuntimeError{PC: pc, Instruction: in, Err: err}
		return false, i.err
	}

	if !i.prog.Valid(i.ip) {
		i.halted = true
	}

	return i.halted, nil
}

// Run executes until halt or error
func (i *Interpreter) Run() error {
	for {
		halted, err := i.Step()
		if err != nil {
			return err
		}

		if halted {
			return nil
		}
	}
}

// PC returns the current instruction pointer
func (i *Interpreter) PC() int {
	return i.ip
}

// Stack returns a copy of the operand stack, bottom first
func (i *Interpreter) Stack() []int64 {
	return i.stack.Array()
}

// Depth returns the number of active call frames
func (i *Interpreter) Depth() int {
	return len(i.frames)
}

// Steps returns the number of instructions executed
func (i *Interpreter) Steps() int {
	return i.steps
}

// Halted reports whether the pointer has left the program
func (i *Interpreter) Halted() bool {
	return i.halted
}

// currentFrame returns the current call frame, or nil if none
func (i *Interpreter) currentFrame() *Frame {
	if len(i.frames) == 0 {
		return nil
	}

	return &i.frames[len(i.frames)-1]
}

// pushFrame records a call issued at the current stack size
func (i *Interpreter) pushFrame(returnTo int) {
	i.frames = append(i.frames, Frame{Offset: i.stack.Size(), ReturnTo: returnTo})
}

// popFrame pops the current call frame
func (i *Interpreter) popFrame() (Frame, error) {
	if len(i.frames) == 0 {
		return Frame{}, ErrReturnWithoutCall
	}

	f := i.frames[len(i.frames)-1]
	i.frames = i.frames[:len(i.frames)-1]
	return f, nil
}

// base returns the zero point for Get and Set
func (i *Interpreter) base() int64 {
	if f := i.currentFrame(); f != nil {
		return int64(f.Offset)
	}

	return 0
}
