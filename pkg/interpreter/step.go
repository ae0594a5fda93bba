package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"stackvm/pkg/program"
)

// Exec runs a program to completion with the given options
func Exec(prog program.Program, opts ...Option) error {
	return NewInterpreter(prog, opts...).Run()
}

// coreStep applies a single instruction. The pointer advances by one
// unless the instruction transfers control.
func coreStep(i *Interpreter, in program.Instruction) error {
	next := i.ip + 1

	switch in.Op {
	case program.OpNoop:

	case program.OpPush:
		i.stack.Push(in.Arg)

	case program.OpPop:
		if _, err := i.stack.Pop(); err != nil {
			return err
		}

	case program.OpAdd, program.OpSub, program.OpMul, program.OpDiv:
		top, err := i.stack.Pop()
		if err != nil {
			return err
		}
		nxt, err := i.stack.Pop()
		if err != nil {
			return err
		}
		res, err := evalBinary(in.Op, nxt, top)
		if err != nil {
			return err
		}
		i.stack.Push(res)

	case program.OpIncr, program.OpDecr:
		top, err := i.stack.Peek()
		if err != nil {
			return err
		}
		if in.Op == program.OpIncr {
			top++
		} else {
			top--
		}
		if err := i.stack.SetTop(top); err != nil {
			return err
		}

	case program.OpJump:
		next = int(in.Arg)

	case program.OpJE, program.OpJNE, program.OpJGT, program.OpJLT, program.OpJGE, program.OpJLE:
		// the tested value is consumed only when the branch is taken
		v, err := i.stack.Peek()
		if err != nil {
			return err
		}
		if branchTaken(in.Op, v) {
			if _, err := i.stack.Pop(); err != nil {
				return err
			}
			next = int(in.Arg)
		}

	case program.OpGet:
		v, err := i.stack.Get(i.base() + in.Arg)
		if err != nil {
			return err
		}
		i.stack.Push(v)

	case program.OpSet:
		top, err := i.stack.Peek()
		if err != nil {
			return err
		}
		if err := i.stack.Set(i.base()+in.Arg, top); err != nil {
			return err
		}

	case program.OpGetArg:
		f := i.currentFrame()
		if f == nil {
			return ErrNoFrame
		}
		v, err := i.stack.Get(f.arg(in.Arg))
		if err != nil {
			return err
		}
		i.stack.Push(v)

	case program.OpSetArg:
		f := i.currentFrame()
		if f == nil {
			return ErrNoFrame
		}
		top, err := i.stack.Peek()
		if err != nil {
			return err
		}
		if err := i.stack.Set(f.arg(in.Arg), top); err != nil {
			return err
		}

	case program.OpPrint:
		top, err := i.stack.Peek()
		if err != nil {
			return err
		}
		if _, err := io.WriteString(i.out, strconv.FormatInt(top, 10)); err != nil {
			return err
		}

	case program.OpPrintC:
		top, err := i.stack.Peek()
		if err != nil {
			return err
		}
		if top < 0 || top > utf8.MaxRune || !utf8.ValidRune(rune(top)) {
			return fmt.Errorf("%w: %d", ErrInvalidCodepoint, top)
		}
		if _, err := io.WriteString(i.out, string(rune(top))); err != nil {
			return err
		}

	case program.OpPrintStack:
		if _, err := io.WriteString(i.out, i.stack.String()+"\n"); err != nil {
			return err
		}

	case program.OpCall:
		i.pushFrame(next)
		next = int(in.Arg)

	case program.OpRet:
		f, err := i.popFrame()
		if err != nil {
			return err
		}
		next = f.ReturnTo

	default:
		return fmt.Errorf("unhandled opcode %q", in.Op)
	}

	i.ip = next
	return nil
}

// evalBinary applies an arithmetic opcode; next was pushed before top
func evalBinary(op program.Opcode, next, top int64) (int64, error) {
	switch op {
	case program.OpAdd:
		return next + top, nil
	case program.OpSub:
		return next - top, nil
	case program.OpMul:
		return next * top, nil
	case program.OpDiv:
		if top == 0 {
			return 0, ErrDivisionByZero
		}
		return next / top, nil
	default:
		return 0, fmt.Errorf("unsupported binary op: %s", op)
	}
}

// branchTaken evaluates a conditional jump predicate against v
func branchTaken(op program.Opcode, v int64) bool {
	switch op {
	case program.OpJE:
		return v == 0
	case program.OpJNE:
		return v != 0
	case program.OpJGT:
		return v > 0
	case program.OpJLT:
		return v < 0
	case program.OpJGE:
		return v >= 0
	case program.OpJLE:
		return v <= 0
	default:
		return false
	}
}
