package interpreter

import (
	"errors"
	"fmt"

	"stackvm/pkg/program"
)

var (
	ErrStackUnderflow    = errors.New("operand stack is empty")
	ErrStackIndex        = errors.New("stack index out of range")
	ErrNoFrame           = errors.New("argument access outside of a procedure")
	ErrReturnWithoutCall = errors.New("return with empty call stack")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInvalidCodepoint  = errors.New("invalid codepoint")
	ErrMaxStepsExceeded  = errors.New("maximum steps exceeded")
)

// RuntimeError reports the instruction execution stopped at
type RuntimeError struct {
	PC          int
	Instruction program.Instruction
	Err         error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("address %d (%s): %v", e.PC, e.Instruction, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}
