package program

import (
	"fmt"
	"strconv"
)

type Opcode string

// List of VM operations
const (
	OpNoop       Opcode = "Noop"
	OpPush       Opcode = "Push"
	OpPop        Opcode = "Pop"
	OpAdd        Opcode = "Add"
	OpSub        Opcode = "Sub"
	OpMul        Opcode = "Mul"
	OpDiv        Opcode = "Div"
	OpIncr       Opcode = "Incr"
	OpDecr       Opcode = "Decr"
	OpJump       Opcode = "Jump"
	OpJE         Opcode = "JE"
	OpJNE        Opcode = "JNE"
	OpJGT        Opcode = "JGT"
	OpJLT        Opcode = "JLT"
	OpJGE        Opcode = "JGE"
	OpJLE        Opcode = "JLE"
	OpGet        Opcode = "Get"
	OpSet        Opcode = "Set"
	OpGetArg     Opcode = "GetArg"
	OpSetArg     Opcode = "SetArg"
	OpPrint      Opcode = "Print"
	OpPrintC     Opcode = "PrintC"
	OpPrintStack Opcode = "PrintStack"
	OpCall       Opcode = "Call"
	OpRet        Opcode = "Ret"
)

// OperandKind describes how an opcode interprets its operand.
type OperandKind int

const (
	NoOperand OperandKind = iota
	Immediate             // signed literal
	Address               // absolute instruction address
	Slot                  // non-negative stack index
)

var operandKinds = map[Opcode]OperandKind{
	OpPush:   Immediate,
	OpJump:   Address,
	OpJE:     Address,
	OpJNE:    Address,
	OpJGT:    Address,
	OpJLT:    Address,
	OpJGE:    Address,
	OpJLE:    Address,
	OpCall:   Address,
	OpGet:    Slot,
	OpSet:    Slot,
	OpGetArg: Slot,
	OpSetArg: Slot,
}

// Operand returns the operand kind of the opcode
func (o Opcode) Operand() OperandKind {
	return operandKinds[o]
}

// IsJump reports whether the opcode transfers control to its operand
func (o Opcode) IsJump() bool {
	return o.Operand() == Address
}

// Instruction is a single resolved VM instruction. Arg is meaningful only
// when the opcode takes an operand.
type Instruction struct {
	Op  Opcode
	Arg int64
}

// String returns a string representation of the instruction
func (i Instruction) String() string {
	if i.Op.Operand() == NoOperand {
		return string(i.Op)
	}

	return fmt.Sprintf("%s %s", i.Op, strconv.FormatInt(i.Arg, 10))
}
