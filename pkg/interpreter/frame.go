package interpreter

// Frame represents a procedure call frame.
type Frame struct {
	Offset   int // operand stack size when the call was issued
	ReturnTo int // address of the instruction following the Call
}

// arg resolves argument i to an absolute stack index. Argument 0 is the
// value the caller pushed last.
func (f Frame) arg(i int64) int64 {
	return int64(f.Offset) - i - 1
}
