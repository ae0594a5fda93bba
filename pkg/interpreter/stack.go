package interpreter

import (
	"fmt"
	"strconv"
	"strings"
)

// Stack is the operand stack. Index 0 is the bottom element.
type Stack struct {
	a []int64
}

// NewStack creates a new stack holding the given elements, bottom first
func NewStack(elm ...int64) *Stack {
	return &Stack{a: append(make([]int64, 0, max(len(elm), 16)), elm...)}
}

// Push adds an element to the top of the stack
func (s *Stack) Push(v int64) {
	s.a = append(s.a, v)
}

// Pop removes and returns the top element of the stack
func (s *Stack) Pop() (int64, error) {
	if len(s.a) == 0 {
		return 0, ErrStackUnderflow
	}

	v := s.a[len(s.a)-1]
	s.a = s.a[:len(s.a)-1]
	return v, nil
}

// Peek returns the top element of the stack without removing it
func (s *Stack) Peek() (int64, error) {
	if len(s.a) == 0 {
		return 0, ErrStackUnderflow
	}

	return s.a[len(s.a)-1], nil
}

// SetTop replaces the top element
func (s *Stack) SetTop(v int64) error {
	if len(s.a) == 0 {
		return ErrStackUnderflow
	}

	s.a[len(s.a)-1] = v
	return nil
}

// Get returns the element at absolute index idx
func (s *Stack) Get(idx int64) (int64, error) {
	if idx < 0 || idx >= int64(len(s.a)) {
		return 0, fmt.Errorf("%w: %d (size %d)", ErrStackIndex, idx, len(s.a))
	}

	return s.a[idx], nil
}

// Set overwrites the element at absolute index idx
func (s *Stack) Set(idx int64, v int64) error {
	if idx < 0 || idx >= int64(len(s.a)) {
		return fmt.Errorf("%w: %d (size %d)", ErrStackIndex, idx, len(s.a))
	}

	s.a[idx] = v
	return nil
}

// Size returns the number of elements on the stack
func (s *Stack) Size() int {
	return len(s.a)
}

// Array returns a copy of the elements, bottom first
func (s *Stack) Array() []int64 {
	return append([]int64(nil), s.a...)
}

// String renders the stack top first, e.g. "[3, 2, 1]"
func (s *Stack) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := len(s.a) - 1; i >= 0; i-- {
		b.WriteString(strconv.FormatInt(s.a[i], 10))
		if i > 0 {
			b.WriteString(", ")
		}
	}
	b.WriteByte(']')
	return b.String()
}
