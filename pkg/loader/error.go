package loader

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOpcode    = errors.New("unknown instruction")
	ErrMalformedOperand = errors.New("malformed operand")
	ErrNegativeOperand  = errors.New("operand must be non-negative")
	ErrUndefinedLabel   = errors.New("undefined label")
	ErrUndefinedProc    = errors.New("undefined procedure")
	ErrUnterminatedProc = errors.New("procedure has no matching End")
)

// LoadError reports the source line a load failure was detected on
type LoadError struct {
	Line   int    // 1-based source line number
	Text   string // source line text
	Detail string // offending token or name, may be empty
	Err    error  // one of the Err* sentinels
}

func (e *LoadError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += fmt.Sprintf(" %q", e.Detail)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, msg, e.Text)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(l Line, err error, detail string) *LoadError {
	return &LoadError{
		Line:   l.Number,
		Text:   l.Text,
		Detail: detail,
		Err:    err,
	}
}
