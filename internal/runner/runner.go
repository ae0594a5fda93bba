package runner

import (
	"fmt"
	"io"
	"os"

	"stackvm/internal/config"
	"stackvm/pkg/color"
	"stackvm/pkg/interpreter"
	"stackvm/pkg/loader"

	"github.com/charmbracelet/log"
)

type Runner struct {
	config.Config
	SourceFile string    // Path to the program file
	Out        io.Writer // Program output, stdout when nil
}

// Execute loads program text and runs it to completion, writing program
// output to out. A load error means nothing was executed.
func Execute(text string, out io.Writer, opts ...interpreter.Option) error {
	prog, err := loader.Load(text)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	opts = append([]interpreter.Option{interpreter.WithWriter(out)}, opts...)
	if err := interpreter.Exec(prog, opts...); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	return nil
}

// Run reads the source file, loads it, optionally prints the resolved
// listing and then interprets it.
func (r *Runner) Run() error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	log.Info("Processing file", "file", r.SourceFile)

	text, err := ReadSource(r.SourceFile)
	if err != nil {
		return err
	}

	prog, err := loader.Load(text)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	log.Debug("Loaded program", "instructions", prog.Len(), "fingerprint", prog.Fingerprint())

	if r.Listing {
		fmt.Fprintln(out, color.GreenText("=== Resolved Program ==="))
		if prog.Len() == 0 {
			fmt.Fprintln(out, color.GrayText("No instructions."))
		} else if err := prog.WriteListing(out); err != nil {
			return err
		}
		fmt.Fprintln(out, color.GreenText("=== Program Output ==="))
	}

	intr := interpreter.NewInterpreter(prog,
		interpreter.WithWriter(out),
		interpreter.WithMaxSteps(r.MaxSteps),
		interpreter.WithTrace(r.Trace),
	)
	if err := intr.Run(); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	log.Debug("Program halted", "steps", intr.Steps(), "pc", intr.PC())
	return nil
}
