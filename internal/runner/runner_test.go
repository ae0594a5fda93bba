package runner_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stackvm/internal/config"
	"stackvm/internal/runner"
	"stackvm/pkg/color"
	"stackvm/pkg/interpreter"
	"stackvm/pkg/loader"

	"github.com/klauspost/compress/zstd"
	. "github.com/onsi/gomega"
)

const hello = `# prints "Hi" and a stack dump
Push 72
PrintC
Push 105
PrintC
PrintStack
`

func TestExecute(t *testing.T) {
	g := NewWithT(t)

	var out bytes.Buffer
	g.Expect(runner.Execute(hello, &out)).To(Succeed())
	g.Expect(out.String()).To(Equal("Hi[105, 72]\n"))
}

func TestExecuteLoadErrorRunsNothing(t *testing.T) {
	g := NewWithT(t)

	var out bytes.Buffer
	err := runner.Execute("Push 1\nPrint\nJump nowhere", &out)
	g.Expect(errors.Is(err, loader.ErrUndefinedLabel)).To(BeTrue())
	g.Expect(out.Len()).To(BeZero())
}

func TestExecuteKeepsOutputBeforeRuntimeError(t *testing.T) {
	g := NewWithT(t)

	var out bytes.Buffer
	err := runner.Execute("Push 4\nPrint\nPop\nPop\nPrint", &out)
	g.Expect(errors.Is(err, interpreter.ErrStackUnderflow)).To(BeTrue())
	g.Expect(out.String()).To(Equal("4"))
}

func TestReadSourceCompressed(t *testing.T) {
	g := NewWithT(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.svm.zst")

	f, err := os.Create(path)
	g.Expect(err).NotTo(HaveOccurred())
	enc, err := zstd.NewWriter(f)
	g.Expect(err).NotTo(HaveOccurred())
	_, err = enc.Write([]byte(hello))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(enc.Close()).To(Succeed())
	g.Expect(f.Close()).To(Succeed())

	src, err := runner.ReadSource(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(src).To(Equal(hello))
}

func TestRunWithListing(t *testing.T) {
	g := NewWithT(t)
	color.EnableColor(false)

	path := filepath.Join(t.TempDir(), "hello.svm")
	g.Expect(os.WriteFile(path, []byte(hello), 0o644)).To(Succeed())

	var out bytes.Buffer
	r := runner.Runner{
		Config:     config.Config{Listing: true},
		SourceFile: path,
		Out:        &out,
	}
	g.Expect(r.Run()).To(Succeed())

	parts := strings.Split(out.String(), "=== Program Output ===\n")
	g.Expect(parts).To(HaveLen(2))
	g.Expect(parts[0]).To(ContainSubstring("0: Push 72\n"))
	g.Expect(parts[0]).To(ContainSubstring("4: PrintStack\n"))
	g.Expect(parts[1]).To(Equal("Hi[105, 72]\n"))
}

func TestRunStepLimit(t *testing.T) {
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "spin.svm")
	g.Expect(os.WriteFile(path, []byte("label spin\nJump spin\n"), 0o644)).To(Succeed())

	r := runner.Runner{
		Config:     config.Config{MaxSteps: 50},
		SourceFile: path,
		Out:        &bytes.Buffer{},
	}
	g.Expect(errors.Is(r.Run(), interpreter.ErrMaxStepsExceeded)).To(BeTrue())
}

func TestRunMissingFile(t *testing.T) {
	g := NewWithT(t)

	r := runner.Runner{SourceFile: filepath.Join(t.TempDir(), "none.svm"), Out: &bytes.Buffer{}}
	g.Expect(errors.Is(r.Run(), os.ErrNotExist)).To(BeTrue())
}
