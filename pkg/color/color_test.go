package color_test

import (
	"strings"
	"testing"

	"stackvm/pkg/color"

	"github.com/muesli/termenv"
	. "github.com/onsi/gomega"
)

func TestDisabledColorIsPlainText(t *testing.T) {
	g := NewWithT(t)

	color.EnableColor(false)
	defer color.EnableColor(false)

	g.Expect(color.RedText("x")).To(Equal("x"))
	g.Expect(color.BoldText("x")).To(Equal("x"))
	g.Expect(color.Error("boom")).To(Equal("Error: boom"))
	g.Expect(color.Line(3)).To(Equal("line 3"))
}

func TestEnabledColorWrapsText(t *testing.T) {
	g := NewWithT(t)

	color.EnableColor(true)
	color.SetProfile(termenv.ANSI256)
	defer color.EnableColor(false)

	out := color.CyanText("addr")
	g.Expect(out).To(ContainSubstring("addr"))
	g.Expect(strings.HasPrefix(out, "\x1b[")).To(BeTrue())

	color.SetProfile(termenv.Ascii)
	g.Expect(color.CyanText("addr")).To(Equal("addr"))
	color.SetProfile(termenv.ANSI256)
}
