package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Text renders reports as tab separated tables.
type Text struct {
	w    io.Writer
	bold func(a ...interface{}) string
}

// NewText returns a renderer writing to w. Section titles are bold when
// styled is set and color output is enabled.
func NewText(w io.Writer, styled bool) *Text {
	t := &Text{w: w, bold: fmt.Sprint}
	if styled {
		t.bold = color.New(color.Bold).SprintFunc()
	}
	return t
}

func (t *Text) printf(format string, a ...interface{}) {
	fmt.Fprintf(t.w, format, a...)
}

func (t *Text) section(title, header string, rule int) {
	t.printf("%s\n\n", t.bold(title))
	t.printf("%s\n", header)
	t.printf(" %s\n", strings.Repeat("-", rule))
}

// Write renders every non-empty section of r. Sections are separated by two
// blank lines.
func (t *Text) Write(r *Report) {
	var sections []func()

	if len(r.Unloaded) > 0 {
		sections = append(sections, func() { t.unloaded(r) })
	}
	if len(r.LoadedVoltages) > 0 {
		sections = append(sections, func() { t.loadedVoltages(r) })
	}
	if len(r.LoadedDuties) > 0 {
		sections = append(sections, func() { t.loadedDuties(r, len(r.LoadedVoltages) > 0) })
	}
	if len(r.Presets) > 0 {
		sections = append(sections, func() { t.presets(r) })
	}
	if len(r.Pulses) > 0 {
		sections = append(sections, func() { t.pulses(r) })
	}

	if r.Title != "" {
		t.printf("%s\n\n", t.bold(r.Title))
	}
	for i, s := range sections {
		if i > 0 {
			t.printf("\n\n")
		}
		s()
	}
}

func (t *Text) unloaded(r *Report) {
	t.section("Output unloaded:", " Vc [V]\t\tVo [V]\t\t  d [-]", 40)
	for _, d := range r.Unloaded {
		t.printf(" %1.3fV\t\t%1.3fV\t\t%3d / %.1f%%\n", d.Input, d.Output, d.Code, d.Percent)
	}
}

func (t *Text) loadedVoltages(r *Report) {
	t.section("Output connected to AL8807 CTRL pin:", " d [-]\t\td [%]\t\tVctrl [V]", 40)
	for _, v := range r.LoadedVoltages {
		t.printf(" %3d\t\t%.1f%%\t\t%1.3fV\n", v.Code, v.Percent(), v.Voltage)
	}
}

// The inverse table continues the CTRL pin section without its own title
// when both are printed.
func (t *Text) loadedDuties(r *Report, continued bool) {
	if continued {
		t.printf(" Vctrl [V]\td [%%]\t\td [-]\n")
		t.printf(" %s\n", strings.Repeat("-", 36))
	} else {
		t.section("Output connected to AL8807 CTRL pin:", " Vctrl [V]\td [%]\t\td [-]", 36)
	}
	for _, d := range r.LoadedDuties {
		marker := ""
		if d.Clamped {
			marker = "*"
		}
		t.printf(" %1.3fV\t\t%.1f%%\t\t%4d%s\n", d.Input, d.Percent, d.Code, marker)
	}
}

func (t *Text) presets(r *Report) {
	t.section("Firmware output presets:", " Preset\t\tV [mV]\t\td [-]\t\td [%]\t\tVctrl [V]", 64)
	for _, p := range r.Presets {
		t.printf(" %-8s\t%4d\t\t%3d\t\t%.1f%%\t\t%1.3fV\n", p.Name, p.MilliVolts, p.Code, p.Percent, p.Vctrl)
	}
}

func (t *Text) pulses(r *Report) {
	t.section("RC input:", " t [us]\t\tstate\t\td [-]\t\tVctrl [V]", 48)
	for _, p := range r.Pulses {
		t.printf(" %4d\t\t%s\t\t%3d\t\t%1.3fV\n", p.WidthUS, p.State, p.Code, p.Vctrl)
	}
}

// WriteJSON renders r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
