// Package report evaluates the circuit model over input lists and renders
// the results as tab separated tables or JSON.
package report

import (
	pkgerrors "github.com/pkg/errors"

	"github.com/ledctrlr/pwmcalc/pkg/circuit"
	"github.com/ledctrlr/pwmcalc/pkg/firmware"
)

// Title heads the full report.
const Title = "PWM ADC driving AL8807 LED Driver"

// Report holds every table of one run. Nil sections are not rendered.
type Report struct {
	Title          string                  `json:"-"`
	Params         circuit.Values          `json:"params"`
	Unloaded       []circuit.DutyResult    `json:"unloaded,omitempty"`
	LoadedVoltages []circuit.VoltageResult `json:"loadedVoltages,omitempty"`
	LoadedDuties   []circuit.DutyResult    `json:"loadedDuties,omitempty"`
	Presets        []PresetRow             `json:"presets,omitempty"`
	Pulses         []PulseRow              `json:"pulses,omitempty"`
}

// PresetRow is a firmware output preset evaluated under the loaded model.
type PresetRow struct {
	Name       string  `json:"name"`
	MilliVolts int     `json:"milliVolts"`
	Code       int     `json:"code"`
	Percent    float64 `json:"percent"`
	Vctrl      float64 `json:"vctrl"`
}

// PulseRow is the controller's reaction to one RC pulse.
type PulseRow struct {
	firmware.Step
	Vctrl float64 `json:"vctrl"`
}

// New returns an empty report for p.
func New(p circuit.Params) *Report {
	return &Report{Params: p.Values()}
}

// Clamped returns the loaded duty rows whose code had to be limited.
func (r *Report) Clamped() []circuit.DutyResult {
	var out []circuit.DutyResult
	for _, d := range r.LoadedDuties {
		if d.Clamped {
			out = append(out, d)
		}
	}
	return out
}

// UnloadedRows evaluates the unloaded filter for each control voltage.
func UnloadedRows(p circuit.Params, voltages []float64) ([]circuit.DutyResult, error) {
	rows := make([]circuit.DutyResult, 0, len(voltages))
	for _, vc := range voltages {
		r, err := p.Unloaded(vc)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "unloaded output")
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// LoadedVoltageRows evaluates the CTRL pin voltage for each duty code.
func LoadedVoltageRows(p circuit.Params, codes []int) ([]circuit.VoltageResult, error) {
	rows := make([]circuit.VoltageResult, 0, len(codes))
	for _, c := range codes {
		r, err := p.LoadedVoltage(c)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "loaded output")
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// LoadedDutyRows evaluates the duty code for each CTRL pin voltage.
func LoadedDutyRows(p circuit.Params, voltages []float64) ([]circuit.DutyResult, error) {
	rows := make([]circuit.DutyResult, 0, len(voltages))
	for _, v := range voltages {
		r, err := p.LoadedDuty(v)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "loaded duty")
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// PresetRows evaluates the default output and every channel preset of s.
func PresetRows(p circuit.Params, s firmware.Settings) ([]PresetRow, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	presets := append([]firmware.Channel{{Name: "default", MilliVolts: s.DefaultMV}}, s.Channels...)
	rows := make([]PresetRow, 0, len(presets))
	for _, c := range presets {
		code := s.Code(c.MilliVolts)
		v, err := p.LoadedVoltage(code)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "preset %s", c.Name)
		}
		rows = append(rows, PresetRow{
			Name:       c.Name,
			MilliVolts: c.MilliVolts,
			Code:       code,
			Percent:    v.Percent(),
			Vctrl:      v.Voltage,
		})
	}
	return rows, nil
}

// PulseRows feeds widths through a fresh decoder, starting at the default output.
func PulseRows(p circuit.Params, s firmware.Settings, widths []int) ([]PulseRow, error) {
	d, err := firmware.NewDecoder(s)
	if err != nil {
		return nil, err
	}

	rows := make([]PulseRow, 0, len(widths))
	for _, w := range widths {
		step := d.Feed(w)
		v, err := p.LoadedVoltage(step.Code)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "pulse %dus", w)
		}
		rows = append(rows, PulseRow{Step: step, Vctrl: v.Voltage})
	}
	return rows, nil
}
