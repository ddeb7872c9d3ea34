// Package circuit models an 8-bit PWM output filtered by an RC low-pass
// into the CTRL input of one or more LED driver ICs.
package circuit

import (
	"math"

	pkgerrors "github.com/pkg/errors"
)

const (
	// MaxDutyCode is the largest value of the 8-bit compare register.
	MaxDutyCode = 255
	// PWMPeriod is the number of timer counts per PWM period (TOP = 0xFF).
	PWMPeriod = 256
)

// Values holds raw, unvalidated circuit parameters.
type Values struct {
	// Ri is the GPIO internal output resistance [Ohm].
	Ri float64 `json:"ri" yaml:"ri"`
	// Rs is the RC filter series resistor [Ohm].
	Rs float64 `json:"rs" yaml:"rs"`
	// Vdd is the unloaded GPIO high level [V]. The low level is 0V.
	Vdd float64 `json:"vdd" yaml:"vdd"`
	// RL is the pull-down resistor at the CTRL input [Ohm].
	RL float64 `json:"rl" yaml:"rl"`
	// Rctrl is the driver's internal resistance from CTRL to its reference [Ohm].
	Rctrl float64 `json:"rctrl" yaml:"rctrl"`
	// Vref is the driver's internal reference voltage [V].
	Vref float64 `json:"vref" yaml:"vref"`
	// N is the number of drivers connected to the filter output.
	N int `json:"n" yaml:"n"`
}

// DefaultValues are typical values for an ATtiny85 GPIO driving two AL8807.
var DefaultValues = Values{
	Ri:    50,
	Rs:    1000,
	Vdd:   3.3,
	RL:    10e3,
	Rctrl: 50e3,
	Vref:  2.5,
	N:     2,
}

// Params is a validated, immutable parameter set. The zero value is not
// usable; create one with NewParams.
type Params struct {
	v     Values
	valid bool
}

// NewParams validates v and returns the parameter set.
func NewParams(v Values) (Params, error) {
	positive := []struct {
		name  string
		value float64
	}{
		{"ri", v.Ri},
		{"rs", v.Rs},
		{"vdd", v.Vdd},
		{"rl", v.RL},
		{"rctrl", v.Rctrl},
	}
	for _, p := range positive {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) || p.value <= 0 {
			return Params{}, pkgerrors.Wrapf(ErrInvalidParams, "%s must be positive, got %g", p.name, p.value)
		}
	}
	if math.IsNaN(v.Vref) || math.IsInf(v.Vref, 0) || v.Vref < 0 {
		return Params{}, pkgerrors.Wrapf(ErrInvalidParams, "vref must not be negative, got %g", v.Vref)
	}
	if v.N < 1 {
		return Params{}, pkgerrors.Wrapf(ErrInvalidParams, "driver count must be at least 1, got %d", v.N)
	}

	return Params{v: v, valid: true}, nil
}

// Default returns the validated DefaultValues.
func Default() Params {
	p, err := NewParams(DefaultValues)
	if err != nil {
		panic(err)
	}
	return p
}

// Values returns a copy of the raw parameters.
func (p Params) Values() Values {
	return p.v
}

func (p Params) check() error {
	if !p.valid {
		return pkgerrors.Wrap(ErrInvalidParams, "parameters not initialized")
	}
	return nil
}

// roundHalfEven rounds ties to the nearest even integer.
func roundHalfEven(x float64) int {
	return int(math.RoundToEven(x))
}
