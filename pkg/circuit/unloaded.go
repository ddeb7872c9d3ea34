package circuit

import (
	"math"

	pkgerrors "github.com/pkg/errors"
)

// UnloadedOutput returns the open-circuit filter output for control voltage
// vc. The GPIO internal resistance and the filter resistor form a divider
// between vc and Vdd:
//
//	Vo = (Vc*Ri + Vdd*Rs) / (Ri+Rs)
func (p Params) UnloadedOutput(vc float64) (float64, error) {
	if err := p.checkUnloaded(vc); err != nil {
		return 0, err
	}
	v := p.v
	return (vc*v.Ri + v.Vdd*v.Rs) / (v.Ri + v.Rs), nil
}

// UnloadedDuty returns the 8-bit duty code for control voltage vc:
//
//	d = round(Vc*(Ri+Rs) / (Vc*Ri + Vdd*Rs) * 255)
//
// For vc in [0, Vdd] the result is in [0, 255].
func (p Params) UnloadedDuty(vc float64) (int, error) {
	if err := p.checkUnloaded(vc); err != nil {
		return 0, err
	}
	v := p.v
	return roundHalfEven(vc * (v.Ri + v.Rs) / (vc*v.Ri + v.Vdd*v.Rs) * MaxDutyCode), nil
}

// Unloaded computes the output voltage and duty code for vc.
func (p Params) Unloaded(vc float64) (DutyResult, error) {
	vo, err := p.UnloadedOutput(vc)
	if err != nil {
		return DutyResult{}, err
	}
	d, err := p.UnloadedDuty(vc)
	if err != nil {
		return DutyResult{}, err
	}

	return DutyResult{
		Input:   vc,
		Output:  vo,
		Code:    d,
		Percent: float64(d) / MaxDutyCode * 100,
	}, nil
}

func (p Params) checkUnloaded(vc float64) error {
	if err := p.check(); err != nil {
		return err
	}
	if math.IsNaN(vc) || vc < 0 || vc > p.v.Vdd {
		return pkgerrors.Wrapf(ErrVoltageOutOfRange, "%gV is outside [0, %gV]", vc, p.v.Vdd)
	}
	return nil
}
