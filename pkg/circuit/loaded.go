package circuit

import (
	"math"

	pkgerrors "github.com/pkg/errors"
)

// The loaded model describes the filter output with RL to ground and N
// driver inputs, each Rctrl to Vref:
//
//	Vctrl = (Rs*Vref + Rctrl/2*Vdd*d) * RL / (RL*Rs + Rctrl/N*Rs + Rctrl/N*RL)
//
// where d = code/256. The drive term divides Rctrl by a fixed 2 for any N.
const driveDivider = 2

func (p Params) loadedDenominator() float64 {
	v := p.v
	rn := v.Rctrl / float64(v.N)
	return v.RL*v.Rs + rn*v.Rs + rn*v.RL
}

// LoadedVoltage returns the CTRL pin voltage for the given duty code.
func (p Params) LoadedVoltage(code int) (VoltageResult, error) {
	if err := p.check(); err != nil {
		return VoltageResult{}, err
	}
	if code < 0 || code > MaxDutyCode {
		return VoltageResult{}, pkgerrors.Wrapf(ErrDutyOutOfRange, "code %d is outside [0, %d]", code, MaxDutyCode)
	}

	v := p.v
	d := float64(code) / PWMPeriod
	vctrl := (v.Rs*v.Vref + v.Rctrl/driveDivider*v.Vdd*d) * v.RL / p.loadedDenominator()

	return VoltageResult{Code: code, Fraction: d, Voltage: vctrl}, nil
}

// LoadedDuty returns the duty code that sets the CTRL pin to vctrl. It is the
// inverse of LoadedVoltage. Voltages the filter cannot reach produce a code
// limited to [0, MaxDutyCode] with Clamped set.
func (p Params) LoadedDuty(vctrl float64) (DutyResult, error) {
	if err := p.check(); err != nil {
		return DutyResult{}, err
	}
	if math.IsNaN(vctrl) || math.IsInf(vctrl, 0) {
		return DutyResult{}, pkgerrors.Wrapf(ErrVoltageOutOfRange, "%gV is not a finite voltage", vctrl)
	}
	if vctrl < 0 {
		return DutyResult{}, pkgerrors.Wrapf(ErrVoltageOutOfRange, "%gV is negative", vctrl)
	}

	v := p.v
	d := (vctrl/v.RL*p.loadedDenominator() - v.Rs*v.Vref) / (v.Rctrl / driveDivider * v.Vdd)

	res := DutyResult{
		Input:   vctrl,
		Percent: d * 100,
	}
	// Limit before converting, huge inputs overflow int.
	scaled := d * PWMPeriod
	switch {
	case scaled < -0.5:
		res.Code, res.Clamped = 0, true
	case scaled >= MaxDutyCode+0.5:
		res.Code, res.Clamped = MaxDutyCode, true
	default:
		res.Code = roundHalfEven(scaled)
	}

	actual, err := p.LoadedVoltage(res.Code)
	if err != nil {
		return DutyResult{}, err
	}
	res.Output = actual.Voltage

	return res, nil
}

// LoadedRange returns the lowest and highest CTRL voltage reachable with
// codes 0 and MaxDutyCode.
func (p Params) LoadedRange() (lo, hi float64, err error) {
	l, err := p.LoadedVoltage(0)
	if err != nil {
		return 0, 0, err
	}
	h, err := p.LoadedVoltage(MaxDutyCode)
	if err != nil {
		return 0, 0, err
	}
	return l.Voltage, h.Voltage, nil
}
