package circuit

// DutyResult is one voltage to duty code conversion.
type DutyResult struct {
	// Input is the requested voltage [V].
	Input float64 `json:"input"`
	// Output is the filter output voltage for Code [V].
	Output float64 `json:"output"`
	// Code is the compare register value, limited to [0, MaxDutyCode].
	Code int `json:"code"`
	// Percent is the duty cycle the model asked for, before Code was limited.
	Percent float64 `json:"percent"`
	// Clamped reports that the computed code was outside [0, MaxDutyCode].
	Clamped bool `json:"clamped,omitempty"`
}

// VoltageResult is one duty code to voltage conversion.
type VoltageResult struct {
	Code     int     `json:"code"`
	Fraction float64 `json:"fraction"`
	Voltage  float64 `json:"voltage"`
}

// Percent returns the duty cycle in percent.
func (r VoltageResult) Percent() float64 {
	return r.Fraction * 100
}
