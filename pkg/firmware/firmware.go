// Package firmware reproduces the controller's integer arithmetic: the
// compare values it programs for each output preset and the mapping from
// RC receiver pulse widths to presets.
package firmware

import (
	"errors"
	"sort"

	pkgerrors "github.com/pkg/errors"
)

// ErrInvalidSettings is returned when presets or pulse windows are inconsistent.
var ErrInvalidSettings = errors.New("invalid firmware settings")

// NoChange is the state reported for pulses outside every window.
const NoChange = "-"

// Channel is one output preset selected by an RC pulse window.
type Channel struct {
	// State is the character the controller reports on its UART.
	State string `json:"state" yaml:"state"`
	Name  string `json:"name" yaml:"name"`
	// MilliVolts is the target output voltage.
	MilliVolts int `json:"milliVolts" yaml:"milliVolts"`
	// MinUS and MaxUS bound the pulse width (exclusive).
	MinUS int `json:"minUs" yaml:"minUs"`
	MaxUS int `json:"maxUs" yaml:"maxUs"`
}

// Contains reports whether a pulse of widthUS selects c.
func (c Channel) Contains(widthUS int) bool {
	return widthUS > c.MinUS && widthUS < c.MaxUS
}

// Settings are the compile-time constants of the controller.
type Settings struct {
	SupplyMV  int       `json:"supplyMv" yaml:"supplyMv"`
	DefaultMV int       `json:"defaultMv" yaml:"defaultMv"`
	Channels  []Channel `json:"channels" yaml:"channels"`
}

const (
	inputLowUS = 1100
	inputMidUS = 1520
	inputHiUS  = 1940
	inputTolUS = 105
)

// DefaultSettings returns the values the controller ships with.
func DefaultSettings() Settings {
	return Settings{
		SupplyMV:  3300,
		DefaultMV: 1650,
		Channels: []Channel{
			{State: "0", Name: "low", MilliVolts: 500, MinUS: inputLowUS - 2*inputTolUS, MaxUS: inputLowUS + inputTolUS},
			{State: "1", Name: "mid", MilliVolts: 1250, MinUS: inputMidUS - inputTolUS, MaxUS: inputMidUS + inputTolUS},
			{State: "2", Name: "high", MilliVolts: 2500, MinUS: inputHiUS - inputTolUS, MaxUS: inputHiUS + 2*inputTolUS},
		},
	}
}

// Validate checks the supply, every preset voltage, that channel states are
// unique and that no two pulse windows overlap.
func (s Settings) Validate() error {
	if s.SupplyMV <= 0 {
		return pkgerrors.Wrapf(ErrInvalidSettings, "supply must be positive, got %dmV", s.SupplyMV)
	}
	if s.DefaultMV < 0 || s.DefaultMV > s.SupplyMV {
		return pkgerrors.Wrapf(ErrInvalidSettings, "default output %dmV is outside [0, %dmV]", s.DefaultMV, s.SupplyMV)
	}

	chans := make([]Channel, len(s.Channels))
	copy(chans, s.Channels)
	sort.Slice(chans, func(i, j int) bool { return chans[i].MinUS < chans[j].MinUS })

	states := make(map[string]string, len(chans))
	for i, c := range chans {
		if c.State == "" || c.State == NoChange {
			return pkgerrors.Wrapf(ErrInvalidSettings, "channel %q has invalid state %q", c.Name, c.State)
		}
		if other, ok := states[c.State]; ok {
			return pkgerrors.Wrapf(ErrInvalidSettings, "channels %q and %q share state %q", other, c.Name, c.State)
		}
		states[c.State] = c.Name
		if c.MilliVolts < 0 || c.MilliVolts > s.SupplyMV {
			return pkgerrors.Wrapf(ErrInvalidSettings, "channel %q output %dmV is outside [0, %dmV]", c.Name, c.MilliVolts, s.SupplyMV)
		}
		if c.MinUS >= c.MaxUS {
			return pkgerrors.Wrapf(ErrInvalidSettings, "channel %q window (%d, %d) is empty", c.Name, c.MinUS, c.MaxUS)
		}
		// Open intervals may share an endpoint.
		if i > 0 && chans[i-1].MaxUS > c.MinUS {
			return pkgerrors.Wrapf(ErrInvalidSettings, "channel %q window overlaps %q", c.Name, chans[i-1].Name)
		}
	}

	return nil
}

// Code returns the compare value the controller programs for mv. It is
// rounded to nearest with integer arithmetic:
//
//	(255*mV + supply/2) / supply
func (s Settings) Code(mv int) int {
	return (255*mv + s.SupplyMV/2) / s.SupplyMV
}

// Classify returns the channel selected by a pulse of widthUS.
func (s Settings) Classify(widthUS int) (Channel, bool) {
	for _, c := range s.Channels {
		if c.Contains(widthUS) {
			return c, true
		}
	}
	return Channel{State: NoChange}, false
}
