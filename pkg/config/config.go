package config

import (
	"github.com/sirupsen/logrus"

	"github.com/ledctrlr/pwmcalc/pkg/circuit"
	"github.com/ledctrlr/pwmcalc/pkg/firmware"
)

type Config interface {
	// Circuit returns the raw circuit values, defaults filled in.
	Circuit() circuit.Values
	// Params returns the validated circuit parameters.
	Params() (circuit.Params, error)
	InputVoltages() []float64
	DutyCodes() []int
	Firmware() firmware.Settings

	// Override replaces circuit values that are set in r.
	Override(r RawCircuitConfig)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
