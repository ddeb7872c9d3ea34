package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ledctrlr/pwmcalc/pkg/circuit"
	"github.com/ledctrlr/pwmcalc/pkg/firmware"
	"github.com/ledctrlr/pwmcalc/pkg/utils/ptr"
)

var (
	defaultInputVoltages = []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 2.0, 2.5}
	defaultDutyCodes     = []int{40, 100, 158}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	filepath string
}

// NewFile loads the configuration at configPath. An empty path, a missing
// file and an empty file all yield the defaults.
func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// NewFileFromConfig wraps c without reading configPath. A nil c means defaults.
func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	return &File{
		c:        c,
		filepath: configPath,
	}
}

type RawCircuitConfig struct {
	Ri    *float64 `json:"ri,omitempty" yaml:"ri,omitempty"`
	Rs    *float64 `json:"rs,omitempty" yaml:"rs,omitempty"`
	Vdd   *float64 `json:"vdd,omitempty" yaml:"vdd,omitempty"`
	RL    *float64 `json:"rl,omitempty" yaml:"rl,omitempty"`
	Rctrl *float64 `json:"rctrl,omitempty" yaml:"rctrl,omitempty"`
	Vref  *float64 `json:"vref,omitempty" yaml:"vref,omitempty"`
	N     *int     `json:"drivers,omitempty" yaml:"drivers,omitempty"`
}

type RawFileConfig struct {
	Circuit       *RawCircuitConfig  `json:"circuit,omitempty" yaml:"circuit,omitempty"`
	InputVoltages []float64          `json:"inputVoltages,omitempty" yaml:"inputVoltages,omitempty"`
	DutyCodes     []int              `json:"dutyCodes,omitempty" yaml:"dutyCodes,omitempty"`
	Firmware      *RawFirmwareConfig `json:"firmware,omitempty" yaml:"firmware,omitempty"`
}

// RawFirmwareConfig mirrors firmware.Settings. Unset fields keep the defaults,
// an explicit zero is kept.
type RawFirmwareConfig struct {
	SupplyMV  *int               `json:"supplyMv,omitempty" yaml:"supplyMv,omitempty"`
	DefaultMV *int               `json:"defaultMv,omitempty" yaml:"defaultMv,omitempty"`
	Channels  []firmware.Channel `json:"channels,omitempty" yaml:"channels,omitempty"`
}

// NewRawFirmwareConfig returns s with every field set.
func NewRawFirmwareConfig(s firmware.Settings) *RawFirmwareConfig {
	return &RawFirmwareConfig{
		SupplyMV:  ptr.To(s.SupplyMV),
		DefaultMV: ptr.To(s.DefaultMV),
		Channels:  append([]firmware.Channel(nil), s.Channels...),
	}
}

// DefaultRawFileConfig returns a fully populated configuration holding the
// built-in defaults.
func DefaultRawFileConfig() *RawFileConfig {
	d := circuit.DefaultValues

	return &RawFileConfig{
		Circuit: &RawCircuitConfig{
			Ri:    ptr.To(d.Ri),
			Rs:    ptr.To(d.Rs),
			Vdd:   ptr.To(d.Vdd),
			RL:    ptr.To(d.RL),
			Rctrl: ptr.To(d.Rctrl),
			Vref:  ptr.To(d.Vref),
			N:     ptr.To(d.N),
		},
		InputVoltages: append([]float64(nil), defaultInputVoltages...),
		DutyCodes:     append([]int(nil), defaultDutyCodes...),
		Firmware:      NewRawFirmwareConfig(firmware.DefaultSettings()),
	}
}

func (f *File) Circuit() circuit.Values {
	if f.c == nil {
		panic("config is nil")
	}

	v := circuit.DefaultValues
	r := f.c.Circuit
	if r == nil {
		return v
	}
	if r.Ri != nil {
		v.Ri = *r.Ri
	}
	if r.Rs != nil {
		v.Rs = *r.Rs
	}
	if r.Vdd != nil {
		v.Vdd = *r.Vdd
	}
	if r.RL != nil {
		v.RL = *r.RL
	}
	if r.Rctrl != nil {
		v.Rctrl = *r.Rctrl
	}
	if r.Vref != nil {
		v.Vref = *r.Vref
	}
	if r.N != nil {
		v.N = *r.N
	}

	return v
}

func (f *File) Params() (circuit.Params, error) {
	p, err := circuit.NewParams(f.Circuit())
	if err != nil {
		return circuit.Params{}, pkgerrors.Wrapf(err, "invalid circuit in %s", f.source())
	}
	return p, nil
}

func (f *File) InputVoltages() []float64 {
	if f.c == nil {
		panic("config is nil")
	}

	if len(f.c.InputVoltages) == 0 {
		return append([]float64(nil), defaultInputVoltages...)
	}
	return append([]float64(nil), f.c.InputVoltages...)
}

func (f *File) DutyCodes() []int {
	if f.c == nil {
		panic("config is nil")
	}

	if len(f.c.DutyCodes) == 0 {
		return append([]int(nil), defaultDutyCodes...)
	}
	return append([]int(nil), f.c.DutyCodes...)
}

func (f *File) Firmware() firmware.Settings {
	if f.c == nil {
		panic("config is nil")
	}

	s := firmware.DefaultSettings()
	fw := f.c.Firmware
	if fw == nil {
		return s
	}
	if fw.SupplyMV != nil {
		s.SupplyMV = *fw.SupplyMV
	}
	if fw.DefaultMV != nil {
		s.DefaultMV = *fw.DefaultMV
	}
	if len(fw.Channels) > 0 {
		s.Channels = append([]firmware.Channel(nil), fw.Channels...)
	}

	return s
}

func (f *File) Override(r RawCircuitConfig) {
	if f.c == nil {
		panic("config is nil")
	}

	if f.c.Circuit == nil {
		f.c.Circuit = &RawCircuitConfig{}
	}
	c := f.c.Circuit
	if r.Ri != nil {
		c.Ri = r.Ri
	}
	if r.Rs != nil {
		c.Rs = r.Rs
	}
	if r.Vdd != nil {
		c.Vdd = r.Vdd
	}
	if r.RL != nil {
		c.RL = r.RL
	}
	if r.Rctrl != nil {
		c.Rctrl = r.Rctrl
	}
	if r.Vref != nil {
		c.Vref = r.Vref
	}
	if r.N != nil {
		c.N = r.N
	}
}

// Raw returns the configuration as read, without defaults.
func (f *File) Raw() *RawFileConfig {
	return f.c
}

func (f *File) source() string {
	if f.filepath == "" {
		return "built-in defaults"
	}
	return f.filepath
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (f *File) Load() error {
	if f.filepath == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	b, err := os.ReadFile(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			logrus.WithField("path", f.filepath).Debug("config file not found, using defaults")
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	if isYAML(f.filepath) {
		err = yaml.Unmarshal(b, &conf)
	} else {
		err = json.Unmarshal(b, &conf)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	if f.c == nil {
		return pkgerrors.New("config is nil")
	}
	if f.filepath == "" {
		return pkgerrors.New("config path is empty")
	}

	var (
		b   []byte
		err error
	)
	if isYAML(f.filepath) {
		b, err = yaml.Marshal(f.c)
	} else {
		b, err = json.MarshalIndent(f.c, "", "  ")
		b = append(b, '\n')
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config for file %s", f.filepath)
	}

	err = os.WriteFile(f.filepath, b, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to write file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	v := f.Circuit()
	return logrus.Fields{
		"config":  f.source(),
		"ri":      v.Ri,
		"rs":      v.Rs,
		"vdd":     v.Vdd,
		"rl":      v.RL,
		"rctrl":   v.Rctrl,
		"vref":    v.Vref,
		"drivers": v.N,
	}
}
