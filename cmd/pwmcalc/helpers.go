package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ledctrlr/pwmcalc/pkg/circuit"
	"github.com/ledctrlr/pwmcalc/pkg/config"
	"github.com/ledctrlr/pwmcalc/pkg/report"
	"github.com/ledctrlr/pwmcalc/pkg/utils/ptr"
)

// circuitFlags override single circuit parameters from the command line.
type circuitFlags struct {
	ri, rs, vdd, rl, rctrl, vref float64
	drivers                      int
}

func (c *circuitFlags) register(fs *pflag.FlagSet) {
	d := circuit.DefaultValues
	fs.Float64Var(&c.ri, "ri", d.Ri, "GPIO internal output resistance [Ohm]")
	fs.Float64Var(&c.rs, "rs", d.Rs, "RC filter resistor [Ohm]")
	fs.Float64Var(&c.vdd, "vdd", d.Vdd, "unloaded GPIO high-level voltage [V]")
	fs.Float64Var(&c.rl, "rl", d.RL, "pull-down resistor at the CTRL input [Ohm]")
	fs.Float64Var(&c.rctrl, "rctrl", d.Rctrl, "driver internal resistance from CTRL to reference [Ohm]")
	fs.Float64Var(&c.vref, "vref", d.Vref, "driver internal reference voltage [V]")
	fs.IntVar(&c.drivers, "drivers", d.N, "number of drivers connected to the filter output")
}

// raw returns only the parameters that were given explicitly, so that
// config file values are kept otherwise.
func (c *circuitFlags) raw(fs *pflag.FlagSet) config.RawCircuitConfig {
	changed := func(name string, v float64) *float64 {
		if !fs.Changed(name) {
			return nil
		}
		return ptr.To(v)
	}

	r := config.RawCircuitConfig{
		Ri:    changed("ri", c.ri),
		Rs:    changed("rs", c.rs),
		Vdd:   changed("vdd", c.vdd),
		RL:    changed("rl", c.rl),
		Rctrl: changed("rctrl", c.rctrl),
		Vref:  changed("vref", c.vref),
	}
	if fs.Changed("drivers") {
		r.N = ptr.To(c.drivers)
	}
	return r
}

func parseFloatArgs(args []string, valueName string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", valueName, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func parseIntArgs(args []string, valueName string) ([]int, error) {
	values := make([]int, 0, len(args))
	for _, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", valueName, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// voltagesOrDefault returns the voltages given as arguments, or the
// configured input list when there are none.
func voltagesOrDefault(args []string) ([]float64, error) {
	if len(args) == 0 {
		return conf.InputVoltages(), nil
	}
	return parseFloatArgs(args, "voltage")
}

func codesOrDefault(args []string) ([]int, error) {
	if len(args) == 0 {
		return conf.DutyCodes(), nil
	}
	return parseIntArgs(args, "duty code")
}

func fullReport(p circuit.Params, voltages []float64, codes []int) (*report.Report, error) {
	r := report.New(p)
	r.Title = report.Title

	var err error
	if r.Unloaded, err = report.UnloadedRows(p, voltages); err != nil {
		return nil, err
	}
	if r.LoadedVoltages, err = report.LoadedVoltageRows(p, codes); err != nil {
		return nil, err
	}
	if r.LoadedDuties, err = report.LoadedDutyRows(p, voltages); err != nil {
		return nil, err
	}

	return r, nil
}

func render(cmd *cobra.Command, r *report.Report) error {
	for _, d := range r.Clamped() {
		logrus.WithFields(logrus.Fields{
			"vctrl":   d.Input,
			"code":    d.Code,
			"reached": fmt.Sprintf("%.3fV", d.Output),
		}).Warn("CTRL voltage cannot be reached with an 8-bit duty code, code was clamped")
	}

	if outputFormat == "json" {
		return report.WriteJSON(cmd.OutOrStdout(), r)
	}
	report.NewText(cmd.OutOrStdout(), true).Write(r)
	return nil
}
