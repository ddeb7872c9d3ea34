package main

import (
	"github.com/spf13/cobra"

	"github.com/ledctrlr/pwmcalc/pkg/report"
	"github.com/ledctrlr/pwmcalc/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewUnloadedCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "unloaded [voltage...]",
		Short:   "Filter output and duty code with nothing connected",
		GroupID: gTables,
		Long: `Calculate the open-circuit RC filter output and the 8-bit duty code for each
control voltage.

Voltages must be between 0V and Vdd. Without arguments the configured input
voltages are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			voltages, err := voltagesOrDefault(args)
			if err != nil {
				return err
			}
			p, err := conf.Params()
			if err != nil {
				return err
			}

			r := report.New(p)
			r.Unloaded, err = report.UnloadedRows(p, voltages)
			if err != nil {
				return err
			}

			return render(cmd, r)
		},
	}
}

func NewLoadedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "loaded",
		Short:   "CTRL pin voltage and duty code with the drivers connected",
		GroupID: gTables,
		Long: `Calculate the CTRL pin voltage for duty codes and the duty codes for CTRL pin
voltages, with the filter output loaded by the pull-down resistor and the
drivers' internal reference networks.

Without a subcommand both tables are printed for the configured lists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := conf.Params()
			if err != nil {
				return err
			}

			r := report.New(p)
			r.LoadedVoltages, err = report.LoadedVoltageRows(p, conf.DutyCodes())
			if err != nil {
				return err
			}
			r.LoadedDuties, err = report.LoadedDutyRows(p, conf.InputVoltages())
			if err != nil {
				return err
			}

			return render(cmd, r)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "duty [code...]",
			Short: "CTRL pin voltage for each duty code (0-255)",
			RunE: func(cmd *cobra.Command, args []string) error {
				codes, err := codesOrDefault(args)
				if err != nil {
					return err
				}
				p, err := conf.Params()
				if err != nil {
					return err
				}

				r := report.New(p)
				r.LoadedVoltages, err = report.LoadedVoltageRows(p, codes)
				if err != nil {
					return err
				}

				return render(cmd, r)
			},
		},
		&cobra.Command{
			Use:   "voltage [voltage...]",
			Short: "Duty code for each CTRL pin voltage",
			Long: `Calculate the duty code for each CTRL pin voltage.

Voltages the filter cannot reach are reported with the nearest possible code,
marked with '*'.`,
			RunE: func(cmd *cobra.Command, args []string) error {
				voltages, err := voltagesOrDefault(args)
				if err != nil {
					return err
				}
				p, err := conf.Params()
				if err != nil {
					return err
				}

				r := report.New(p)
				r.LoadedDuties, err = report.LoadedDutyRows(p, voltages)
				if err != nil {
					return err
				}

				return render(cmd, r)
			},
		},
	)

	return cmd
}
