package main

import (
	"github.com/spf13/cobra"

	"github.com/ledctrlr/pwmcalc/pkg/report"
)

func NewFirmwareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "firmware",
		Short:   "Evaluate the controller's output presets",
		GroupID: gFirmware,
		Long: `Evaluate the duty codes the controller programs for its output presets and
the CTRL pin voltage each of them produces.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "presets",
			Short: "Duty code and CTRL pin voltage of each output preset",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				p, err := conf.Params()
				if err != nil {
					return err
				}

				r := report.New(p)
				r.Presets, err = report.PresetRows(p, conf.Firmware())
				if err != nil {
					return err
				}

				return render(cmd, r)
			},
		},
		&cobra.Command{
			Use:   "rcin <width-us>...",
			Short: "Replay RC receiver pulse widths through the controller",
			Long: `Replay RC receiver pulse widths (in microseconds) through the controller.

Each pulse selects the preset whose window contains it. Pulses outside every
window ('-') keep the previous output, starting from the default preset.`,
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				widths, err := parseIntArgs(args, "pulse width")
				if err != nil {
					return err
				}
				p, err := conf.Params()
				if err != nil {
					return err
				}

				r := report.New(p)
				r.Pulses, err = report.PulseRows(p, conf.Firmware(), widths)
				if err != nil {
					return err
				}

				return render(cmd, r)
			},
		},
	)

	return cmd
}
