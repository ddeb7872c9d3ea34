package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ledctrlr/pwmcalc/pkg/config"
	"github.com/ledctrlr/pwmcalc/pkg/utils/ptr"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show or create configuration files",
		GroupID: gConfig,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Long: `Print the effective configuration: built-in defaults, overridden by the
config file and command line flags.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				v := conf.Circuit()
				effective := &config.RawFileConfig{
					Circuit: &config.RawCircuitConfig{
						Ri:    ptr.To(v.Ri),
						Rs:    ptr.To(v.Rs),
						Vdd:   ptr.To(v.Vdd),
						RL:    ptr.To(v.RL),
						Rctrl: ptr.To(v.Rctrl),
						Vref:  ptr.To(v.Vref),
						N:     ptr.To(v.N),
					},
					InputVoltages: conf.InputVoltages(),
					DutyCodes:     conf.DutyCodes(),
					Firmware:      config.NewRawFirmwareConfig(conf.Firmware()),
				}

				if outputFormat == "json" {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(effective)
				}
				b, err := yaml.Marshal(effective)
				if err != nil {
					return fmt.Errorf("failed to encode config: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			},
		},
		newConfigInitCommand(),
	)

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	force := false

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write a config file holding the defaults",
		Long: `Write a config file holding the built-in defaults.

The format follows the file extension: .yaml or .yml for YAML, JSON otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite it", path)
			}

			err := config.NewFileFromConfig(config.DefaultRawFileConfig(), path).Save()
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			logrus.Infof("config written to %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
