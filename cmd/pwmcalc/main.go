package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ledctrlr/pwmcalc/pkg/circuit"
	"github.com/ledctrlr/pwmcalc/pkg/config"
	"github.com/ledctrlr/pwmcalc/pkg/firmware"
)

var (
	logLevel     = "info"
	configPath   = ""
	outputFormat = "text"
	noColor      = false
)

var conf *config.File

var (
	gTables       = "Tables:"
	gFirmware     = "Firmware:"
	gConfig       = "Configuration:"
	commandGroups = []string{
		gTables,
		gFirmware,
		gConfig,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, circuit.ErrInvalidParams) {
		fmt.Fprintln(os.Stderr, "\nError: invalid circuit parameters")
		fmt.Fprintln(os.Stderr, "  - Resistances and the supply voltage must be positive, Vref must not be negative")
		fmt.Fprintln(os.Stderr, "  - At least one driver must be connected")
	} else if errors.Is(err, circuit.ErrVoltageOutOfRange) {
		fmt.Fprintln(os.Stderr, "\nError: voltage out of range")
		fmt.Fprintln(os.Stderr, "  - Unloaded control voltages must be between 0V and Vdd")
		fmt.Fprintln(os.Stderr, "  - CTRL pin voltages must not be negative")
	} else if errors.Is(err, circuit.ErrDutyOutOfRange) {
		fmt.Fprintln(os.Stderr, "\nError: duty codes must be between 0 and 255")
	} else if errors.Is(err, firmware.ErrInvalidSettings) {
		fmt.Fprintln(os.Stderr, "\nError: invalid firmware settings")
		fmt.Fprintln(os.Stderr, "  - Check the 'firmware' section of your config file")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	var overrides circuitFlags

	cmd := &cobra.Command{
		Use:   "pwmcalc",
		Short: "pwmcalc calculates PWM duty cycles for an RC filtered LED driver CTRL input",
		Long: `pwmcalc calculates PWM duty cycles for an RC filtered LED driver CTRL input.

A microcontroller GPIO generates a high-frequency PWM signal that an RC low-pass
filter turns into the control voltage of one or more AL8807 LED drivers.
Without arguments the full report is printed: the unloaded filter output for
each input voltage, the CTRL pin voltage for each duty code, and the duty code
needed for each CTRL pin voltage.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			if noColor {
				color.NoColor = true
			}
			if outputFormat != "text" && outputFormat != "json" {
				return fmt.Errorf("unknown output format %q, expected text or json", outputFormat)
			}

			conf, err = config.NewFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			conf.Override(overrides.raw(cmd.Flags()))
			logrus.WithFields(conf.LogrusFields()).Debug("circuit parameters loaded")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := conf.Params()
			if err != nil {
				return err
			}
			r, err := fullReport(p, conf.InputVoltages(), conf.DutyCodes())
			if err != nil {
				return err
			}
			return render(cmd, r)
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVarP(&configPath, "config", "c", "", "config file path (.json, .yaml or .yml); built-in defaults if empty")
	globalFlags.StringVarP(&outputFormat, "output", "o", "text", "output format (text, json)")
	globalFlags.BoolVar(&noColor, "no-color", false, "disable colored output")
	overrides.register(globalFlags)

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewVersionCommand(),
		NewUnloadedCommand(),
		NewLoadedCommand(),
		NewFirmwareCommand(),
		NewConfigCommand(),
	)

	return cmd
}
