package main

import (
	"fmt"
	"os/signal"
	"strconv"

	"github.com/leandrodaf/midikbd/internal/config"
	"github.com/leandrodaf/midikbd/internal/engine"
	"github.com/leandrodaf/midikbd/internal/logger"
	"github.com/leandrodaf/midikbd/sdk/contracts"
	"github.com/leandrodaf/midikbd/sdk/midikbd"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

type RootOptions struct {
	RootNote int
	Layout   string
	LogLevel string
}

func NewRootCmd() *cobra.Command {
	allOptions := &RootOptions{}

	rootCmd := &cobra.Command{
		Use:   "midikbd [flags] <device_id> <port_name>",
		Short: "Play a computer keyboard as a MIDI controller.",
		Long: `Grab a keyboard exclusively and turn its key presses into MIDI notes on a
virtual output port. Hold Control and press C on the grabbed keyboard to exit.`,
		Example:       "  midikbd 3 \"Keyboard MIDI\"\n  midikbd -r 48 --layout layout.yaml 3 kbd",
		Args:          parseArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, allOptions, args)
		},
	}
	rootCmd.SetFlagErrorFunc(usageError)

	rootCmd.Flags().IntVarP(
		&allOptions.RootNote, "root-note", "r", contracts.DefaultRootNote,
		`MIDI note (0-127) of the first mapped key`,
	)
	rootCmd.Flags().StringVar(
		&allOptions.Layout, "layout", "",
		`YAML file describing the keycode rows and exit combo`,
	)
	rootCmd.Flags().StringVar(
		&allOptions.LogLevel, "log-level", "info",
		`Log level: debug, info, warn, error`,
	)

	rootCmd.AddCommand(newDevicesCmd())
	return rootCmd
}

// usageError prints the usage text before handing the error back; it is
// only used for malformed command lines.
func usageError(cmd *cobra.Command, err error) error {
	_ = cmd.Usage()
	return err
}

func parseArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return usageError(cmd, err)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 0 {
		return usageError(cmd, fmt.Errorf("device_id must be a non-negative integer, got %q", args[0]))
	}
	if args[1] == "" {
		return usageError(cmd, fmt.Errorf("port_name must not be empty"))
	}
	return nil
}

// resolveConfig merges the environment with the flags actually given.
func resolveConfig(cmd *cobra.Command, options *RootOptions) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("root-note") {
		cfg.RootNote = options.RootNote
	}
	if flags.Changed("layout") {
		cfg.Layout = options.Layout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = options.LogLevel
	}
	return cfg, nil
}

func runSession(cmd *cobra.Command, options *RootOptions, args []string) error {
	deviceID, _ := strconv.Atoi(args[0])
	portName := args[1]

	cfg, err := resolveConfig(cmd, options)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	log := logger.NewZapLogger()
	defer syncLogger(log)
	opts = append([]contracts.Option{contracts.WithLogger(log)}, opts...)

	session, err := midikbd.Start(deviceID, portName, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Root note: %s\n", engine.NoteName(cfg.RootNote))
	fmt.Fprintf(out, "Grabbed device %d (%s)\n", deviceID, session.DeviceName())
	fmt.Fprintf(out, "Output %q open\n", session.PortName())
	fmt.Fprintln(out, "Press ^C to exit (on grabbed device)")

	ctx, cancel := signal.NotifyContext(cmd.Context(), unix.SIGINT, unix.SIGTERM)
	defer cancel()

	return session.Run(ctx)
}

func syncLogger(log contracts.Logger) {
	if s, ok := log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
