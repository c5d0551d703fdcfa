package main

import (
	"fmt"
	"log/slog"
	"os"

	bandchart "github.com/aouyang1/go-bandchart"
	"github.com/aouyang1/go-bandchart/config"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

const (
	profileCPU = "cpu"
	profileMem = "mem"
)

// app carries the resolved configuration shared by every subcommand.
type app struct {
	cfg config.Config
	opt *bandchart.Options

	profileMode string
	profiler    interface{ Stop() }
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		forecastPath string
		seed         uint64
		logLevel     string
	)

	root := &cobra.Command{
		Use:           "bandchart",
		Short:         "Render a baseline series with forecast confidence bands",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("forecast") {
				cfg.ForecastPath = forecastPath
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			lvl, err := cfg.Level()
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})))

			opt, err := cfg.Options()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.opt = opt

			return a.startProfile()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&forecastPath, "forecast", bandchart.DefaultForecastPath, "forecast workbook (.xlsx or .csv)")
	pf.Uint64Var(&seed, "seed", 0, "baseline noise seed, 0 picks a random seed")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&a.profileMode, "profile", "", "write a cpu or mem profile to the working directory")

	root.AddCommand(
		newServeCmd(a),
		newRenderCmd(a),
		newInspectCmd(a),
		newSampleCmd(a),
	)
	for _, sub := range root.Commands() {
		a.stopProfileAfter(sub)
	}
	return root
}

// stopProfileAfter flushes any running profile once the command returns, including
// when it fails, since cobra skips post-run hooks after an error.
func (a *app) stopProfileAfter(cmd *cobra.Command) {
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		defer a.stopProfile()
		return run(cmd, args)
	}
}

func (a *app) startProfile() error {
	switch a.profileMode {
	case "":
		return nil
	case profileCPU:
		a.profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	case profileMem:
		a.profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	default:
		return fmt.Errorf("unknown profile mode %q, expected %s or %s", a.profileMode, profileCPU, profileMem)
	}
	return nil
}

func (a *app) stopProfile() {
	if a.profiler != nil {
		a.profiler.Stop()
		a.profiler = nil
	}
}

func (a *app) loadChart() (*bandchart.Chart, *bandchart.SeriesStore, error) {
	store, err := bandchart.LoadSeriesStore(a.opt)
	if err != nil {
		return nil, nil, err
	}
	return bandchart.NewChart(store, a.opt.RangeOptions), store, nil
}

func createFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create %s, %w", path, err)
	}
	return f, nil
}
