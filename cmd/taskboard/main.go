package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/taskboard/internal/cli"
	"github.com/Makepad-fr/taskboard/internal/config"
	"github.com/Makepad-fr/taskboard/internal/log"
	"github.com/Makepad-fr/taskboard/internal/store"
	"github.com/Makepad-fr/taskboard/internal/store/jsonstore"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", config.DefaultPath, "configuration file")
	seedPath := flag.String("seed", "", "JSON file of tasks loaded at start-up")
	theme := flag.String("theme", "", "classic, neon or mono")
	group := flag.Bool("group", false, "ls shows one section per status")
	debug := flag.Bool("debug", false, "log store activity and error stack traces")
	flag.Usage = func() { cli.PrintHelp(flag.CommandLine.Output()) }
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(cli.ExitUsage)
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(cli.ExitError)
	}
	overrides := config.Overrides{Theme: *theme, SeedPath: *seedPath, Group: *group}
	if err := cfg.Apply(overrides); err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(cli.ExitError)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(cli.ExitError)
	}
	opts := []log.Option{log.WithLevel(level)}
	if *debug {
		opts = []log.Option{
			log.WithLevel(logrus.DebugLevel),
			log.WithFormatter(&logrus.TextFormatter{FullTimestamp: true, PadLevelText: true}),
		}
	}
	logger := log.New(opts...)

	if !ui.SetTheme(cfg.UI.Theme) {
		logger.Warnf("unknown theme %q, using classic", cfg.UI.Theme)
	}

	s := store.New(store.WithLogger(logger))
	if cfg.Seed.Path != "" {
		inputs, err := jsonstore.Load(cfg.Seed.Path)
		if err != nil {
			ui.Fail(os.Stderr, "seed: "+err.Error())
			os.Exit(cli.ExitError)
		}
		// Records the store rejects are reported; the rest are kept.
		if err := jsonstore.Seed(s, inputs); err != nil {
			ui.Fail(os.Stderr, "seed: "+err.Error())
		}
		logger.WithField("tasks", s.Len()).Debug("seeded")
	}

	runner := cli.NewRunner(s,
		cli.WithOptions(cli.Options{Group: cfg.UI.Group}),
		cli.WithLogger(logger),
		cli.WithConfig(cfg),
	)
	code := runner.Run(args)
	if code != cli.ExitOK {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
