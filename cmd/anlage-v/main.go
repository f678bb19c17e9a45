package main

import (
	"errors"
	"fmt"
	"os"

	"anlage-v/internal/app"
	"anlage-v/internal/config"
	"anlage-v/internal/logger"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	switch {
	case errors.Is(err, config.ErrVersionRequested):
		fmt.Printf("%s %s\n", app.AppName, app.AppVersion)
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case err != nil:
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 2
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(level, cfg.JSONLogs)

	log.Info("Main", "starting", map[string]interface{}{
		"version": app.AppVersion,
		"config":  cfg.String(),
	})

	application, err := app.NewApplication(cfg, log)
	if err != nil {
		log.Error("Main", "initialization failed", err, nil)
		return 1
	}

	if cfg.IsHeadless() {
		if err := application.Export(cfg.ExportFile); err != nil {
			log.Error("Main", "export failed", err, map[string]interface{}{"path": cfg.ExportFile})
			return 1
		}
		return 0
	}

	if err := application.Run(); err != nil {
		log.Error("Main", "application exited with error", err, nil)
		return 1
	}

	log.Info("Main", "terminated", nil)
	return 0
}
