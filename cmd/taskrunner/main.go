package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"labfleet/global"
	"labfleet/initialize"

	"github.com/robfig/cron/v3"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config file")
		daemon     = flag.Bool("daemon", false, "Run a minute-granularity tick loop instead of a single pass")
	)
	flag.Parse()

	app, err := initialize.Build(*configPath, *daemon)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("initialize")
	}

	if !*daemon {
		// One-shot mode for an external cron driver. Exit 0 regardless of
		// individual task outcomes; only a failed pass is fatal.
		if err := app.Engine.RunTick(context.Background()); err != nil {
			global.Logger.Fatal().Err(err).Msg("tick failed")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New()
	if _, err := c.AddFunc("* * * * *", func() {
		if err := app.Engine.RunTick(ctx); err != nil {
			global.Logger.Error().Err(err).Msg("tick failed")
		}
	}); err != nil {
		global.Logger.Fatal().Err(err).Msg("register tick job")
	}
	c.Start()
	global.Logger.Info().Str("config", *configPath).Msg("taskrunner daemon started")

	<-ctx.Done()
	<-c.Stop().Done()
	global.Logger.Info().Msg("taskrunner stopped")
	os.Exit(0)
}
