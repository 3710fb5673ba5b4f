package main

import (
	"context"
	"os"

	"github.com/gruntwork-io/fglob/cli"
	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/internal/os/signal"
	"github.com/gruntwork-io/fglob/pkg/log"
	"github.com/gruntwork-io/fglob/telemetry"
)

// The main entrypoint for fglob
func main() {
	logger := log.New(log.WithOutput(os.Stderr), log.WithLevel(log.InfoLevel))

	defer errors.Recover(checkForErrorsAndExit(logger))

	ctx, stop := signal.NotifyContext(context.Background(), signal.InterruptSignals...)
	defer stop()

	err := telemetry.Configure(ctx, &telemetry.Options{
		Vars:       telemetry.EnvVars(),
		Writer:     os.Stderr,
		AppName:    cli.AppName,
		AppVersion: cli.Version,
	})
	if err != nil {
		logger.Warnf("Tracing is disabled: %v", err)
	}

	app := cli.NewApp(os.Stdout, os.Stderr, logger)
	err = app.RunContext(ctx, os.Args)

	if shutdownErr := telemetry.Shutdown(context.Background()); shutdownErr != nil {
		logger.Debugf("Error shutting down tracing: %v", shutdownErr)
	}

	stop()
	checkForErrorsAndExit(logger)(err)
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
func checkForErrorsAndExit(logger log.Logger) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		logger.Error(err.Error())

		if errStack := errors.ErrorStack(err); errStack != "" {
			logger.Trace(errStack)
		}

		os.Exit(1)
	}
}
