package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tyemirov/ai/internal/cli"
	"github.com/tyemirov/ai/internal/utils"
)

// main is the entry point for the ai command.
func main() {
	logLevel := utils.NewLogLevel()
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(logLevel)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	applicationExecutionError := cli.Execute(ctx, cli.NewEnvironment(loggerInstance, logLevel), os.Args[1:])
	stop()
	_ = loggerInstance.Sync()
	os.Exit(cli.ExitCode(applicationExecutionError))
}
