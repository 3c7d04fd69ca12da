package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/vcfg/cli"
	"github.com/ardnew/vcfg/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		cli.Report(os.Stderr, err)
		log.Debug("run failed", slog.Any("error", err)) // slog uses LogValue()
		os.Exit(cli.ExitCode(err))
	}
}
