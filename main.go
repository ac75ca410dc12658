package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lguibr/pingpong/bollywood"
	"github.com/lguibr/pingpong/rally"
	"github.com/lguibr/pingpong/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	if err := run(context.Background(), utils.DefaultConfig(), os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run plays a single match with cfg, writing hop lines to stdout and logs to stderr.
func run(ctx context.Context, cfg utils.Config, stdout, stderr io.Writer) (err error) {
	logger, err := utils.NewLogger(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	engine := bollywood.NewEngine(
		bollywood.WithLogger(logger),
		bollywood.WithMailboxSize(cfg.MailboxSize),
	)
	defer func() {
		err = multierr.Append(err, engine.Shutdown(cfg.ShutdownTimeout))
	}()

	match := rally.NewMatch(engine, cfg, stdout, logger)
	result, err := match.Play(ctx)
	if err != nil {
		return err
	}
	logger.Debug("rally complete",
		zap.String("match", result.MatchID),
		zap.String("final", result.FinalMessage()))
	return nil
}
