// Character sheet calculator: loads the rule tables, creates sheets and
// prints their derived values.
//
// Usage:
//
//	sheetcalc rules                                   # rule table summary
//	sheetcalc create <name> <race> <culture> <profession>
//	sheetcalc show <uuid>
//	sheetcalc list
//	sheetcalc delete <uuid>
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/rmsheet/internal/config"
)

const ConfigPath = "config/sheetcalc.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printUsage(os.Stderr)
		if len(args) == 0 {
			return fmt.Errorf("no command given")
		}
		return nil
	}

	cmd, ok := lookupCommand(args[0])
	if !ok {
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
	if len(args)-1 != cmd.nargs {
		return fmt.Errorf("usage: sheetcalc %s %s", cmd.name, cmd.usage)
	}

	cfgPath := ConfigPath
	if p := os.Getenv("RMSHEET_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSheetCalc(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Логи в stderr, stdout занят выводом команд
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Debug("config loaded", "path", cfgPath, "data_dir", cfg.DataDir)

	a, err := newApp(ctx, cfg, cmd.needsDB)
	if err != nil {
		return err
	}
	defer a.Close()

	return cmd.run(ctx, a, args[1:])
}
