package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/udisondev/rmsheet/internal/config"
	"github.com/udisondev/rmsheet/internal/data"
	"github.com/udisondev/rmsheet/internal/db"
	"github.com/udisondev/rmsheet/internal/model"
)

type command struct {
	name    string
	usage   string
	desc    string
	nargs   int
	needsDB bool
	run     func(ctx context.Context, a *app, args []string) error
}

var commands []command

func registerCommand(c command) {
	commands = append(commands, c)
}

func init() {
	registerCommand(command{name: "rules", desc: "Load the rule tables and print a summary", run: runRules})
	registerCommand(command{
		name: "create", usage: "<name> <race> <culture> <profession>", nargs: 4, needsDB: true,
		desc: "Create a sheet and save it", run: runCreate,
	})
	registerCommand(command{name: "show", usage: "<uuid>", nargs: 1, needsDB: true, desc: "Print a saved sheet", run: runShow})
	registerCommand(command{name: "list", needsDB: true, desc: "List saved sheets", run: runList})
	registerCommand(command{name: "delete", usage: "<uuid>", nargs: 1, needsDB: true, desc: "Delete a saved sheet", run: runDelete})
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sheetcalc <command> [args]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %-40s %s\n", c.name, c.usage, c.desc)
	}
}

// app carries what the commands share: rule tables, config and storage.
type app struct {
	cfg    config.SheetCalc
	md     *data.MetaData
	db     *db.DB
	sheets *db.SheetRepository
	out    io.Writer
}

func newApp(ctx context.Context, cfg config.SheetCalc, withDB bool) (*app, error) {
	md, err := data.Load(ctx, os.DirFS(cfg.DataDir))
	if err != nil {
		return nil, fmt.Errorf("loading rule tables from %s: %w", cfg.DataDir, err)
	}
	a := &app{cfg: cfg, md: md, out: os.Stdout}
	if !withDB {
		return a, nil
	}

	dsn := cfg.Database.DSN()
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Debug("database connected")
	a.db = database
	a.sheets = db.NewSheetRepository(database.Pool())
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

func runRules(_ context.Context, a *app, _ []string) error {
	printRules(a.out, a.md, a.cfg.Rules)
	return nil
}

func runCreate(ctx context.Context, a *app, args []string) error {
	var ids [3]int
	for i, s := range args[1:] {
		id, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", s, err)
		}
		ids[i] = id
	}

	sheet, err := model.NewSheet(a.md, a.cfg.Rules, model.Selection{
		RaceID:       ids[0],
		CultureID:    ids[1],
		ProfessionID: ids[2],
	})
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	sheet.SetName(args[0])

	if err := a.sheets.Save(ctx, sheet.Snapshot()); err != nil {
		return err
	}
	slog.Info("sheet created", "id", sheet.ID(), "name", sheet.Name())
	printSheet(a.out, sheet)
	return nil
}

func runShow(ctx context.Context, a *app, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid sheet id %q: %w", args[0], err)
	}
	snap, err := a.sheets.Load(ctx, id)
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("sheet %s not found", id)
	}
	sheet, err := model.Restore(a.md, a.cfg.Rules, *snap)
	if err != nil {
		return fmt.Errorf("restoring sheet %s: %w", id, err)
	}
	printSheet(a.out, sheet)
	return nil
}

func runList(ctx context.Context, a *app, _ []string) error {
	list, err := a.sheets.List(ctx)
	if err != nil {
		return err
	}
	printSummaries(a.out, a.md, list)
	return nil
}

func runDelete(ctx context.Context, a *app, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid sheet id %q: %w", args[0], err)
	}
	ok, err := a.sheets.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("sheet %s not found", id)
	}
	fmt.Fprintf(a.out, "deleted %s\n", id)
	return nil
}
