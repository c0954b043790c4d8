package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kingpin"

	"kastelo.dev/resultados"
	"kastelo.dev/resultados/config"
	"kastelo.dev/resultados/excel"
	"kastelo.dev/resultados/snapshot"
	"kastelo.dev/resultados/store"
)

func main() {
	configFile := kingpin.Flag("config", "YAML configuration file").Envar("RESULTADOS_CONFIG").String()
	logLevel := kingpin.Flag("log-level", "Log level (debug, info, warn, error)").String()
	logFormat := kingpin.Flag("log-format", "Log format (text, json)").String()
	input := kingpin.Flag("input", "Source workbook").Short('i').String()

	cmdPrepare := kingpin.Command("prepare", "Extract both tables and save snapshots").Default()
	outputDir := cmdPrepare.Flag("output-dir", "Snapshot directory").String()
	format := cmdPrepare.Flag("format", "Snapshot format (parquet, csv)").String()
	noSave := cmdPrepare.Flag("no-save", "Extract without writing snapshots").Bool()

	cmdCheck := kingpin.Command("check", "Check that both tables agree")

	cmdXLSX := kingpin.Command("xlsx", "Write the tables as a workbook report")
	xlsxOut := cmdXLSX.Flag("out", "Report file").Default("results.xlsx").String()

	cmdLoadDB := kingpin.Command("load-db", "Write both tables to a database")
	driver := cmdLoadDB.Flag("driver", "Database driver (sqlite, postgres)").String()
	dsn := cmdLoadDB.Flag("dsn", "Database connection string").String()

	cmd := kingpin.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Error loading configuration", "error", err)
		os.Exit(1)
	}
	override(&cfg.Logging.Level, *logLevel)
	override(&cfg.Logging.Format, *logFormat)
	override(&cfg.Input.Path, *input)
	override(&cfg.Output.Dir, *outputDir)
	override(&cfg.Output.Format, *format)
	override(&cfg.Database.Driver, *driver)
	override(&cfg.Database.DSN, *dsn)
	if *noSave {
		cfg.Output.Disabled = true
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Logging))

	switch cmd {
	case cmdPrepare.FullCommand():
		err = prepare(cfg)
	case cmdCheck.FullCommand():
		err = check(cfg)
	case cmdXLSX.FullCommand():
		err = writeXLSX(cfg, *xlsxOut)
	case cmdLoadDB.FullCommand():
		err = loadDB(cfg)
	}
	if err != nil {
		slog.Error("Failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func override(dst *string, flag string) {
	if flag != "" {
		*dst = flag
	}
}

func newLogger(cfg config.Logging) *slog.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(cfg.Level))
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// extract loads the workbook and extracts both tables, saving them when
// the output is enabled.
func extract(cfg *config.Config, save bool) (*resultados.GeneralData, resultados.Results, error) {
	layout := cfg.Input.Layout()
	slog.Info("Loading workbook", "path", cfg.Input.Path, "rows", layout.Rows)
	sheet, err := resultados.Load(cfg.Input.Path, layout)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Loaded sheet", "columns", len(sheet.Labels), "rows", len(sheet.Rows))

	var resultsOpts, generalOpts resultados.SaveOptions
	if save && !cfg.Output.Disabled {
		format, err := snapshot.ParseFormat(cfg.Output.Format)
		if err != nil {
			return nil, nil, err
		}
		dir := snapshot.Dir{Path: cfg.Output.Dir, Format: format}
		resultsOpts = resultados.SaveOptions{Saver: dir, Filename: cfg.Output.ResultsFile}
		generalOpts = resultados.SaveOptions{Saver: dir, Filename: cfg.Output.GeneralFile}
	}

	results, err := resultados.ExtractResults(sheet, layout, resultsOpts)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Extracted results", "rows", len(results))

	general, err := resultados.ExtractGeneralData(sheet, layout, generalOpts)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Extracted general data", "provinces", general.Len(), "columns", len(general.Cols))
	return general, results, nil
}

func prepare(cfg *config.Config) error {
	_, _, err := extract(cfg, true)
	if err != nil {
		return err
	}
	if cfg.Output.Disabled {
		slog.Info("Snapshots disabled, nothing written")
		return nil
	}
	format, _ := snapshot.ParseFormat(cfg.Output.Format)
	dir := snapshot.Dir{Path: cfg.Output.Dir, Format: format}
	slog.Info("Wrote snapshots", "general", dir.File(cfg.Output.GeneralFile), "results", dir.File(cfg.Output.ResultsFile))
	return nil
}

func check(cfg *config.Config) error {
	general, results, err := extract(cfg, false)
	if err != nil {
		return err
	}
	rep, err := resultados.Check(general, results, cfg.Check.Options())
	if err != nil {
		return err
	}

	for _, note := range rep.Notes {
		slog.Warn(note)
	}
	if rep.Diff != "" {
		fmt.Println(rep.Diff)
	}
	for _, m := range rep.Mismatches {
		fmt.Println(m)
	}
	if !rep.OK() {
		return fmt.Errorf("%d mismatches, province sets differ: %v", len(rep.Mismatches), rep.Diff != "")
	}
	fmt.Printf("OK: %d provinces, %v seats\n", rep.Provinces, rep.Seats)
	return nil
}

func writeXLSX(cfg *config.Config, out string) error {
	general, results, err := extract(cfg, false)
	if err != nil {
		return err
	}
	bs, err := excel.WorkbookXLSX(general, results, cfg.Check.SeatsLabel)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, bs, 0o644); err != nil {
		return err
	}
	slog.Info("Wrote workbook", "path", out)
	return nil
}

func loadDB(cfg *config.Config) error {
	general, results, err := extract(cfg, false)
	if err != nil {
		return err
	}

	db, err := store.Open(strings.ToLower(cfg.Database.Driver), cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Replace(ctx, cfg.Database.GeneralTable, general); err != nil {
		return err
	}
	if err := db.Replace(ctx, cfg.Database.ResultsTable, results); err != nil {
		return err
	}
	slog.Info("Loaded database", "driver", cfg.Database.Driver,
		"general", cfg.Database.GeneralTable, "results", cfg.Database.ResultsTable)
	return nil
}
