package main

import (
	"log/slog"
	"os"

	"kastelo.dev/resultados"
	"kastelo.dev/resultados/excel"
)

func main() {
	layout := resultados.DefaultLayout()
	sheet, err := resultados.LoadReader(os.Stdin, layout)
	if err != nil {
		slog.Error("Error loading workbook", "error", err)
		os.Exit(1)
	}

	general, err := resultados.ExtractGeneralData(sheet, layout, resultados.SaveOptions{})
	if err != nil {
		slog.Error("Error extracting general data", "error", err)
		os.Exit(1)
	}
	results, err := resultados.ExtractResults(sheet, layout, resultados.SaveOptions{})
	if err != nil {
		slog.Error("Error extracting results", "error", err)
		os.Exit(1)
	}

	bs, err := excel.WorkbookXLSX(general, results, resultados.DefaultCheckOptions().SeatsLabel)
	if err != nil {
		slog.Error("Error creating Excel file", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile("results.xlsx", bs, 0o644); err != nil {
		slog.Error("Error writing Excel file", "error", err)
		os.Exit(1)
	}
}
