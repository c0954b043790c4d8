// Package config loads the pipeline configuration from an optional YAML
// file and RESULTADOS_* environment variables, on top of built-in defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"kastelo.dev/resultados"
	"kastelo.dev/resultados/snapshot"
)

const EnvPrefix = "RESULTADOS"

type Config struct {
	Input    Input    `yaml:"input"`
	Output   Output   `yaml:"output"`
	Database Database `yaml:"database"`
	Check    Check    `yaml:"check"`
	Logging  Logging  `yaml:"logging"`
}

// Input locates the source workbook and describes its layout.
type Input struct {
	Path              string `yaml:"path" split_words:"true"`
	Sheet             string `yaml:"sheet" split_words:"true"`
	HeaderRows        []int  `yaml:"header_rows" split_words:"true"`
	Rows              int    `yaml:"rows" split_words:"true"`
	FirstResultColumn string `yaml:"first_result_column" split_words:"true"`
	ProvinceColumn    string `yaml:"province_column" split_words:"true"`
}

type Output struct {
	Dir         string `yaml:"dir" split_words:"true"`
	Format      string `yaml:"format" split_words:"true"`
	GeneralFile string `yaml:"general_file" split_words:"true"`
	ResultsFile string `yaml:"results_file" split_words:"true"`
	// Disabled skips writing snapshots.
	Disabled bool `yaml:"disabled" split_words:"true"`
}

type Database struct {
	Driver       string `yaml:"driver" split_words:"true"`
	DSN          string `yaml:"dsn" split_words:"true"`
	GeneralTable string `yaml:"general_table" split_words:"true"`
	ResultsTable string `yaml:"results_table" split_words:"true"`
}

type Check struct {
	VotesLabel       string `yaml:"votes_label" split_words:"true"`
	SeatsLabel       string `yaml:"seats_label" split_words:"true"`
	VotesTotalColumn string `yaml:"votes_total_column" split_words:"true"`
}

type Logging struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
}

func Defaults() Config {
	layout := resultados.DefaultLayout()
	check := resultados.DefaultCheckOptions()
	return Config{
		Input: Input{
			Path:              "data/input/PROV_02_201911_1.xlsx",
			HeaderRows:        layout.HeaderRows[:],
			Rows:              layout.Rows,
			FirstResultColumn: layout.FirstResultColumn,
			ProvinceColumn:    layout.ProvinceColumn,
		},
		Output: Output{
			Dir:         "data/output",
			Format:      string(snapshot.FormatParquet),
			GeneralFile: "general_data.parquet",
			ResultsFile: "results_by_province.parquet",
		},
		Database: Database{
			Driver:       "sqlite",
			DSN:          "data/output/resultados.db",
			GeneralTable: "general_data",
			ResultsTable: "results_by_province",
		},
		Check: Check{
			VotesLabel:       check.VotesLabel,
			SeatsLabel:       check.SeatsLabel,
			VotesTotalColumn: check.VotesTotalColumn,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path, if path is not empty, overlays the
// environment and fills whatever is still unset from Defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(bs, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	var env Config
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	if err := mergo.Merge(&cfg, env, mergo.WithOverride); err != nil {
		return nil, err
	}
	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Input.HeaderRows) != 2 {
		return fmt.Errorf("input.header_rows: want 2 rows, got %d", len(c.Input.HeaderRows))
	}
	if err := c.Input.Layout().Validate(); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if _, err := snapshot.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}

func (i Input) Layout() resultados.Layout {
	l := resultados.Layout{
		Sheet:             i.Sheet,
		Rows:              i.Rows,
		FirstResultColumn: i.FirstResultColumn,
		ProvinceColumn:    i.ProvinceColumn,
	}
	copy(l.HeaderRows[:], i.HeaderRows)
	return l
}

func (c Check) Options() resultados.CheckOptions {
	return resultados.CheckOptions{
		VotesLabel:       c.VotesLabel,
		SeatsLabel:       c.SeatsLabel,
		VotesTotalColumn: c.VotesTotalColumn,
	}
}
