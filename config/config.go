// Package config loads the job settings from (in increasing order of precedence) the
// built-in defaults, an optional YAML file and the environment (including a .env file).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCredentials = "google-api-key.json"
	DefaultTables      = "tables"
	DefaultEnv         = ".env"

	SpreadsheetEnv = "GOOGLE_TABLE_ID"
)

type Config struct {
	Spreadsheet string    `yaml:"spreadsheet"`
	Credentials string    `yaml:"credentials"`
	Tables      string    `yaml:"tables"`
	Report      Report    `yaml:"report"`
	Worksheet   Worksheet `yaml:"worksheet"`
}

// Report is the layout of the exported XLSX reports.
type Report struct {
	Sheet     string `yaml:"sheet"`
	DateCell  string `yaml:"date-cell"`
	HeaderRow int    `yaml:"header-row"`
	DataRow   int    `yaml:"data-row"`
}

// Worksheet describes the destination worksheet. Formula columns are ignored when
// looking for the first empty row.
type Worksheet struct {
	FormulaColumns []string `yaml:"formula-columns"`
	PercentFormat  string   `yaml:"percent-format"`
}

func NewConfig() *Config {
	return &Config{
		Spreadsheet: "",
		Credentials: DefaultCredentials,
		Tables:      DefaultTables,
		Report: Report{
			Sheet:     "Отчет",
			DateCell:  "A1",
			HeaderRow: 5,
			DataRow:   7,
		},
		Worksheet: Worksheet{
			FormulaColumns: []string{"A", "L"},
			PercentFormat:  "0.00%",
		},
	}
}

// Load overlays the settings in a YAML file. Settings missing from the file keep their
// current values.
func (c *Config) Load(file string) error {
	if strings.TrimSpace(file) == "" {
		return nil
	}

	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("invalid configuration file %v (%w)", file, err)
	}

	return nil
}

// LoadEnv loads the .env files (if they exist) into the process environment and then
// applies the environment variable settings.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading %v (%w)", f, err)
		}
	}

	if v, ok := os.LookupEnv(SpreadsheetEnv); ok {
		c.Spreadsheet = strings.TrimSpace(v)
	}

	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tables) == "" {
		return fmt.Errorf("missing input directory")
	}

	if strings.TrimSpace(c.Report.Sheet) == "" {
		return fmt.Errorf("missing report sheet name")
	}

	if _, _, err := excelize.CellNameToCoordinates(c.Report.DateCell); err != nil {
		return fmt.Errorf("invalid report date cell '%v' (%w)", c.Report.DateCell, err)
	}

	if c.Report.HeaderRow < 1 {
		return fmt.Errorf("invalid report header row (%v)", c.Report.HeaderRow)
	}

	if c.Report.DataRow <= c.Report.HeaderRow {
		return fmt.Errorf("report data row (%v) must follow the header row (%v)", c.Report.DataRow, c.Report.HeaderRow)
	}

	if _, err := c.Worksheet.Formulas(); err != nil {
		return err
	}

	return nil
}

// Formulas returns the 0-based indices of the formula columns.
func (w Worksheet) Formulas() (map[int]bool, error) {
	columns := map[int]bool{}
	for _, name := range w.FormulaColumns {
		n, err := excelize.ColumnNameToNumber(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("invalid formula column '%v' (%w)", name, err)
		}

		columns[n-1] = true
	}

	return columns, nil
}
