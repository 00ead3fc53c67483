package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/metrika-tools/metrika-app-sheets/analytics"
	"github.com/metrika-tools/metrika-app-sheets/config"
	"github.com/metrika-tools/metrika-app-sheets/gsheets"
	"github.com/metrika-tools/metrika-app-sheets/tables"
	"github.com/metrika-tools/metrika-app-sheets/xlsx"
)

var LoadCmd = Load{
	worksheet:   "",
	goals:       nil,
	credentials: "",
	tables:      "",
	dryrun:      false,
	out:         os.Stdout,
}

// Load uploads the rows of the new XLSX reports in the input directory to a Google Sheets
// worksheet, starting at the first empty row.
type Load struct {
	worksheet   string
	goals       []string
	credentials string
	tables      string
	dryrun      bool
	out         io.Writer
}

func (cmd *Load) Description() string {
	return "Uploads web analytics XLSX reports to a Google Sheets worksheet"
}

func (cmd *Load) FlagSet(flagset *pflag.FlagSet) {
	flagset.StringVarP(&cmd.worksheet, "worksheet", "w", cmd.worksheet, "Google Sheets worksheet (tab) to load the reports into")
	flagset.StringArrayVarP(&cmd.goals, "goal-actions-columns", "g", cmd.goals, "Report column(s) summed into the GoalActions column. May be repeated.")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, fmt.Sprintf("Google service account or OAuth2 credentials file. Defaults to %v", config.DefaultCredentials))
	flagset.StringVar(&cmd.tables, "tables", cmd.tables, fmt.Sprintf("Directory with the XLSX reports. Defaults to %v", config.DefaultTables))
	flagset.BoolVar(&cmd.dryrun, "dry-run", cmd.dryrun, "Prints the extracted rows as TSV without marking the reports as processed or updating the worksheet")
}

// Execute loads the pending reports. Any arguments following the goal columns are
// treated as additional goal columns i.e. -g 'Goal 1' 'Goal 2'.
func (cmd *Load) Execute(ctx context.Context, options *Options, args ...string) error {
	// ... check parameters
	if strings.TrimSpace(cmd.worksheet) == "" {
		return fmt.Errorf("--worksheet is a required option")
	}

	goals := append([]string{}, cmd.goals...)
	if len(args) > 0 {
		if len(goals) == 0 {
			return fmt.Errorf("unexpected arguments %q", args)
		}

		goals = append(goals, args...)
	}

	conf, err := cmd.configure(options)
	if err != nil {
		return err
	}

	files, err := tables.Pending(conf.Tables)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		infof("No new reports in %v", conf.Tables)
		return nil
	}

	infof("Found %v new reports in %v", len(files), conf.Tables)

	if cmd.dryrun {
		records, err := extract(conf, files, goals, false)
		if err != nil {
			return err
		}

		return recordsToTSV(cmd.out, records)
	}

	if conf.Spreadsheet == "" {
		return fmt.Errorf("missing spreadsheet ID - set %v or 'spreadsheet' in the configuration file", config.SpreadsheetEnv)
	}

	if options.Debug {
		debugf("Spreadsheet - ID:%s  worksheet:%s", conf.Spreadsheet, cmd.worksheet)
	}

	ws, err := cmd.open(ctx, conf)
	if err != nil {
		return err
	}

	return load(ctx, ws, conf, files, goals)
}

func (cmd *Load) configure(options *Options) (*config.Config, error) {
	conf := config.NewConfig()
	if err := conf.Load(options.Config); err != nil {
		return nil, fmt.Errorf("could not load configuration (%w)", err)
	}

	if err := conf.LoadEnv(config.DefaultEnv); err != nil {
		return nil, err
	}

	if s := strings.TrimSpace(cmd.credentials); s != "" {
		conf.Credentials = s
	}

	if s := strings.TrimSpace(cmd.tables); s != "" {
		conf.Tables = s
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration (%w)", err)
	}

	return conf, nil
}

func (cmd *Load) open(ctx context.Context, conf *config.Config) (*gsheets.Worksheet, error) {
	client, err := authorize(ctx, conf.Credentials, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	return gsheets.Open(ctx, google, conf.Spreadsheet, cmd.worksheet)
}

// load finds the first free worksheet row, extracts and marks the reports and writes the
// extracted rows. Reports are marked as processed before the worksheet is updated.
func load(ctx context.Context, ws worksheet, conf *config.Config, files []string, goals []string) error {
	values, err := ws.Values(ctx)
	if err != nil {
		return err
	}

	header := []any{}
	if len(values) > 0 {
		header = values[0]
	}

	formulas, err := conf.Worksheet.Formulas()
	if err != nil {
		return err
	}

	columns := index(header)
	row := cursor(values, formulas)

	debugf("Worksheet '%v': %v matched columns, first free row %v", ws.Title(), len(columns), row)

	records, err := extract(conf, files, goals, true)
	if err != nil {
		return err
	}

	return write(ctx, ws, columns, row, records, conf.Worksheet.PercentFormat)
}

func extract(conf *config.Config, files []string, goals []string, mark bool) ([]analytics.Record, error) {
	layout := xlsx.Layout{
		Sheet:     conf.Report.Sheet,
		DateCell:  conf.Report.DateCell,
		HeaderRow: conf.Report.HeaderRow,
		DataRow:   conf.Report.DataRow,
	}

	records := []analytics.Record{}
	for _, file := range files {
		report, err := xlsx.Extract(filepath.Join(conf.Tables, file), layout, goals)
		if err != nil {
			return nil, fmt.Errorf("error extracting rows from %v (%w)", file, err)
		}

		records = append(records, report.Records...)

		infof("%v  extracted %v rows (%v)", file, len(report.Records), report.Date)

		if mark {
			if err := tables.MarkProcessed(conf.Tables, file); err != nil {
				return nil, err
			}
		}
	}

	return records, nil
}
