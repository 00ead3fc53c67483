// Copyright 2024 metrika-tools. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package metrika-app-sheets uploads the XLSX visit reports exported from a web analytics console to a Google Sheets
worksheet.

metrika-app-sheets can be used from the command line but is really intended to be run from a cron job to append the
rows of every new report in the input directory to a single worksheet, starting at the first empty row. A report is
marked as processed with a '<report>.success' file so that it is only ever uploaded once.

metrika-app-sheets supports the following options:

  - --worksheet, the Google Sheets worksheet (tab) to load the reports into
  - --goal-actions-columns, the report columns summed into the GoalActions column
  - --dry-run, to print the extracted rows as TSV without updating the worksheet
  - --config, an optional YAML file with the report layout and worksheet settings
*/
package sheets
