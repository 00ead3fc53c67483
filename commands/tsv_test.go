package commands

import (
	"strings"
	"testing"

	"github.com/metrika-tools/metrika-app-sheets/analytics"
)

func TestRecordsToTSV(t *testing.T) {
	expected := "Дата\tutm_source\tutm_medium\tutm_campaign\tUTM-Term\tvisits\tbounceRate\tpageDepth\tavgVisitDurationSeconds\trobotPercentage\tGoalActions\n" +
		"01.03.2024\tyandex\tcpc\tspring\t\t12\t0.25\t1.5\t61\t0.1\t5.5\n" +
		"02.03.2024\t\t\t\t\t3\t\t\t\t\t\n"

	records := []analytics.Record{
		makeRecord("01.03.2024", map[analytics.Key]any{
			analytics.UTMSource:               "yandex",
			analytics.UTMMedium:               "cpc",
			analytics.UTMCampaign:             "spring",
			analytics.UTMTerm:                 nil,
			analytics.Visits:                  int64(12),
			analytics.BounceRate:              0.25,
			analytics.PageDepth:               1.5,
			analytics.AvgVisitDurationSeconds: int64(61),
			analytics.RobotPercentage:         0.1,
			analytics.GoalActions:             5.5,
		}),
		makeRecord("02.03.2024", map[analytics.Key]any{
			analytics.Visits: int64(3),
		}),
	}

	var f strings.Builder
	if err := recordsToTSV(&f, records); err != nil {
		t.Fatalf("Unexpected error returned from recordsToTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %s\n   got:      %s\n", expected, f.String())
	}
}

func TestRecordsToTSVWithoutRecords(t *testing.T) {
	expected := "Дата\tutm_source\tutm_medium\tutm_campaign\tUTM-Term\tvisits\tbounceRate\tpageDepth\tavgVisitDurationSeconds\trobotPercentage\tGoalActions\n"

	var f strings.Builder
	if err := recordsToTSV(&f, nil); err != nil {
		t.Fatalf("Unexpected error returned from recordsToTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %s\n   got:      %s\n", expected, f.String())
	}
}
