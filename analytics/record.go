package analytics

import (
	"strings"
)

// Key is a canonical output field name, i.e. the header of a destination worksheet column.
type Key string

const (
	Date                    Key = "Дата"
	UTMSource               Key = "utm_source"
	UTMMedium               Key = "utm_medium"
	UTMCampaign             Key = "utm_campaign"
	UTMTerm                 Key = "UTM-Term"
	Visits                  Key = "visits"
	BounceRate              Key = "bounceRate"
	PageDepth               Key = "pageDepth"
	AvgVisitDurationSeconds Key = "avgVisitDurationSeconds"
	RobotPercentage         Key = "robotPercentage"
	GoalActions             Key = "GoalActions"
)

// Column associates a report column label with the canonical key it is written under.
type Column struct {
	Label string
	Key   Key
}

var keys = [...]Key{
	Date,
	UTMSource,
	UTMMedium,
	UTMCampaign,
	UTMTerm,
	Visits,
	BounceRate,
	PageDepth,
	AvgVisitDurationSeconds,
	RobotPercentage,
	GoalActions,
}

var columns = [...]Column{
	{"Дата визита", Date},
	{"UTM Source", UTMSource},
	{"UTM Medium", UTMMedium},
	{"UTM Campaign", UTMCampaign},
	{"UTM Term", UTMTerm},
	{"Визиты", Visits},
	{"Отказы", BounceRate},
	{"Глубина просмотра", PageDepth},
	{"Время на сайте", AvgVisitDurationSeconds},
	{"Роботность", RobotPercentage},
}

// Keys returns the canonical keys in worksheet order.
func Keys() []Key {
	list := keys
	return list[:]
}

// Columns returns the report label to canonical key table.
func Columns() []Column {
	list := columns
	return list[:]
}

// Lookup returns the canonical key for a report column label.
func Lookup(label string) (Key, bool) {
	label = strings.TrimSpace(label)
	for _, c := range columns {
		if c.Label == label {
			return c.Key, true
		}
	}

	return "", false
}

// ParseKey matches a destination worksheet header against the canonical keys. The
// date column may also be headed 'Date'.
func ParseKey(header string) (Key, bool) {
	header = strings.TrimSpace(header)
	if header == "Date" {
		return Date, true
	}

	for _, k := range keys {
		if string(k) == header {
			return k, true
		}
	}

	return "", false
}

// Percentages returns the keys whose destination columns are displayed as percentages.
func Percentages() []Key {
	return []Key{BounceRate, RobotPercentage}
}

// Record is a single report row projected onto the canonical keys.
type Record map[Key]any

// NewRecord returns a record with every canonical key set to "" except the date.
func NewRecord(date string) Record {
	record := make(Record, len(keys))
	for _, k := range keys {
		record[k] = ""
	}

	record[Date] = date

	return record
}
