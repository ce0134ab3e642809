package models

import "time"

// AverageRowName labels the synthetic trailing row of every non-empty
// chart report.
const AverageRowName = "average"

// ChartRow is one entry of a chart report: an event or location name
// paired with its metric (income or tickets sold).
type ChartRow struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DateInterval restricts a chart aggregate to tickets sold within
// [Start, End). Start must precede End.
type DateInterval struct {
	Start time.Time
	End   time.Time
}

// DummyDateInterval receives an interval from a JSON request before it is
// validated and parsed. Dates arrive as strings in the 2006-01-02 layout.
type DummyDateInterval struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}

// SystemInfo is the summary block of the sysinfo chart endpoint.
type SystemInfo struct {
	NumberOfAdmins int64   `json:"numberOfAdmins"`
	NumberOfUsers  int64   `json:"numberOfUsers"`
	NumberOfEvents int64   `json:"numberOfEvents"`
	AllTimeIncome  float64 `json:"allTimeIncome"`
	AllTimeTickets int64   `json:"allTimeTickets"`
}
