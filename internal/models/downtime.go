package models

import (
	"github.com/noah-isme/plant-shift-api/pkg/clock"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

// Stoppage is a single stop interval on a line.
type Stoppage struct {
	FromDate jalali.Date `json:"from_date"`
	FromTime string      `json:"from_time"`
	ToDate   jalali.Date `json:"to_date"`
	ToTime   string      `json:"to_time"`
	Cause    string      `json:"cause"`
}

// Minutes returns the length of the stop, zero when the interval is reversed.
func (s Stoppage) Minutes() int {
	return clock.ElapsedMinutes(s.FromDate, s.FromTime, s.ToDate, s.ToTime)
}

// Ordered reports whether the stop ends after it starts.
func (s Stoppage) Ordered() bool {
	return clock.CompareDateTime(s.FromDate, s.FromTime, s.ToDate, s.ToTime) < 0
}

// DowntimeRecord accounts for a line's shift time.
type DowntimeRecord struct {
	Line      ProductionLine `json:"line"`
	Worked    string         `json:"worked"`
	Stopped   string         `json:"stopped"`
	Reason    string         `json:"reason"`
	Stoppages []Stoppage     `json:"stoppages,omitempty"`
}

// WorkedMinutes parses the worked clock value.
func (r DowntimeRecord) WorkedMinutes() int {
	return clock.ParseClock(r.Worked)
}

// StoppedMinutes parses the stopped clock value.
func (r DowntimeRecord) StoppedMinutes() int {
	return clock.ParseClock(r.Stopped)
}

// StoppageMinutes sums the listed stop intervals.
func (r DowntimeRecord) StoppageMinutes() int {
	total := 0
	for _, s := range r.Stoppages {
		total += s.Minutes()
	}
	return total
}
