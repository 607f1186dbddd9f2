package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

// LineFeedReport is the resolved hourly feed data of a line.
type LineFeedReport struct {
	Line         ProductionLine   `json:"line"`
	Hours        []HourlyFeedSlot `json:"hours"`
	TotalTonnage float64          `json:"total_tonnage"`
}

// DowntimeSummary extends a downtime record with derived minutes and ratios.
type DowntimeSummary struct {
	DowntimeRecord
	WorkedMinutes  int     `json:"worked_minutes"`
	StoppedMinutes int     `json:"stopped_minutes"`
	WorkRatio      float64 `json:"work_ratio"`
	StopRatio      float64 `json:"stop_ratio"`
}

// ShiftReportPayload is the immutable, fully resolved snapshot of a submitted shift.
type ShiftReportPayload struct {
	ID               string            `json:"id"`
	Code             string            `json:"code"`
	SubmittedBy      string            `json:"submitted_by"`
	SubmittedAt      time.Time         `json:"submitted_at"`
	Info             ShiftInfo         `json:"info"`
	GregorianDate    string            `json:"gregorian_date"`
	Weekday          string            `json:"weekday"`
	ShiftMinutes     int               `json:"shift_minutes"`
	Attendance       []AttendanceEntry `json:"attendance"`
	AttendanceCounts AttendanceCounts  `json:"attendance_counts"`
	Feed             []LineFeedReport  `json:"feed"`
	TotalTonnage     float64           `json:"total_tonnage"`
	Equipment        Equipment         `json:"equipment"`
	Downtime         []DowntimeSummary `json:"downtime"`
	Notes            []string          `json:"notes"`
	NextShiftActions []string          `json:"next_shift_actions"`
	Pumps            map[string]bool   `json:"pumps"`
}

// Value marshals the payload to JSON for persistence.
func (p ShiftReportPayload) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal shift report payload: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSON payload column.
func (p *ShiftReportPayload) Scan(value interface{}) error {
	if value == nil {
		*p = ShiftReportPayload{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for ShiftReportPayload", value)
	}
	if len(data) == 0 {
		*p = ShiftReportPayload{}
		return nil
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("unmarshal shift report payload: %w", err)
	}
	return nil
}

// ShiftReport is the persisted row: summary columns for querying plus the full payload.
type ShiftReport struct {
	ID             string             `db:"id" json:"id"`
	Code           string             `db:"code" json:"code"`
	ShiftDate      jalali.Date        `db:"shift_date" json:"shift_date"`
	GregorianDate  time.Time          `db:"gregorian_date" json:"gregorian_date"`
	Crew           Crew               `db:"crew" json:"crew"`
	RotationType   RotationLabel      `db:"rotation_type" json:"rotation_type"`
	SupervisorID   string             `db:"supervisor_id" json:"supervisor_id"`
	TotalTonnage   float64            `db:"total_tonnage" json:"total_tonnage"`
	PresentCount   int                `db:"present_count" json:"present_count"`
	StoppedMinutes int                `db:"stopped_minutes" json:"stopped_minutes"`
	Payload        ShiftReportPayload `db:"payload" json:"payload"`
	CreatedBy      string             `db:"created_by" json:"created_by"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
}

// ShiftReportFilter scopes report listing.
type ShiftReportFilter struct {
	From     *jalali.Date
	To       *jalali.Date
	Crew     *Crew
	Page     int
	PageSize int
}

// ExportFormat is a rendering format for a submitted report.
type ExportFormat string

const (
	ExportFormatPDF ExportFormat = "pdf"
	ExportFormatCSV ExportFormat = "csv"
)

// Valid reports whether the format is supported.
func (f ExportFormat) Valid() bool {
	return f == ExportFormatPDF || f == ExportFormatCSV
}

// ContentType returns the HTTP media type of the format.
func (f ExportFormat) ContentType() string {
	if f == ExportFormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}
