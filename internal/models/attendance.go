package models

import (
	"sort"

	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
)

// AttendanceStatus represents the bucket a person is recorded in for a shift.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "PRESENT"
	AttendanceStatusOnLeave AttendanceStatus = "ON_LEAVE"
	AttendanceStatusAbsent  AttendanceStatus = "ABSENT"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusOnLeave, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// LeaveType refines the on-leave bucket.
type LeaveType string

const (
	LeaveTypeHourly LeaveType = "HOURLY"
	LeaveTypeDaily  LeaveType = "DAILY"
)

// Valid returns true when the leave type is supported.
func (t LeaveType) Valid() bool {
	return t == LeaveTypeHourly || t == LeaveTypeDaily
}

// AttendanceEntry is a single person's attendance on the shift.
type AttendanceEntry struct {
	PersonnelID string           `json:"personnel_id"`
	Status      AttendanceStatus `json:"status"`
	LeaveType   LeaveType        `json:"leave_type,omitempty"`
}

// Attendance maps personnel to exactly one status bucket.
type Attendance struct {
	Entries map[string]AttendanceEntry `json:"entries"`
}

// NewAttendance returns an empty attendance sheet.
func NewAttendance() Attendance {
	return Attendance{Entries: make(map[string]AttendanceEntry)}
}

// Mark places the person in the given bucket, removing them from any previous one.
func (a *Attendance) Mark(personnelID string, status AttendanceStatus, leave LeaveType) error {
	if personnelID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "personnel id is required")
	}
	if !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unsupported attendance status")
	}
	if status == AttendanceStatusOnLeave {
		if !leave.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, "leave type must be HOURLY or DAILY")
		}
	} else {
		leave = ""
	}
	if a.Entries == nil {
		a.Entries = make(map[string]AttendanceEntry)
	}
	a.Entries[personnelID] = AttendanceEntry{PersonnelID: personnelID, Status: status, LeaveType: leave}
	return nil
}

// Unmark removes the person from every bucket.
func (a *Attendance) Unmark(personnelID string) {
	delete(a.Entries, personnelID)
}

// StatusOf returns the person's entry, if recorded.
func (a Attendance) StatusOf(personnelID string) (AttendanceEntry, bool) {
	entry, ok := a.Entries[personnelID]
	return entry, ok
}

// Bucket lists the personnel ids recorded with status, sorted.
func (a Attendance) Bucket(status AttendanceStatus) []string {
	ids := make([]string, 0)
	for id, entry := range a.Entries {
		if entry.Status == status {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Sorted returns all entries ordered by personnel id.
func (a Attendance) Sorted() []AttendanceEntry {
	out := make([]AttendanceEntry, 0, len(a.Entries))
	for _, entry := range a.Entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PersonnelID < out[j].PersonnelID })
	return out
}

// AttendanceCounts summarises attendance per bucket.
type AttendanceCounts struct {
	Present     int `json:"present"`
	OnLeave     int `json:"on_leave"`
	HourlyLeave int `json:"hourly_leave"`
	DailyLeave  int `json:"daily_leave"`
	Absent      int `json:"absent"`
	Total       int `json:"total"`
}

// Counts tallies the sheet.
func (a Attendance) Counts() AttendanceCounts {
	var c AttendanceCounts
	for _, entry := range a.Entries {
		switch entry.Status {
		case AttendanceStatusPresent:
			c.Present++
		case AttendanceStatusOnLeave:
			c.OnLeave++
			if entry.LeaveType == LeaveTypeHourly {
				c.HourlyLeave++
			} else {
				c.DailyLeave++
			}
		case AttendanceStatusAbsent:
			c.Absent++
		}
		c.Total++
	}
	return c
}
