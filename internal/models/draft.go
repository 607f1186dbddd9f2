package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/plant-shift-api/pkg/clock"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
)

// Section is one of the nine sequential panels of the shift form.
type Section int

const (
	SectionShiftInfo Section = iota + 1
	SectionFeed
	SectionMills
	SectionCyclones
	SectionMagnets
	SectionConcentrateFilters
	SectionThickeners
	SectionRecoveryFilters
	SectionDowntime
)

// FirstSection and LastSection bound navigation.
const (
	FirstSection = SectionShiftInfo
	LastSection  = SectionDowntime
)

var sectionNames = map[Section]string{
	SectionShiftInfo:          "shift_info",
	SectionFeed:               "feed",
	SectionMills:              "mills",
	SectionCyclones:           "cyclones",
	SectionMagnets:            "magnets",
	SectionConcentrateFilters: "concentrate_filters",
	SectionThickeners:         "thickeners",
	SectionRecoveryFilters:    "recovery_filters",
	SectionDowntime:           "downtime",
}

// Valid reports whether s is within 1..9.
func (s Section) Valid() bool {
	return s >= FirstSection && s <= LastSection
}

// String returns the section's stable name.
func (s Section) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return fmt.Sprintf("section_%d", int(s))
}

// ParseSection accepts a section number or its stable name.
func ParseSection(raw string) (Section, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if n, err := strconv.Atoi(raw); err == nil {
		s := Section(n)
		return s, s.Valid()
	}
	for s, name := range sectionNames {
		if name == raw {
			return s, true
		}
	}
	return 0, false
}

// NoteField names a free-text list on the report.
type NoteField string

const (
	NoteFieldGeneral   NoteField = "GENERAL_NOTES"
	NoteFieldNextShift NoteField = "NEXT_SHIFT_ACTIONS"
)

// NoteList is a free-text list with a revision counter bumped on every direct edit.
type NoteList struct {
	Items    []string `json:"items"`
	Revision int      `json:"revision"`
}

// ShiftDraft is the mutable shift report owned by one editing user.
type ShiftDraft struct {
	OwnerID          string           `json:"owner_id"`
	Section          Section          `json:"section"`
	Info             ShiftInfo        `json:"info"`
	Attendance       Attendance       `json:"attendance"`
	Feed             *FeedAllocation  `json:"feed"`
	Equipment        Equipment        `json:"equipment"`
	Downtime         []DowntimeRecord `json:"downtime"`
	Notes            NoteList         `json:"notes"`
	NextShiftActions NoteList         `json:"next_shift_actions"`
	Pumps            map[string]bool  `json:"pumps"`
	StartedAt        time.Time        `json:"started_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// NewShiftDraft lays out an empty draft for the given owner and shift.
func NewShiftDraft(ownerID string, info ShiftInfo, now time.Time) *ShiftDraft {
	draft := &ShiftDraft{
		OwnerID:    ownerID,
		Section:    FirstSection,
		Info:       info,
		Attendance: NewAttendance(),
		Feed:       NewFeedAllocation(),
		Equipment:  DefaultEquipment(info.RotationType),
		Pumps:      make(map[string]bool, len(Pumps)),
		StartedAt:  now,
		UpdatedAt:  now,
	}
	for _, line := range ProductionLines {
		draft.Downtime = append(draft.Downtime, DowntimeRecord{Line: line})
	}
	for _, pump := range Pumps {
		draft.Pumps[pump] = false
	}
	return draft
}

// ShiftMinutes is the shift duration in minutes.
func (d *ShiftDraft) ShiftMinutes() int {
	return clock.ParseClock(d.Info.Duration)
}

// DowntimeFor returns the downtime record of a line.
func (d *ShiftDraft) DowntimeFor(line ProductionLine) *DowntimeRecord {
	for i := range d.Downtime {
		if d.Downtime[i].Line == line {
			return &d.Downtime[i]
		}
	}
	return nil
}

// NoteList returns the list addressed by field.
func (d *ShiftDraft) NoteList(field NoteField) (*NoteList, error) {
	switch field {
	case NoteFieldGeneral:
		return &d.Notes, nil
	case NoteFieldNextShift:
		return &d.NextShiftActions, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown note field %q", field))
	}
}

// SetNotes replaces a list and bumps its revision.
func (d *ShiftDraft) SetNotes(field NoteField, items []string) error {
	list, err := d.NoteList(field)
	if err != nil {
		return err
	}
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	list.Items = cleaned
	list.Revision++
	return nil
}

// AppendDictation appends recognised text to a list if the list has not been edited since
// dictation started at revision. It reports whether the text was applied.
func (d *ShiftDraft) AppendDictation(field NoteField, revision int, text string) (bool, error) {
	list, err := d.NoteList(field)
	if err != nil {
		return false, err
	}
	text = strings.TrimSpace(text)
	if text == "" || list.Revision != revision {
		return false, nil
	}
	list.Items = append(list.Items, text)
	return true, nil
}

// Clone returns a deep copy of the draft.
func (d *ShiftDraft) Clone() (*ShiftDraft, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal draft: %w", err)
	}
	var out ShiftDraft
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	if out.Feed == nil {
		out.Feed = NewFeedAllocation()
	}
	return &out, nil
}
