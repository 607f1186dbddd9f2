package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

func TestAttendanceMarkMovesBetweenBuckets(t *testing.T) {
	sheet := NewAttendance()
	require.NoError(t, sheet.Mark("p-1", AttendanceStatusPresent, ""))
	require.NoError(t, sheet.Mark("p-2", AttendanceStatusAbsent, ""))
	assert.Equal(t, []string{"p-1"}, sheet.Bucket(AttendanceStatusPresent))

	require.NoError(t, sheet.Mark("p-1", AttendanceStatusOnLeave, LeaveTypeHourly))
	assert.Empty(t, sheet.Bucket(AttendanceStatusPresent))
	assert.Equal(t, []string{"p-1"}, sheet.Bucket(AttendanceStatusOnLeave))

	entry, ok := sheet.StatusOf("p-1")
	require.True(t, ok)
	assert.Equal(t, LeaveTypeHourly, entry.LeaveType)

	counts := sheet.Counts()
	assert.Equal(t, AttendanceCounts{OnLeave: 1, HourlyLeave: 1, Absent: 1, Total: 2}, counts)
}

func TestAttendanceMarkValidation(t *testing.T) {
	sheet := NewAttendance()
	assert.Error(t, sheet.Mark("", AttendanceStatusPresent, ""))
	assert.Error(t, sheet.Mark("p-1", "LATE", ""))
	assert.Error(t, sheet.Mark("p-1", AttendanceStatusOnLeave, ""))

	require.NoError(t, sheet.Mark("p-1", AttendanceStatusPresent, LeaveTypeDaily))
	entry, _ := sheet.StatusOf("p-1")
	assert.Empty(t, entry.LeaveType)

	sheet.Unmark("p-1")
	_, ok := sheet.StatusOf("p-1")
	assert.False(t, ok)
}

func newTestDraft() *ShiftDraft {
	info := ShiftInfo{
		Date:         jalali.MustParse("1403/01/01"),
		Crew:         CrewA,
		RotationType: RotationNight1,
		Duration:     "12:00",
		SupervisorID: "sup-1",
	}
	return NewShiftDraft("user-1", info, time.Date(2024, 3, 20, 19, 0, 0, 0, time.UTC))
}

func TestNewShiftDraftLayout(t *testing.T) {
	draft := newTestDraft()
	assert.Equal(t, FirstSection, draft.Section)
	assert.Equal(t, 720, draft.ShiftMinutes())
	require.Len(t, draft.Downtime, 2)
	require.NotNil(t, draft.DowntimeFor(Line2))
	assert.Nil(t, draft.DowntimeFor("LINE_3"))
	assert.Len(t, draft.Equipment.Mills, 4)
	assert.Equal(t, "20:00", draft.Equipment.Thickeners[0].Readings[0].Time)
	assert.Len(t, draft.Pumps, len(Pumps))
}

func TestDictationIgnoredAfterClear(t *testing.T) {
	draft := newTestDraft()
	rev := draft.Notes.Revision

	applied, err := draft.AppendDictation(NoteFieldGeneral, rev, "conveyor belt inspected")
	require.NoError(t, err)
	assert.True(t, applied)

	require.NoError(t, draft.SetNotes(NoteFieldGeneral, nil))
	applied, err = draft.AppendDictation(NoteFieldGeneral, rev, "late result")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, draft.Notes.Items)

	_, err = draft.AppendDictation("OTHER", 0, "x")
	assert.Error(t, err)
}

func TestDraftCloneIsDeep(t *testing.T) {
	draft := newTestDraft()
	require.NoError(t, draft.Feed.SetTonnage(Line1, 1, 100))
	require.NoError(t, draft.Attendance.Mark("p-1", AttendanceStatusPresent, ""))

	clone, err := draft.Clone()
	require.NoError(t, err)

	require.NoError(t, draft.Feed.SetTonnage(Line1, 1, 50))
	require.NoError(t, draft.Attendance.Mark("p-1", AttendanceStatusAbsent, ""))
	draft.Pumps["water_pump"] = true

	assert.Equal(t, 100.0, clone.Feed.Tonnage(Line1, 12))
	entry, _ := clone.Attendance.StatusOf("p-1")
	assert.Equal(t, AttendanceStatusPresent, entry.Status)
	assert.False(t, clone.Pumps["water_pump"])
	assert.Equal(t, draft.Info, clone.Info)
}

func TestStoppageMinutes(t *testing.T) {
	stop := Stoppage{
		FromDate: jalali.MustParse("1403/01/01"), FromTime: "23:30",
		ToDate: jalali.MustParse("1403/01/02"), ToTime: "01:00",
	}
	assert.True(t, stop.Ordered())
	assert.Equal(t, 90, stop.Minutes())

	record := DowntimeRecord{Worked: "10:30", Stopped: "1:30", Stoppages: []Stoppage{stop}}
	assert.Equal(t, 630, record.WorkedMinutes())
	assert.Equal(t, 90, record.StoppedMinutes())
	assert.Equal(t, 90, record.StoppageMinutes())
}

func TestParseSection(t *testing.T) {
	s, ok := ParseSection("3")
	assert.True(t, ok)
	assert.Equal(t, SectionMills, s)

	s, ok = ParseSection(" Thickeners ")
	assert.True(t, ok)
	assert.Equal(t, SectionThickeners, s)

	_, ok = ParseSection("10")
	assert.False(t, ok)
	_, ok = ParseSection("boilers")
	assert.False(t, ok)
}
