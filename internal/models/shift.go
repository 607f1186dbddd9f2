package models

import (
	"fmt"

	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

// Crew identifies one of the three rotating labour groups.
type Crew string

const (
	CrewA Crew = "A"
	CrewB Crew = "B"
	CrewC Crew = "C"
)

// Crews lists crews in rotation order.
var Crews = []Crew{CrewA, CrewB, CrewC}

// Valid reports whether the crew is known.
func (c Crew) Valid() bool {
	return c == CrewA || c == CrewB || c == CrewC
}

// RotationLabel describes a crew's duty on a given date.
type RotationLabel string

const (
	RotationDay1   RotationLabel = "DAY_1"
	RotationDay2   RotationLabel = "DAY_2"
	RotationNight1 RotationLabel = "NIGHT_1"
	RotationNight2 RotationLabel = "NIGHT_2"
	RotationRest1  RotationLabel = "REST_1"
	RotationRest2  RotationLabel = "REST_2"
)

// RotationCycle is the fixed order every crew walks through, one step per day.
var RotationCycle = [6]RotationLabel{
	RotationDay1, RotationDay2, RotationNight1, RotationNight2, RotationRest1, RotationRest2,
}

// Valid reports whether the label is one of the six cycle states.
func (r RotationLabel) Valid() bool {
	for _, l := range RotationCycle {
		if l == r {
			return true
		}
	}
	return false
}

// OnDuty reports whether the label is one of the four working duties a shift can be recorded for.
func (r RotationLabel) OnDuty() bool {
	switch r {
	case RotationDay1, RotationDay2, RotationNight1, RotationNight2:
		return true
	default:
		return false
	}
}

// Night reports whether the duty is a night shift.
func (r RotationLabel) Night() bool {
	return r == RotationNight1 || r == RotationNight2
}

// ProductionLine identifies a processing line.
type ProductionLine string

const (
	Line1 ProductionLine = "LINE_1"
	Line2 ProductionLine = "LINE_2"
)

// ProductionLines lists every line recorded on a shift report.
var ProductionLines = []ProductionLine{Line1, Line2}

// Valid reports whether the line is known.
func (l ProductionLine) Valid() bool {
	return l == Line1 || l == Line2
}

// HoursPerShift is the number of fixed hourly slots on a shift.
const HoursPerShift = 12

const (
	dayShiftStartHour   = 7
	nightShiftStartHour = 19
)

// HourLabel returns the clock label of a 1-based shift hour, e.g. "07:00" for hour 1 of a day shift.
func HourLabel(rotation RotationLabel, hour int) string {
	start := dayShiftStartHour
	if rotation.Night() {
		start = nightShiftStartHour
	}
	return fmt.Sprintf("%02d:00", (start+hour-1)%24)
}

// ShiftInfo carries the shift metadata recorded in section one.
type ShiftInfo struct {
	Date         jalali.Date   `json:"date"`
	Crew         Crew          `json:"crew"`
	RotationType RotationLabel `json:"rotation_type"`
	Duration     string        `json:"duration"`
	SupervisorID string        `json:"supervisor_id"`
}

// Rotation is the duty of every crew on one date.
type Rotation struct {
	Date      jalali.Date            `json:"date"`
	Gregorian string                 `json:"gregorian"`
	Weekday   string                 `json:"weekday"`
	Crews     map[Crew]RotationLabel `json:"crews"`
}

// For returns the label assigned to crew.
func (r Rotation) For(crew Crew) RotationLabel {
	return r.Crews[crew]
}
