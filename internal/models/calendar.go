package models

import "github.com/noah-isme/plant-shift-api/pkg/jalali"

// CalendarConversion pairs a Jalali date with its Gregorian equivalent.
type CalendarConversion struct {
	Jalali    jalali.Date `json:"jalali"`
	Gregorian string      `json:"gregorian"`
	Weekday   string      `json:"weekday"`
	DayOfWeek int         `json:"day_of_week"`
	LeapYear  bool        `json:"leap_year"`
}
