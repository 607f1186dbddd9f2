package jalali

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinYear and MaxYear bound the Jalali years the converter supports. Dates late in a
	// year resolve through the following year's cycle data, so MaxYear stops two short of
	// the last cycle break.
	MinYear = 1
	MaxYear = 3176
)

// breaks lists the Jalali years starting each 33-year leap-cycle segment.
var breaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

var weekdayNames = [7]string{
	time.Sunday:    "یکشنبه",
	time.Monday:    "دوشنبه",
	time.Tuesday:   "سه‌شنبه",
	time.Wednesday: "چهارشنبه",
	time.Thursday:  "پنجشنبه",
	time.Friday:    "جمعه",
	time.Saturday:  "شنبه",
}

// Date is a Jalali (solar Hijri) civil date. The zero value is the invalid marker.
type Date struct {
	Year  int
	Month int
	Day   int
}

// GregorianDate is a proleptic Gregorian calendar date.
type GregorianDate struct {
	Year  int
	Month int
	Day   int
}

// New returns the Jalali date when it exists in the calendar.
func New(year, month, day int) (Date, bool) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return Date{}, false
	}
	return d, true
}

// Parse reads dates written as Y/M/D (dashes are accepted too).
func Parse(raw string) (Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, false
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return Date{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, false
		}
		nums[i] = n
	}
	return New(nums[0], nums[1], nums[2])
}

// MustParse is Parse for constants; it panics on invalid input.
func MustParse(raw string) Date {
	d, ok := Parse(raw)
	if !ok {
		panic(fmt.Sprintf("jalali: invalid date %q", raw))
	}
	return d
}

// IsZero reports whether d is the unset value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Valid reports whether the day exists in that Jalali month and year.
func (d Date) Valid() bool {
	if d.Year < MinYear || d.Year > MaxYear || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= DaysInMonth(d.Year, d.Month)
}

// String formats the date as YYYY/MM/DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// MarshalJSON encodes the date as its string form.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY/MM/DD" or an empty string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("jalali date must be a string: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		*d = Date{}
		return nil
	}
	parsed, ok := Parse(raw)
	if !ok {
		return fmt.Errorf("invalid jalali date %q", raw)
	}
	*d = parsed
	return nil
}

// Value stores the date as text.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan reads a date stored as text.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("unsupported type %T for jalali.Date", value)
	}
}

func (d *Date) scanString(raw string) error {
	if raw == "" {
		*d = Date{}
		return nil
	}
	parsed, ok := Parse(raw)
	if !ok {
		return fmt.Errorf("invalid jalali date %q", raw)
	}
	*d = parsed
	return nil
}

// Valid reports whether the Gregorian date exists.
func (g GregorianDate) Valid() bool {
	if g.Month < 1 || g.Month > 12 || g.Day < 1 {
		return false
	}
	return g.Day <= gregorianDaysInMonth(g.Year, g.Month)
}

// String formats the Gregorian date as YYYY-MM-DD.
func (g GregorianDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.Year, g.Month, g.Day)
}

// Time returns midnight of the date in loc.
func (g GregorianDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(g.Year, time.Month(g.Month), g.Day, 0, 0, 0, 0, loc)
}

// ParseGregorian reads YYYY-MM-DD.
func ParseGregorian(raw string) (GregorianDate, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return GregorianDate{}, false
	}
	return GregorianDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, true
}

// IsLeap reports whether the Jalali year has 366 days.
func IsLeap(year int) bool {
	if year < MinYear || year > MaxYear {
		return false
	}
	c, ok := calendar(year)
	return ok && c.leap == 0
}

// DaysInMonth returns the length of a Jalali month, or 0 for an invalid month.
func DaysInMonth(year, month int) int {
	switch {
	case month >= 1 && month <= 6:
		return 31
	case month >= 7 && month <= 11:
		return 30
	case month == 12:
		if IsLeap(year) {
			return 30
		}
		return 29
	default:
		return 0
	}
}

// ToGregorian converts a Jalali date. ok is false for dates that do not exist.
func ToGregorian(d Date) (GregorianDate, bool) {
	jdn, ok := d.JDN()
	if !ok {
		return GregorianDate{}, false
	}
	return fromJDN(jdn), true
}

// ToJalali converts a Gregorian date. ok is false for invalid or out-of-range input.
func ToJalali(g GregorianDate) (Date, bool) {
	if !g.Valid() {
		return Date{}, false
	}
	return jalaliFromJDN(toJDN(g.Year, g.Month, g.Day))
}

// FromTime returns the Jalali date for t in its own location.
func FromTime(t time.Time) Date {
	d, _ := ToJalali(GregorianDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()})
	return d
}

// Weekday returns the Gregorian weekday of d.
func (d Date) Weekday() (time.Weekday, bool) {
	jdn, ok := d.JDN()
	if !ok {
		return time.Sunday, false
	}
	return time.Weekday((jdn + 1) % 7), true
}

// WeekdayName returns the Persian day name for d, or "" when d is invalid.
func WeekdayName(d Date) string {
	wd, ok := d.Weekday()
	if !ok {
		return ""
	}
	return weekdayNames[wd]
}

// JDN returns the Julian Day Number of d.
func (d Date) JDN() (int, bool) {
	if !d.Valid() {
		return 0, false
	}
	c, _ := calendar(d.Year)
	jdn := toJDN(c.gregorianYear, 3, c.march) + (d.Month-1)*31 - (d.Month/7)*(d.Month-7) + d.Day - 1
	return jdn, true
}

// AddDays moves d by n days.
func AddDays(d Date, n int) (Date, bool) {
	jdn, ok := d.JDN()
	if !ok {
		return Date{}, false
	}
	return jalaliFromJDN(jdn + n)
}

// DaysBetween returns a - b in days.
func DaysBetween(a, b Date) (int, bool) {
	ja, ok := a.JDN()
	if !ok {
		return 0, false
	}
	jb, ok := b.JDN()
	if !ok {
		return 0, false
	}
	return ja - jb, true
}

type yearInfo struct {
	leap          int
	gregorianYear int
	march         int
}

// calendar derives the leap position of year within its 33-year cycle and the
// March day of Gregorian year+621 on which Farvardin 1 falls.
func calendar(year int) (yearInfo, bool) {
	if year < MinYear || year >= breaks[len(breaks)-1] {
		return yearInfo{}, false
	}
	gy := year + 621
	leapJ := -14
	jp := breaks[0]
	jump := 0
	for i := 1; i < len(breaks); i++ {
		jm := breaks[i]
		jump = jm - jp
		if year < jm {
			break
		}
		leapJ += jump/33*8 + (jump%33)/4
		jp = jm
	}
	n := year - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}
	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march := 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap := ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}
	return yearInfo{leap: leap, gregorianYear: gy, march: march}, true
}

func jalaliFromJDN(jdn int) (Date, bool) {
	gy := fromJDN(jdn).Year
	jy := gy - 621
	c, ok := calendar(jy)
	if !ok {
		return Date{}, false
	}
	k := jdn - toJDN(gy, 3, c.march)
	if k >= 0 {
		if k <= 185 {
			return New(jy, 1+k/31, k%31+1)
		}
		k -= 186
	} else {
		jy--
		k += 179
		if c.leap == 1 {
			k++
		}
	}
	return New(jy, 7+k/30, k%30+1)
}

func toJDN(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

func fromJDN(jdn int) GregorianDate {
	j := 4*jdn + 139361631
	j = j + (4*jdn+183187720)/146097*3/4*4 - 3908
	i := (j%1461)/4*5 + 308
	gd := (i%153)/5 + 1
	gm := (i/153)%12 + 1
	gy := j/1461 - 100100 + (8-gm)/6
	return GregorianDate{Year: gy, Month: gm, Day: gd}
}

func gregorianDaysInMonth(year, month int) int {
	switch month {
	case 2:
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
