package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

func TestParseClock(t *testing.T) {
	assert.Equal(t, 0, ParseClock(""))
	assert.Equal(t, 720, ParseClock("12:00"))
	assert.Equal(t, 570, ParseClock("9:30"))
	assert.Equal(t, 5, ParseClock("00:05"))
	assert.Equal(t, 0, ParseClock("abc"))
	assert.Equal(t, 0, ParseClock("10:75"))

	_, err := ParseClockStrict("10")
	require.Error(t, err)
	_, err = ParseClockStrict("-1:00")
	require.Error(t, err)
}

func TestParseClockStrictRejectsSigns(t *testing.T) {
	for _, raw := range []string{"-0:30", "+2:00", "2:+05", "2:-05", ":30"} {
		_, err := ParseClockStrict(raw)
		assert.Error(t, err, raw)
		assert.Equal(t, 0, ParseClock(raw), raw)
	}
	minutes, err := ParseClockStrict("02:05")
	require.NoError(t, err)
	assert.Equal(t, 125, minutes)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", FormatClock(0))
	assert.Equal(t, "12:00", FormatClock(720))
	assert.Equal(t, "9:05", FormatClock(545))
	assert.Equal(t, "0:00", FormatClock(-20))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for m := 0; m <= 48*60; m++ {
		if got := ParseClock(FormatClock(m)); got != m {
			t.Fatalf("round trip %d -> %q -> %d", m, FormatClock(m), got)
		}
	}
}

func TestElapsedMinutesAcrossMidnight(t *testing.T) {
	d1 := jalali.MustParse("1403/01/01")
	d2 := jalali.MustParse("1403/01/02")

	assert.Equal(t, 720, ElapsedMinutes(d1, "19:00", d2, "07:00"))
	assert.Equal(t, 90, ElapsedMinutes(d1, "07:00", d1, "08:30"))
	assert.Equal(t, 0, ElapsedMinutes(d2, "07:00", d1, "19:00"))
	assert.Equal(t, 0, ElapsedMinutes(jalali.Date{}, "07:00", d1, "19:00"))

	endOfYear := jalali.MustParse("1402/12/29")
	assert.Equal(t, 60, ElapsedMinutes(endOfYear, "23:30", d1, "00:30"))
}

func TestCompareDateTime(t *testing.T) {
	d1 := jalali.MustParse("1403/01/01")
	d2 := jalali.MustParse("1403/01/02")

	assert.Equal(t, -1, CompareDateTime(d1, "23:59", d2, "00:00"))
	assert.Equal(t, 1, CompareDateTime(d2, "00:00", d1, "23:59"))
	assert.Equal(t, 0, CompareDateTime(d1, "07:00", d1, "7:00"))
	assert.Equal(t, -1, CompareDateTime(jalali.Date{}, "", d1, ""))
}
