package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

func TestCalendarServiceConvert(t *testing.T) {
	svc := NewCalendarService(nil)

	conv, err := svc.Convert(ConvertRequest{Jalali: "1403/01/01"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-20", conv.Gregorian)
	assert.Equal(t, "چهارشنبه", conv.Weekday)
	assert.Equal(t, 3, conv.DayOfWeek)
	assert.True(t, conv.LeapYear)

	conv, err = svc.Convert(ConvertRequest{Gregorian: "2024-03-19"})
	require.NoError(t, err)
	assert.Equal(t, jalali.MustParse("1402/12/29"), conv.Jalali)
	assert.False(t, conv.LeapYear)
}

func TestCalendarServiceConvertErrors(t *testing.T) {
	svc := NewCalendarService(nil)

	cases := []struct {
		name string
		req  ConvertRequest
		code string
	}{
		{name: "missing", req: ConvertRequest{}, code: appErrors.ErrValidation.Code},
		{name: "both", req: ConvertRequest{Jalali: "1403/01/01", Gregorian: "2024-03-20"}, code: appErrors.ErrValidation.Code},
		{name: "no esfand 30 in 1402", req: ConvertRequest{Jalali: "1402/12/30"}, code: appErrors.ErrInvalidDate.Code},
		{name: "bad gregorian", req: ConvertRequest{Gregorian: "2024-02-30"}, code: appErrors.ErrInvalidDate.Code},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Convert(tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, appErrors.FromError(err).Code)
		})
	}
}
