package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := BuildCLI(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertJalali(t *testing.T) {
	out, err := run(t, "convert", "1403/01/01")
	require.NoError(t, err)
	assert.Contains(t, out, "gregorian: 2024-03-20")
	assert.Contains(t, out, "leap year: true")
}

func TestConvertGregorian(t *testing.T) {
	out, err := run(t, "convert", "--gregorian", "2024-03-20")
	require.NoError(t, err)
	assert.Contains(t, out, "jalali:    1403/01/01")
}

func TestConvertRejectsInvalidDate(t *testing.T) {
	_, err := run(t, "convert", "1403/12/31")
	assert.Error(t, err)
}

func TestRotationTable(t *testing.T) {
	out, err := run(t, "rotation", "--reference", "1402/12/25", "--days", "2", "1403/01/01")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "CREW A")
	assert.Equal(t, []string{"1403/01/01", "چهارشنبه", "REST_2", "DAY_2", "NIGHT_2"}, strings.Fields(lines[1]))
	assert.True(t, strings.HasPrefix(lines[2], "1403/01/02"))
}

func TestClockSum(t *testing.T) {
	out, err := run(t, "clock", "10:00", "2:00", "0:45")
	require.NoError(t, err)
	assert.Equal(t, "12:45 (765 minutes)\n", out)

	_, err = run(t, "clock", "3:75")
	assert.Error(t, err)
}
