package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeStringValidate(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"00:00", false},
		{"09:30", false},
		{"23:59", false},
		{"24:00", true},
		{"9:30", true},
		{"09:60", true},
		{"09-30", true},
		{"", true},
		{"09:30:00", true},
		{"ab:cd", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeStringMinutes(t *testing.T) {
	m, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), ts)

	// Переход через полночь не нормализуется: результат сравним в рамках дня
	ts, err = TimeString("23:30").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:30"), ts)

	_, err = TimeString("10:00").AddMinutes(-30)
	assert.Error(t, err)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:00").IsAfter("10:30"))
	assert.True(t, TimeString("10:00").Equal("10:00"))
	assert.False(t, TimeString("10:00").Equal("10:01"))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 15, 14, 5, 0, 0, time.UTC))
	assert.Equal(t, TimeString("14:05"), ts)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("08:15")
	require.NoError(t, err)
	assert.Equal(t, TimeString("08:15"), ts)

	_, err = NewTimeStringFromString("8:15")
	assert.Error(t, err)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("11:30")))
	assert.Equal(t, TimeString("11:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 15, 9, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:45"), ts)
}
