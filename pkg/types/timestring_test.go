package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid morning", value: "09:30", wantErr: false},
		{name: "midnight", value: "00:00", wantErr: false},
		{name: "end of day", value: "24:00", wantErr: false},
		{name: "last minute", value: "23:59", wantErr: false},
		{name: "hour out of range", value: "25:00", wantErr: true},
		{name: "minute out of range", value: "10:60", wantErr: true},
		{name: "past end of day", value: "24:01", wantErr: true},
		{name: "missing leading zero", value: "9:30", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "abcde", wantErr: true},
		{name: "with seconds", value: "10:30:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = TimeString("24:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1440, m)
}

func TestFromMinutes(t *testing.T) {
	ts, err := FromMinutes(630)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), ts)

	ts, err = FromMinutes(1440)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	_, err = FromMinutes(1441)
	assert.Error(t, err)

	_, err = FromMinutes(-1)
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), ts)

	// Ровно до конца дня - допустимо
	ts, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	// Через полночь - ошибка
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_Sub(t *testing.T) {
	d, err := TimeString("12:00").Sub(TimeString("10:30"))
	require.NoError(t, err)
	assert.Equal(t, 90, d)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("10:00").IsAfter(TimeString("09:59")))

	// Лексикографическое сравнение корректно для формата HH:MM
	assert.True(t, TimeString("09:59").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("23:59").IsBefore(TimeString("24:00")))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 7, 15, 14, 5, 0, 0, time.UTC))
	assert.Equal(t, TimeString("14:05"), ts)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("18:45")
	require.NoError(t, err)
	assert.Equal(t, TimeString("18:45"), ts)

	_, err = NewTimeStringFromString("18:75")
	assert.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("11:00")))
	assert.Equal(t, TimeString("11:00"), ts)
}
