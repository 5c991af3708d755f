package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTimezone(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantOffset int
		wantErr    bool
	}{
		{name: "positive", in: "UTC+3", wantOffset: 3 * 3600},
		{name: "negative", in: "UTC-7", wantOffset: -7 * 3600},
		{name: "zero", in: "UTC+0", wantOffset: 0},
		{name: "upper bound", in: "UTC+14", wantOffset: 14 * 3600},
		{name: "lower bound", in: "UTC-12", wantOffset: -12 * 3600},
		{name: "above range", in: "UTC+15", wantErr: true},
		{name: "below range", in: "UTC-13", wantErr: true},
		{name: "no sign", in: "UTC3", wantErr: true},
		{name: "lower case", in: "utc+3", wantErr: true},
		{name: "minutes", in: "UTC+5:30", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseTimezone(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimezone)
				return
			}
			require.NoError(t, err)

			name, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
			require.Equal(t, tt.in, name)
			require.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestParseTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, loc)

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "full", in: "2024-12-25 14:30", want: time.Date(2024, 12, 25, 14, 30, 0, 0, loc)},
		{name: "no year", in: "12-25 14:30", want: time.Date(2024, 12, 25, 14, 30, 0, 0, loc)},
		{name: "time later today", in: "18:45", want: time.Date(2024, 6, 10, 18, 45, 0, 0, loc)},
		{name: "time passed rolls to tomorrow", in: "09:00", want: time.Date(2024, 6, 11, 9, 0, 0, 0, loc)},
		{name: "time equal to now rolls to tomorrow", in: "15:00", want: time.Date(2024, 6, 11, 15, 0, 0, 0, loc)},
		{name: "surrounding space", in: " 18:45 ", want: time.Date(2024, 6, 10, 18, 45, 0, 0, loc)},
		{name: "garbage", in: "tomorrow", wantErr: true},
		{name: "bad month", in: "2024-13-01 10:00", wantErr: true},
		{name: "bad hour", in: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.in, loc, now)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParseTime_UsesNowInLocation(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*3600)

	// 12:00 UTC on the 10th is 02:00 on the 11th in UTC+14.
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	got, err := ParseTime("03:00", loc, now)
	require.NoError(t, err)
	require.True(t, time.Date(2024, 6, 11, 3, 0, 0, 0, loc).Equal(got))
}

func TestValidateStart(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		wantErr error
	}{
		{name: "past", start: now.Add(-time.Minute), wantErr: ErrPastTime},
		{name: "too soon", start: now.Add(29 * time.Minute), wantErr: ErrLeadTime},
		{name: "exactly lead time", start: now.Add(MinLeadTime)},
		{name: "later", start: now.Add(24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStart(tt.start, now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseChannelMention(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOk bool
	}{
		{name: "mention", in: "<#123456789>", want: "123456789", wantOk: true},
		{name: "text", in: "Main hall", wantOk: false},
		{name: "user mention", in: "<@123>", wantOk: false},
		{name: "non numeric", in: "<#abc>", wantOk: false},
		{name: "empty", in: "<#>", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseChannelMention(tt.in)
			require.Equal(t, tt.wantOk, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
