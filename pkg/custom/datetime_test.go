package custom

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDatetime_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Datetime
		want string
	}{
		{
			name: "zero",
			in:   Datetime{},
			want: `null`,
		},
		{
			name: "utc",
			in:   NewDatetime(time.Date(2024, 12, 25, 14, 30, 0, 0, time.UTC)),
			want: `"2024-12-25T14:30:00Z"`,
		},
		{
			name: "offset converted to utc",
			in:   NewDatetime(time.Date(2024, 12, 25, 14, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60))),
			want: `"2024-12-25T12:30:00Z"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(got))
		})
	}
}

func TestDatetime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{
			name: "rfc3339",
			in:   `"2024-12-25T14:30:00Z"`,
			want: time.Date(2024, 12, 25, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "naive isoformat",
			in:   `"2024-12-25T14:30:00.123456"`,
			want: time.Date(2024, 12, 25, 14, 30, 0, 123456000, time.UTC),
		},
		{
			name: "null",
			in:   `null`,
		},
		{
			name:    "garbage",
			in:      `"yesterday"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Datetime
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, tt.want.Equal(d.Time()))
		})
	}
}
