package format

import "testing"

func TestHumanizeBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0 B"},
		{in: 999, want: "999 B"},
		{in: 1024, want: "1.0 KB"},
		{in: 1536, want: "1.5 KB"},
		{in: 1048576, want: "1.0 MB"},
		{in: 5 * 1024 * 1024, want: "5.0 MB"},
		{in: 3 * 1024 * 1024 * 1024, want: "3.0 GB"},
		{in: 2 * 1024 * 1024 * 1024 * 1024, want: "2.0 TB"},
	}
	for _, tt := range tests {
		if got := HumanizeBytes(tt.in); got != tt.want {
			t.Errorf("HumanizeBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
