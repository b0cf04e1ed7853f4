package cmd

import (
	"testing"
	"time"
)

func TestQueryFromArgs(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"api"}, "api"},
		{[]string{"jb", "api"}, "api"},
		{[]string{"my", "app"}, "my app"},
		{[]string{"jbx"}, "jbx"},
	}

	for _, tt := range tests {
		if got := queryFromArgs(tt.args); got != tt.want {
			t.Errorf("queryFromArgs(%q) = %q, expected %q", tt.args, got, tt.want)
		}
	}
}

func TestFormatOpened(t *testing.T) {
	if got := formatOpened(0); got != "-" {
		t.Errorf("Expected - for zero timestamp, got %q", got)
	}

	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.Local).UnixMilli()
	if got := formatOpened(ts); got != "2024-03-01 12:30" {
		t.Errorf("Expected 2024-03-01 12:30, got %q", got)
	}
}
