package main

import "testing"

func TestWrapActions(t *testing.T) {
	tests := []struct {
		name    string
		actions []string
		width   int
		want    string
	}{
		{"empty", nil, 10, ""},
		{"fits", []string{"East", "North"}, 20, "East North"},
		{"breaks", []string{"East", "North", "West"}, 10, "East North\nWest"},
		{"exact", []string{"East", "West"}, 9, "East West"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapActions(tt.actions, tt.width); got != tt.want {
				t.Errorf("wrapActions() = %q, want %q", got, tt.want)
			}
		})
	}
}
