package trl

import (
	"errors"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input      string
		want       int
		wantErr    bool
		outOfRange bool
	}{
		{input: "4", want: 4},
		{input: "1", want: 1},
		{input: "9", want: 9},
		{input: " 7 ", want: 7},
		{input: "TRL 4", want: 4},
		{input: "trl 6", want: 6},
		{input: "TRL9", want: 9},
		{input: "0", wantErr: true, outOfRange: true},
		{input: "10", wantErr: true, outOfRange: true},
		{input: "-3", wantErr: true, outOfRange: true},
		{input: "", wantErr: true},
		{input: "high", wantErr: true},
		{input: "TRL", wantErr: true},
		{input: "4-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLevel(%q): expected error, got %d", tt.input, got)
				}
				if tt.outOfRange && !errors.Is(err, ErrOutOfRange) {
					t.Errorf("ParseLevel(%q): expected ErrOutOfRange, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q): unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
