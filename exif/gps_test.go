package exif

import (
	"errors"
	"math"
	"testing"
)

func TestParseRational(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr error
	}{
		{name: "fraction", input: "46/1", want: 46},
		{name: "non-integer fraction", input: "3/4", want: 0.75},
		{name: "bare integer", input: "12", want: 12},
		{name: "empty", input: "", want: 0},
		{name: "whitespace", input: " 10 / 4 ", want: 2.5},
		{name: "zero denominator", input: "5/0", wantErr: ErrZeroDenominator},
		{name: "garbage numerator", input: "x/2", wantErr: ErrInvalidRational},
		{name: "garbage denominator", input: "2/x", wantErr: ErrInvalidRational},
		{name: "infinity", input: "Inf/1", wantErr: ErrInvalidRational},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRational(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseRational(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRational(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRational(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToDecimal(t *testing.T) {
	const want = 40.446111
	triple := []string{"40/1", "26/1", "46/1"}

	tests := []struct {
		name       string
		components []string
		ref        string
		want       float64
	}{
		{name: "north", components: triple, ref: "N", want: want},
		{name: "south", components: triple, ref: "S", want: -want},
		{name: "east", components: triple, ref: "E", want: want},
		{name: "west", components: triple, ref: "W", want: -want},
		{name: "lowercase ref", components: triple, ref: "s", want: -want},
		{name: "no ref", components: triple, ref: "", want: want},
		{name: "degrees only", components: []string{"12/1"}, ref: "N", want: 12},
		{name: "degrees and minutes", components: []string{"12/1", "30/1"}, ref: "N", want: 12.5},
		{name: "empty", components: nil, ref: "N", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDecimal(tt.components, tt.ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("ToDecimal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToDecimal_ZeroDenominator(t *testing.T) {
	_, err := ToDecimal([]string{"40/1", "26/0", "46/1"}, "N")
	if !errors.Is(err, ErrZeroDenominator) {
		t.Fatalf("expected ErrZeroDenominator, got %v", err)
	}
}

func TestToDecimal_IgnoresExtraComponents(t *testing.T) {
	got, err := ToDecimal([]string{"1/1", "0/1", "0/1", "99/0"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("ToDecimal() = %v, want 1", got)
	}
}
