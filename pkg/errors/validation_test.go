package errors

import (
	"math"
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		width   float64
		spacing float64
		wantErr bool
	}{
		{"typical", 30, 375, 1, false},
		{"no items", 0, 100, 1, false},
		{"zero spacing", 3, 90, 0, false},

		{"negative count", -1, 100, 1, true},
		{"negative spacing", 3, 100, -1, true},
		{"NaN spacing", 3, 100, math.NaN(), true},
		{"zero width", 3, 0, 1, true},
		{"infinite width", 3, math.Inf(1), 1, true},
		{"width consumed by gaps", 3, 2, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.count, tt.width, tt.spacing)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateInsets(t *testing.T) {
	tests := []struct {
		name                     string
		top, left, bottom, right float64
		wantErr                  bool
	}{
		{"none", 0, 0, 0, 0, false},
		{"symmetric", 8, 16, 8, 16, false},
		{"negative", 0, -1, 0, 0, true},
		{"wider than container", 0, 60, 0, 40, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInsets(100, tt.top, tt.left, tt.bottom, tt.right)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInsets() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRect(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		wantErr    bool
	}{
		{"typical", 0, 100, 375, 667, false},
		{"negative origin", -10, -10, 20, 20, false},
		{"zero size", 5, 5, 0, 0, false},
		{"negative width", 0, 0, -1, 10, true},
		{"NaN", math.NaN(), 0, 1, 1, true},
		{"infinite height", 0, 0, 1, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRect(tt.x, tt.y, tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRect) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidRect)
			}
		})
	}
}

func TestValidatePosition(t *testing.T) {
	tests := []struct {
		position, count int
		wantErr         bool
	}{
		{0, 1, false},
		{9, 10, false},
		{10, 10, true},
		{-1, 10, true},
		{0, 0, true},
	}

	for _, tt := range tests {
		err := ValidatePosition(tt.position, tt.count)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePosition(%d, %d) error = %v, wantErr %v", tt.position, tt.count, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeOutOfRange) {
			t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeOutOfRange)
		}
	}
}
