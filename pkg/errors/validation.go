package errors

import "math"

// ValidateDimensions checks the inputs of a layout pass: a non-negative item
// count, finite non-negative spacing, and a width wide enough to hold three
// columns and the two gaps between them.
func ValidateDimensions(count int, width, spacing float64) error {
	if count < 0 {
		return New(ErrCodeInvalidInput, "item count cannot be negative, got %d", count)
	}
	if !finite(spacing) || spacing < 0 {
		return New(ErrCodeInvalidInput, "spacing must be a non-negative number, got %v", spacing)
	}
	if !finite(width) || width <= 0 {
		return New(ErrCodeInvalidInput, "width must be a positive number, got %v", width)
	}
	if width <= 2*spacing {
		return New(ErrCodeInvalidInput, "width %v leaves no room for cells with spacing %v", width, spacing)
	}
	return nil
}

// ValidateInsets rejects negative or non-finite insets and insets that leave
// no horizontal room inside width.
func ValidateInsets(width, top, left, bottom, right float64) error {
	for _, v := range []float64{top, left, bottom, right} {
		if !finite(v) || v < 0 {
			return New(ErrCodeInvalidInput, "insets must be non-negative numbers, got %v", v)
		}
	}
	if left+right >= width {
		return New(ErrCodeInvalidInput, "horizontal insets %v+%v exceed width %v", left, right, width)
	}
	return nil
}

// ValidateRect checks a query rectangle. Zero-sized rectangles are allowed
// and simply match nothing; negative or non-finite ones are rejected.
func ValidateRect(x, y, w, h float64) error {
	for _, v := range []float64{x, y, w, h} {
		if !finite(v) {
			return New(ErrCodeInvalidRect, "rectangle components must be finite, got %v", v)
		}
	}
	if w < 0 || h < 0 {
		return New(ErrCodeInvalidRect, "rectangle size cannot be negative, got %vx%v", w, h)
	}
	return nil
}

// ValidatePosition checks that position addresses one of count items.
func ValidatePosition(position, count int) error {
	if position < 0 || position >= count {
		return New(ErrCodeOutOfRange, "position %d outside [0, %d)", position, count)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
