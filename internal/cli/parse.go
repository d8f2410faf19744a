package cli

import (
	"strconv"
	"strings"

	errs "github.com/shannonchou/SquareFlowLayout/pkg/errors"
	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
)

// Output formats accepted by the render command.
const (
	formatSVG  = "svg"
	formatPNG  = "png"
	formatJSON = "json"
)

// parseRect parses a viewport given as "x,y,w,h".
func parseRect(s string) (layout.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return layout.Rect{}, errs.New(errs.ErrCodeInvalidRect, "rect %q: want x,y,w,h", s)
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return layout.Rect{}, errs.Wrap(errs.ErrCodeInvalidRect, err, "rect %q", s)
		}
		vals[i] = v
	}
	if err := errs.ValidateRect(vals[0], vals[1], vals[2], vals[3]); err != nil {
		return layout.Rect{}, err
	}
	return layout.Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// validateFormats rejects unknown output formats.
func validateFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case formatSVG, formatPNG, formatJSON:
		default:
			return errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q (want svg, png or json)", f)
		}
	}
	return nil
}
