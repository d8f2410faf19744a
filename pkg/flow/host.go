package flow

// Static is a Host with fixed dimensions, for hosts that have no live
// container behind them (command-line rendering, tests).
type Static struct {
	Count  int
	Width  float64
	Insets Insets
}

func (s Static) ItemCount() int          { return s.Count }
func (s Static) ContainerWidth() float64 { return s.Width }
func (s Static) ContentInsets() Insets   { return s.Insets }

// ExpandedSet adapts a set of positions to an expansion callback.
func ExpandedSet(positions map[int]bool) func(int) bool {
	return func(i int) bool { return positions[i] }
}
