package layout_test

import (
	"fmt"

	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
)

func ExampleBuild() {
	res := layout.Build(layout.Config{Count: 3, Width: 100, Spacing: 1},
		func(i int) bool { return i == 0 })

	for _, g := range res.Items {
		fmt.Printf("%d: x=%.2f y=%.2f side=%.2f\n", g.Position, g.Frame.X, g.Frame.Y, g.Frame.W)
	}
	fmt.Printf("height=%.2f\n", res.Height)
	// Output:
	// 0: x=0.00 y=0.00 side=66.33
	// 1: x=67.33 y=0.00 side=32.67
	// 2: x=67.33 y=33.67 side=32.67
	// height=66.33
}

func ExampleVisible() {
	res := layout.Build(layout.Config{Count: 9, Width: 100, Spacing: 1}, nil)

	for _, g := range layout.Visible(res.Items, layout.Rect{X: 0, Y: 40, W: 100, H: 10}) {
		fmt.Println(g.Position)
	}
	// Output:
	// 3
	// 4
	// 5
}

func ExamplePatternOf() {
	fmt.Println(layout.PatternOf([]bool{false, true, false}))
	fmt.Println(layout.PatternOf([]bool{false, false, false}))
	// Output:
	// middle
	// none
}
