// File: wavefront/example_test.go
package wavefront_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/wavefront/wavefront"
)

////////////////////////////////////////////////////////////////////////////////
// Example: Propagate
////////////////////////////////////////////////////////////////////////////////

// ExampleGrid_Propagate plans one step on a 3×4 grid.
// Scenario:
//
//   - Agent at (0,0), goal at (2,3), walls at (1,1) and (1,2).
//   - Both the Down and Right neighbors of the agent reach distance 5;
//     Down wins the tie because +x is scanned first.
//
// Complexity: O(W·H·MaxSweeps), Memory: O(1) extra.
func ExampleGrid_Propagate() {
	g, _ := wavefront.NewGrid(3, 4)
	g.Write(0, 0, wavefront.Agent)
	g.Write(2, 3, wavefront.Goal)
	g.Write(1, 1, wavefront.Wall)
	g.Write(1, 2, wavefront.Wall)

	fmt.Println("move:", g.Propagate(nil))
	w, h := g.Size()
	for x := 0; x < w; x++ {
		row := make([]string, 0, h)
		for y := 0; y < h; y++ {
			row = append(row, fmt.Sprintf("%3d", g.Read(x, y)))
		}
		fmt.Println(strings.Join(row, " "))
	}

	// Output:
	// move: DOWN
	// 254   5   4   3
	//   5 255 255   2
	//   4   3   2   1
}

////////////////////////////////////////////////////////////////////////////////
// Example: CastFromCell
////////////////////////////////////////////////////////////////////////////////

// ExampleGrid_CastFromCell turns two range readings taken from (2,0) into
// cells. The second lands at negative y and comes back as OffGrid.
func ExampleGrid_CastFromCell() {
	g := wavefront.NewDefaultGrid()

	ahead := g.CastFromCell(2, 0, 0, 50)
	behind := g.CastFromCell(2, 0, 270, 50)
	fmt.Println(ahead, ahead.Valid())
	fmt.Println(behind, behind.Valid())

	// Output:
	// (4,0) true
	// (2,-) false
}

////////////////////////////////////////////////////////////////////////////////
// Example: Observer
////////////////////////////////////////////////////////////////////////////////

// ExampleObserverFunc counts frames while the wave crosses a 1×3 corridor:
// one frame before propagation and one on the sweep that reaches the agent.
func ExampleObserverFunc() {
	g, _ := wavefront.NewGrid(1, 3)
	g.Write(0, 0, wavefront.Goal)
	g.Write(0, 2, wavefront.Agent)

	frames := 0
	move := g.Propagate(wavefront.ObserverFunc(func(wavefront.View) { frames++ }))
	fmt.Println(move, frames)

	// Output:
	// LEFT 2
}
