package sort_test

import (
	"fmt"

	"github.com/exascience/sortbattle/control"
	"github.com/exascience/sortbattle/sort"
	"github.com/exascience/sortbattle/trace"
)

func Example() {
	values := []int{5, 3, 4, 1, 2}
	e := trace.NewEmitter(values)

	fmt.Println(values)
	if sort.BubbleSort(values, control.Free{}, e) {
		e.Finalize()
	}
	fmt.Println(values)

	s := e.Snapshot()
	fmt.Println("comparisons:", s.Comparisons, "swaps:", s.Swaps, "complete:", s.Complete)

	// Output:
	// [5 3 4 1 2]
	// [1 2 3 4 5]
	// comparisons: 10 swaps: 8 complete: true
}

func ExampleParse() {
	id, err := sort.Parse("quick")
	if err != nil {
		panic(err)
	}
	fmt.Println(id, id.Slug())
	// Output: Quick Sort quick
}
