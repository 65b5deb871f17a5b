package sort

/*
HeapSort builds a max-heap in place and then repeatedly swaps the root
to the end of the shrinking heap.

Each extracted position is settled immediately, and index 0 is settled
after the last extraction.
*/
func HeapSort(a []int, s Suspender, r Recorder) bool {
	n := len(a)
	for i := n/2 - 1; i >= 0; i-- {
		if !siftDown(a, s, r, n, i) {
			return false
		}
	}
	for i := n - 1; i > 0; i-- {
		if !swap(s, r, 0, i) {
			return false
		}
		r.Settle(i)
		if !siftDown(a, s, r, i, 0) {
			return false
		}
	}
	if n > 0 {
		r.Settle(0)
	}
	return true
}

// siftDown restores the heap property for the subtree rooted at i,
// considering only the first n elements.
func siftDown(a []int, s Suspender, r Recorder, n, i int) bool {
	for {
		largest := i
		left, right := 2*i+1, 2*i+2
		if left < n {
			if !compare(s, r, left, largest) {
				return false
			}
			if a[left] > a[largest] {
				largest = left
			}
		}
		if right < n {
			if !compare(s, r, right, largest) {
				return false
			}
			if a[right] > a[largest] {
				largest = right
			}
		}
		if largest == i {
			return true
		}
		if !swap(s, r, i, largest) {
			return false
		}
		i = largest
	}
}
