package sort

/*
BubbleSort repeatedly compares adjacent elements and swaps those that
are out of order.

After each pass, the largest element that was not yet in place has
bubbled to the end of the unsorted range and is settled. Index 0 is
settled last.
*/
func BubbleSort(a []int, s Suspender, r Recorder) bool {
	n := len(a)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if !compare(s, r, j, j+1) {
				return false
			}
			if a[j] > a[j+1] {
				if !swap(s, r, j, j+1) {
					return false
				}
			}
		}
		r.Settle(n - i - 1)
	}
	if n > 0 {
		r.Settle(0)
	}
	return true
}

/*
SelectionSort compares every remaining element against the current
minimum candidate and swaps the minimum into place at the end of each
outer iteration.

Elements are only swapped when a strictly smaller element was found,
so an already sorted input produces no swaps at all.
*/
func SelectionSort(a []int, s Suspender, r Recorder) bool {
	n := len(a)
	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			if !compare(s, r, j, minIdx) {
				return false
			}
			if a[j] < a[minIdx] {
				minIdx = j
			}
		}
		if minIdx != i {
			if !swap(s, r, i, minIdx) {
				return false
			}
		}
		r.Settle(i)
	}
	if n > 0 {
		r.Settle(n - 1)
	}
	return true
}
