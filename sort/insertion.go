package sort

/*
InsertionSort shifts each element left over all larger predecessors
and then writes it into the gap.

Every shift is reported as a comparison between the shifted element
and its successor followed by an assignment. After each outer
iteration, the insertion position is settled.
*/
func InsertionSort(a []int, s Suspender, r Recorder) bool {
	return insertionSort(a, s, r, 0, len(a), true)
}

// insertionSort sorts a[lo:hi], optionally settling each insertion
// position.
func insertionSort(a []int, s Suspender, r Recorder, lo, hi int, settle bool) bool {
	for i := lo + 1; i < hi; i++ {
		key := a[i]
		j := i - 1
		for j >= lo && a[j] > key {
			if !compare(s, r, j, j+1) {
				return false
			}
			if !assign(s, r, j+1, a[j]) {
				return false
			}
			j--
		}
		if !assign(s, r, j+1, key) {
			return false
		}
		if settle {
			r.Settle(j + 1)
		}
	}
	return true
}

/*
ShellSort performs gapped insertion sorts with the gap sequence n/2,
n/4, ..., 1.

The whole range is settled only once the final pass with gap 1 has
completed.
*/
func ShellSort(a []int, s Suspender, r Recorder) bool {
	n := len(a)
	for gap := n / 2; gap > 0; gap /= 2 {
		for i := gap; i < n; i++ {
			tmp := a[i]
			j := i
			for j >= gap && a[j-gap] > tmp {
				if !compare(s, r, j, j-gap) {
					return false
				}
				if !assign(s, r, j, a[j-gap]) {
					return false
				}
				j -= gap
			}
			if !assign(s, r, j, tmp) {
				return false
			}
		}
	}
	for i := 0; i < n; i++ {
		r.Settle(i)
	}
	return true
}
