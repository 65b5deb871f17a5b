package sort

// minMerge is the run length below which TimSort stops halving the
// input size when computing its minimum run length.
const minMerge = 16

/*
MergeSort uses a top-down merge sort. Merging copies both runs aside
and writes the merged result back element by element, so every write
is reported as an assignment.

MergeSort is stable: on ties, the element of the left run is taken
first. No index is settled while the sort is in progress.
*/
func MergeSort(a []int, s Suspender, r Recorder) bool {
	return mergeSort(a, s, r, 0, len(a)-1)
}

func mergeSort(a []int, s Suspender, r Recorder, left, right int) bool {
	if left >= right {
		return true
	}
	mid := left + (right-left)/2
	return mergeSort(a, s, r, left, mid) &&
		mergeSort(a, s, r, mid+1, right) &&
		merge(a, s, r, left, mid, right)
}

// merge merges the sorted runs a[left:mid+1] and a[mid+1:right+1].
// Comparisons are reported at the positions the two candidates had
// before the merge started.
func merge(a []int, s Suspender, r Recorder, left, mid, right int) bool {
	lo := append([]int(nil), a[left:mid+1]...)
	hi := append([]int(nil), a[mid+1:right+1]...)
	i, j, k := 0, 0, left
	for i < len(lo) && j < len(hi) {
		if !compare(s, r, left+i, mid+1+j) {
			return false
		}
		var v int
		if lo[i] <= hi[j] {
			v = lo[i]
			i++
		} else {
			v = hi[j]
			j++
		}
		if !assign(s, r, k, v) {
			return false
		}
		k++
	}
	for ; i < len(lo); i++ {
		if !assign(s, r, k, lo[i]) {
			return false
		}
		k++
	}
	for ; j < len(hi); j++ {
		if !assign(s, r, k, hi[j]) {
			return false
		}
		k++
	}
	return true
}

// minRun computes the length of the runs TimSort sorts by insertion
// before merging: a value between minMerge/2 and minMerge such that
// n/minRun is close to, but not more than, a power of two.
func minRun(n int) int {
	var rest int
	for n >= minMerge {
		rest |= n & 1
		n >>= 1
	}
	return n + rest
}

/*
TimSort splits the input into runs of minRun elements, sorts each run
with insertion sort, and then merges neighbouring runs bottom-up with
the same stable merge that MergeSort uses, doubling the width of the
merged runs on every round.

No index is settled while the sort is in progress.
*/
func TimSort(a []int, s Suspender, r Recorder) bool {
	n := len(a)
	if n < 2 {
		return true
	}
	run := minRun(n)
	for lo := 0; lo < n; lo += run {
		if !insertionSort(a, s, r, lo, min(lo+run, n), false) {
			return false
		}
	}
	for width := run; width < n; width *= 2 {
		for left := 0; left < n-width; left += 2 * width {
			mid := left + width - 1
			right := min(left+2*width-1, n-1)
			if !merge(a, s, r, left, mid, right) {
				return false
			}
		}
	}
	return true
}
