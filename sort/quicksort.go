package sort

/*
QuickSort uses a recursive quicksort with the Lomuto partition scheme,
always choosing the last element of a range as the pivot. Elements
equal to the pivot are never swapped with it.

No index is settled while the sort is in progress.
*/
func QuickSort(a []int, s Suspender, r Recorder) bool {
	return quickSort(a, s, r, 0, len(a)-1)
}

func quickSort(a []int, s Suspender, r Recorder, low, high int) bool {
	if low >= high {
		return true
	}
	p, ok := partition(a, s, r, low, high)
	if !ok {
		return false
	}
	return quickSort(a, s, r, low, p-1) && quickSort(a, s, r, p+1, high)
}

func partition(a []int, s Suspender, r Recorder, low, high int) (int, bool) {
	pivot := a[high]
	i := low - 1
	for j := low; j < high; j++ {
		if !compare(s, r, j, high) {
			return low, false
		}
		if a[j] < pivot {
			i++
			if i != j {
				if !swap(s, r, i, j) {
					return low, false
				}
			}
		}
	}
	if i+1 != high && a[i+1] != pivot {
		if !swap(s, r, i+1, high) {
			return low, false
		}
	}
	return i + 1, true
}
