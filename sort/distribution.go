package sort

const radixBase = 10

// bounds returns the smallest and largest element of a non-empty slice.
func bounds(a []int) (lo, hi int) {
	lo, hi = a[0], a[0]
	for _, v := range a[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return
}

/*
RadixSort is a least-significant-digit radix sort in base 10.

Each digit pass probes every element to read its digit, distributing
the elements over ten buckets, and then writes the buckets back in
order. Keys are the unsigned distances of the elements from the
minimum element, so the whole int range, negative values included, is
handled. During the final pass every written index is settled.
*/
func RadixSort(a []int, s Suspender, r Recorder) bool {
	n := len(a)
	if n < 2 {
		return true
	}
	lo, hi := bounds(a)
	key := func(v int) uint { return uint(v) - uint(lo) }
	passes := 0
	for span := key(hi); span > 0; span /= radixBase {
		passes++
	}
	var buckets [radixBase][]int
	var div uint = 1
	for pass := 0; pass < passes; pass, div = pass+1, div*radixBase {
		for d := range buckets {
			buckets[d] = buckets[d][:0]
		}
		for i := 0; i < n; i++ {
			if !probe(s, r, i) {
				return false
			}
			d := key(a[i]) / div % radixBase
			buckets[d] = append(buckets[d], a[i])
		}
		last := pass == passes-1
		k := 0
		for _, bucket := range buckets {
			for _, v := range bucket {
				if !assign(s, r, k, v) {
					return false
				}
				if last {
					r.Settle(k)
				}
				k++
			}
		}
	}
	return true
}

/*
CountingSort probes every element once to count the occurrences of
each value, and then writes the values back in increasing order,
settling each index as it is written.

Writing back walks every value from the minimum to the maximum element,
so the running time grows with the span of the keys, not just with the
number of elements.
*/
func CountingSort(a []int, s Suspender, r Recorder) bool {
	n := len(a)
	if n < 2 {
		return true
	}
	lo, hi := a[0], a[0]
	counts := make(map[int]int)
	for i := 0; i < n; i++ {
		if !probe(s, r, i) {
			return false
		}
		v := a[i]
		counts[v]++
		lo = min(lo, v)
		hi = max(hi, v)
	}
	k := 0
	for v := lo; ; v++ {
		for c := counts[v]; c > 0; c-- {
			if !assign(s, r, k, v) {
				return false
			}
			r.Settle(k)
			k++
		}
		if v == hi {
			return true
		}
	}
}
