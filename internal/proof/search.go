package proof

// combinations calls yield with every k-element subset of 0..n-1 in
// lexicographic order. The slice passed to yield is reused between calls.
// Enumeration stops early when yield returns false.
func combinations(n, k int, yield func([]int) bool) bool {
	if k < 0 || k > n {
		return true
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !yield(idx) {
			return false
		}
		// rightmost position that can still advance
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return true
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// permutations calls yield with every ordering of items, in lexicographic
// order of positions: the identity first, the reversal last. The slice
// passed to yield is reused between calls.
func permutations(items []int, yield func([]int) bool) bool {
	k := len(items)
	pos := make([]int, k)
	for i := range pos {
		pos[i] = i
	}
	perm := make([]int, k)
	for {
		for i, p := range pos {
			perm[i] = items[p]
		}
		if !yield(perm) {
			return false
		}
		if !nextPermutation(pos) {
			return true
		}
	}
}

func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
