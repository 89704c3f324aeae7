package sortedvec

// linearSpan is the window size below which BinarySearch stops bisecting and
// scans the remaining candidates one by one.
const linearSpan = 5

// BinarySearch searches for target in items, which must be sorted in
// ascending order with respect to cmp.
//
// cmp(item, target) must return a negative number if item orders before
// target, zero if it matches and a positive number if it orders after target.
//
// If target is found, BinarySearch returns its index and true. Otherwise it
// returns the insertion point, i.e. the position where target would have to be
// inserted to keep items sorted, and false. The result is identical to
// slices.BinarySearchFunc for slices without duplicate keys.
//
// Targets outside of the range of the first/last item are resolved without
// entering the bisection loop, making appends and prepends cheap.
func BinarySearch[E, T any](items []E, target T, cmp func(E, T) int) (int, bool) {
	n := len(items)
	if n == 0 {
		return 0, false
	}
	c := cmp(items[0], target)
	if c >= 0 {
		return 0, c == 0
	}
	if n == 1 {
		return 1, false
	}
	c = cmp(items[n-1], target)
	if c <= 0 {
		if c == 0 {
			return n - 1, true
		}
		return n, false
	}
	// invariant: items[left-1] < target < items[right]
	left, right := 1, n-1
	for right-left > linearSpan {
		mid := int(uint(left+right) >> 1)
		c = cmp(items[mid], target)
		switch {
		case c == 0:
			return mid, true
		case c < 0:
			left = mid + 1
		default:
			right = mid
		}
	}
	for i := left; i < right; i++ {
		c = cmp(items[i], target)
		if c == 0 {
			return i, true
		}
		if c > 0 {
			return i, false
		}
	}
	return right, false
}
