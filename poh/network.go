//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package poh

// comparator defines a compare-exchange step of a sorting network.
// After the step, the element at Lo is not greater than the element
// at Hi.
type comparator struct {
	Lo int
	Hi int
}

// oddEvenMergeSort returns Batcher's odd-even merge sorting network
// for n elements. The number n must be a power of two.
func oddEvenMergeSort(n int) []comparator {
	var result []comparator

	for p := 1; p < n; p <<= 1 {
		for k := p; k >= 1; k >>= 1 {
			for j := k % p; j+k < n; j += 2 * k {
				limit := k
				if n-j-k < limit {
					limit = n - j - k
				}
				for i := 0; i < limit; i++ {
					if (i+j)/(2*p) == (i+j+k)/(2*p) {
						result = append(result, comparator{
							Lo: i + j,
							Hi: i + j + k,
						})
					}
				}
			}
		}
	}
	return result
}

// nextPow2 returns the smallest power of two that is not smaller than
// n.
func nextPow2(n int) int {
	result := 1
	for result < n {
		result <<= 1
	}
	return result
}
