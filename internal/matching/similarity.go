package matching

import "strings"

// Ratio returns the Ratcliff/Obershelp similarity of a and b in [0, 1],
// compared case-insensitively: twice the number of matching characters
// divided by the total number of characters.
func Ratio(a, b string) float64 {
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(ra, rb, 0, len(ra), 0, len(rb))) / float64(total)
}

// matchingChars anchors on the longest common block and recurses on both
// sides of it.
func matchingChars(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, k := longestMatch(a, b, alo, ahi, blo, bhi)
	if k == 0 {
		return 0
	}
	return k + matchingChars(a, b, alo, i, blo, j) + matchingChars(a, b, i+k, ahi, j+k, bhi)
}

// longestMatch finds the longest common block of a[alo:ahi] and b[blo:bhi].
// Ties go to the block starting earliest in a, then earliest in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	lengths := make([]int, bhi-blo+1)
	for x := alo; x < ahi; x++ {
		prev := 0
		for y := blo; y < bhi; y++ {
			n := y - blo + 1
			cur := lengths[n]
			if a[x] == b[y] {
				lengths[n] = prev + 1
				if lengths[n] > bestk {
					besti, bestj, bestk = x-lengths[n]+1, y-lengths[n]+1, lengths[n]
				}
			} else {
				lengths[n] = 0
			}
			prev = cur
		}
	}
	return besti, bestj, bestk
}
