// Package score measures how far a received transcription strayed from
// the text that was sent.
package score

// Diff computes the Levenshtein distance between want and got, plus a
// per-character tally of the edits. A substitution counts both the
// expected and the received character, an insertion or deletion counts
// the one character involved. Equal strings yield distance 0 and an
// empty tally.
func Diff(want, got string) (int, map[rune]int) {
	a := []rune(want)
	b := []rune(got)
	m, n := len(a), len(b)

	// DP table for edit distance
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			dp[i][j] = min(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+cost)
		}
	}

	// Backtrack from the corner to attribute each edit to the
	// characters involved.
	counts := map[rune]int{}
	i, j := m, n
	for i > 0 || j > 0 {
		if i > 0 && j > 0 {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			if dp[i][j] == dp[i-1][j-1]+cost {
				if cost == 1 {
					counts[a[i-1]]++
					counts[b[j-1]]++
				}
				i--
				j--
				continue
			}
		}
		if i > 0 && dp[i][j] == dp[i-1][j]+1 {
			// deletion: a character of want was dropped
			counts[a[i-1]]++
			i--
		} else {
			// insertion: a character of got was added
			counts[b[j-1]]++
			j--
		}
	}

	return dp[m][n], counts
}
