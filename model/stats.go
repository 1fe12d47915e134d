package model

// Stats counts every adjacent pair in ids. Overlapping windows are all
// counted, so "aaa" yields (a, a) twice.
func Stats(ids []int32) map[Pair]int {
	stats := make(map[Pair]int)
	for i := 0; i+1 < len(ids); i++ {
		stats[Pair{ids[i], ids[i+1]}]++
	}
	return stats
}
