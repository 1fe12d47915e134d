package model

// Merge returns a copy of ids with every occurrence of p replaced by id.
// Occurrences are matched left to right and never overlap: once a pair is
// replaced, scanning resumes after its second element.
func Merge(ids []int32, p Pair, id int32) []int32 {
	merged := make([]int32, 0, len(ids))
	for i := 0; i < len(ids); {
		if i+1 < len(ids) && ids[i] == p.Left && ids[i+1] == p.Right {
			merged = append(merged, id)
			i += 2
			continue
		}

		merged = append(merged, ids[i])
		i++
	}

	return merged
}
