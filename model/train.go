package model

import (
	"cmp"
	"fmt"
	"log/slog"

	heap "github.com/emirpasic/gods/v2/trees/binaryheap"
	"github.com/jmorganca/minbpe/logutil"
)

// Train learns vocabSize-256 merges from text and returns the resulting
// model. Training stops early, without error, once the working sequence
// has no adjacent pairs left.
func Train(text string, vocabSize int) (*BytePairEncoding, error) {
	return TrainBytes([]byte(text), vocabSize)
}

// TrainBytes is Train over arbitrary bytes; data need not be valid UTF-8.
func TrainBytes(data []byte, vocabSize int) (*BytePairEncoding, error) {
	if vocabSize < 256 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVocabSize, vocabSize)
	}

	numMerges := vocabSize - 256

	ids := make([]int32, len(data))
	for i, b := range data {
		ids[i] = int32(b)
	}

	bpe := NewBytePairEncoding()
	for range numMerges {
		stats := Stats(ids)
		if len(stats) == 0 {
			break
		}

		best := mostFrequent(stats)
		id, err := bpe.add(best.Pair)
		if err != nil {
			return nil, err
		}

		ids = Merge(ids, best.Pair, id)
		logutil.Trace("merge", "pair", best.Pair, "id", id, "count", best.count)
	}

	slog.Debug("trained", "bytes", len(data), "merges", len(bpe.merges), "requested", numMerges, "sequence", len(ids))
	return bpe, nil
}

type pairCount struct {
	Pair
	count int
}

// mostFrequent picks the pair with the highest count. Equal counts go to
// the lexicographically smallest pair.
func mostFrequent(stats map[Pair]int) pairCount {
	pairs := heap.NewWith(func(a, b pairCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return a.Pair.Compare(b.Pair)
	})

	for p, n := range stats {
		pairs.Push(pairCount{Pair: p, count: n})
	}

	best, _ := pairs.Pop()
	return best
}
