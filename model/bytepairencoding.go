package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	heap "github.com/emirpasic/gods/v2/trees/binaryheap"
	"github.com/jmorganca/minbpe/logutil"
)

// BytePairEncoding is a learned merge table together with the vocabulary
// it produces. It is not modified after construction and can be shared by
// concurrent Encode and Decode calls.
type BytePairEncoding struct {
	vocab *Vocabulary

	// merges holds pairs in the order they were learned; merges[i] produced
	// token 256+i.
	merges []Pair
	ranks  map[Pair]int32
}

// NewBytePairEncoding returns an untrained model. Encoding with it yields
// raw byte ids.
func NewBytePairEncoding() *BytePairEncoding {
	return &BytePairEncoding{
		vocab: NewVocabulary(),
		ranks: make(map[Pair]int32),
	}
}

// FromMerges rebuilds a model by replaying merges in order.
func FromMerges(merges []Pair) (*BytePairEncoding, error) {
	bpe := NewBytePairEncoding()
	for _, p := range merges {
		if _, err := bpe.add(p); err != nil {
			return nil, err
		}
	}

	return bpe, nil
}

func (bpe *BytePairEncoding) add(p Pair) (int32, error) {
	if id, ok := bpe.ranks[p]; ok {
		return 0, fmt.Errorf("pair %s already merged into %d", p, id)
	}

	id := int32(256 + len(bpe.merges))
	if err := bpe.vocab.Compose(p.Left, p.Right, id); err != nil {
		return 0, fmt.Errorf("merge %s: %w", p, err)
	}

	bpe.merges = append(bpe.merges, p)
	bpe.ranks[p] = id
	return id, nil
}

// Vocabulary returns a read-only view of the model's vocabulary.
func (bpe *BytePairEncoding) Vocabulary() VocabularyView {
	return VocabularyView{v: bpe.vocab}
}

// VocabularySize is 256 plus the number of learned merges.
func (bpe *BytePairEncoding) VocabularySize() int {
	return bpe.vocab.Size()
}

// Trained reports whether the model learned at least one merge.
func (bpe *BytePairEncoding) Trained() bool {
	return len(bpe.merges) > 0
}

// Merges returns the learned pairs in the order they were learned.
func (bpe *BytePairEncoding) Merges() []Pair {
	return slices.Clone(bpe.merges)
}

// MergeID returns the token id p was merged into, if p was learned.
func (bpe *BytePairEncoding) MergeID(p Pair) (int32, bool) {
	id, ok := bpe.ranks[p]
	return id, ok
}

func (bpe *BytePairEncoding) Encode(s string) []int32 {
	return bpe.EncodeBytes([]byte(s))
}

// EncodeBytes repeatedly applies the earliest learned merge present in the
// sequence until no adjacent pair has a merge.
func (bpe *BytePairEncoding) EncodeBytes(b []byte) []int32 {
	ids := make([]int32, len(b))
	for i, c := range b {
		ids[i] = int32(c)
	}

	for len(ids) >= 2 {
		pairs := heap.NewWith(func(x, y Pair) int {
			return cmp.Compare(bpe.ranks[x], bpe.ranks[y])
		})

		for p := range Stats(ids) {
			if _, ok := bpe.ranks[p]; ok {
				pairs.Push(p)
			}
		}

		p, ok := pairs.Pop()
		if !ok {
			break
		}

		ids = Merge(ids, p, bpe.ranks[p])
	}

	logutil.Trace("encoded", "bytes", len(b), "ids", logutil.Ids(ids))
	return ids
}

// DecodeBytes concatenates the expansion of every id. An id outside the
// vocabulary is an UnknownTokenError.
func (bpe *BytePairEncoding) DecodeBytes(ids []int32) ([]byte, error) {
	b := make([]byte, 0, len(ids))
	for _, id := range ids {
		value, err := bpe.vocab.value(id)
		if err != nil {
			return nil, err
		}

		b = append(b, value...)
	}

	return b, nil
}

// Decode is DecodeBytes followed by UTF-8 validation. Invalid output is
// reported as an InvalidTextError rather than replaced.
func (bpe *BytePairEncoding) Decode(ids []int32) (string, error) {
	b, err := bpe.DecodeBytes(ids)
	if err != nil {
		return "", err
	}

	if offset := invalidOffset(b); offset >= 0 {
		return "", InvalidTextError{Offset: offset}
	}

	logutil.Trace("decoded", "string", string(b), "from", logutil.Ids(ids))
	return string(b), nil
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}

	return -1
}

// RenderToken returns a printable form of a token's bytes. Control
// characters and bytes that are not valid UTF-8 are escaped.
func (bpe *BytePairEncoding) RenderToken(id int32) (string, error) {
	b, err := bpe.vocab.value(id)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&sb, `\x%02x`, b[i])
		case unicode.IsControl(r):
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			sb.WriteRune(r)
		}
		i += size
	}

	return sb.String(), nil
}
