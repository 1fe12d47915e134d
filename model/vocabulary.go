package model

import (
	"fmt"
	"slices"
)

// Vocabulary maps token ids to the bytes they expand to. Ids 0 through 255
// are the raw bytes; every id after that is the concatenation of two
// earlier entries.
type Vocabulary struct {
	values [][]byte
}

// NewVocabulary returns a vocabulary holding only the 256 byte tokens.
func NewVocabulary() *Vocabulary {
	values := make([][]byte, 256)
	for i := range values {
		values[i] = []byte{byte(i)}
	}

	return &Vocabulary{values: values}
}

// Size is the number of token ids, including the 256 byte tokens.
func (v *Vocabulary) Size() int {
	return len(v.values)
}

// Has reports whether id has an entry.
func (v *Vocabulary) Has(id int32) bool {
	return id >= 0 && int(id) < len(v.values)
}

// Bytes returns a copy of the expansion of id.
func (v *Vocabulary) Bytes(id int32) ([]byte, error) {
	value, err := v.value(id)
	if err != nil {
		return nil, err
	}

	return slices.Clone(value), nil
}

func (v *Vocabulary) value(id int32) ([]byte, error) {
	if !v.Has(id) {
		return nil, UnknownTokenError{ID: id}
	}

	return v.values[id], nil
}

// Compose adds id as the concatenation of left and right. Ids must be
// assigned in sequence: reusing an existing id returns ErrDuplicateToken.
func (v *Vocabulary) Compose(left, right, id int32) error {
	if v.Has(id) {
		return fmt.Errorf("%w: %d", ErrDuplicateToken, id)
	} else if int(id) != len(v.values) {
		return fmt.Errorf("token id %d out of sequence, next id is %d", id, len(v.values))
	}

	a, err := v.value(left)
	if err != nil {
		return err
	}

	b, err := v.value(right)
	if err != nil {
		return err
	}

	value := make([]byte, 0, len(a)+len(b))
	value = append(value, a...)
	value = append(value, b...)
	v.values = append(v.values, value)
	return nil
}

// VocabularyView is a read-only handle on a Vocabulary.
type VocabularyView struct {
	v *Vocabulary
}

func (view VocabularyView) Size() int {
	return view.v.Size()
}

func (view VocabularyView) Has(id int32) bool {
	return view.v.Has(id)
}

// Bytes returns a copy of the expansion of id.
func (view VocabularyView) Bytes(id int32) ([]byte, error) {
	return view.v.Bytes(id)
}
