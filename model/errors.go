package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidVocabSize = errors.New("vocabulary size must be at least 256")
	ErrUnknownToken     = errors.New("unknown token id")
	ErrInvalidText      = errors.New("decoded bytes are not valid utf-8")
	ErrDuplicateToken   = errors.New("token id already in vocabulary")
)

// UnknownTokenError reports a token id that has no vocabulary entry.
type UnknownTokenError struct {
	ID int32
}

func (e UnknownTokenError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnknownToken, e.ID)
}

func (e UnknownTokenError) Unwrap() error {
	return ErrUnknownToken
}

// InvalidTextError reports decoded bytes that do not form valid UTF-8.
// Offset is the position of the first invalid byte.
type InvalidTextError struct {
	Offset int
}

func (e InvalidTextError) Error() string {
	return fmt.Sprintf("%s at byte offset %d", ErrInvalidText, e.Offset)
}

func (e InvalidTextError) Unwrap() error {
	return ErrInvalidText
}
