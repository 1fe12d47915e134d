package model

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTrainInvalidVocabSize(t *testing.T) {
	for _, size := range []int{-1, 0, 255} {
		bpe, err := Train("hello", size)
		if !errors.Is(err, ErrInvalidVocabSize) {
			t.Errorf("Train(%d): expected ErrInvalidVocabSize, got %v", size, err)
		}

		if bpe != nil {
			t.Errorf("Train(%d): expected nil model", size)
		}
	}
}

func TestTrain(t *testing.T) {
	bpe, err := Train("aaabdaaabac", 259)
	if err != nil {
		t.Fatal(err)
	}

	want := []Pair{{97, 97}, {97, 98}, {256, 257}}
	if diff := cmp.Diff(want, bpe.Merges()); diff != "" {
		t.Errorf("merges mismatch (-want +got):\n%s", diff)
	}

	for i, p := range want {
		id, ok := bpe.MergeID(p)
		if !ok || id != int32(256+i) {
			t.Errorf("MergeID(%s) = %d, %t; want %d", p, id, ok, 256+i)
		}
	}

	tokens := map[int32]string{256: "aa", 257: "ab", 258: "aaab"}
	for id, want := range tokens {
		got, err := bpe.Vocabulary().Bytes(id)
		if err != nil {
			t.Fatal(err)
		}

		if string(got) != want {
			t.Errorf("token %d: expected %q, got %q", id, want, got)
		}
	}

	if bpe.VocabularySize() != 259 {
		t.Errorf("expected vocabulary size 259, got %d", bpe.VocabularySize())
	}

	if !bpe.Trained() {
		t.Error("expected trained model")
	}
}

func TestTrainComposition(t *testing.T) {
	bpe, err := Train(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 20), 320)
	if err != nil {
		t.Fatal(err)
	}

	v := bpe.Vocabulary()
	for i, p := range bpe.Merges() {
		left, _ := v.Bytes(p.Left)
		right, _ := v.Bytes(p.Right)
		got, err := v.Bytes(int32(256 + i))
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(got, append(left, right...)) {
			t.Errorf("token %d: expected %q+%q, got %q", 256+i, left, right, got)
		}
	}
}

func TestTrainEarlyStop(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		merges int
	}{
		{name: "empty", text: "", merges: 0},
		{name: "single byte", text: "a", merges: 0},
		{name: "two bytes", text: "ab", merges: 1},
		{name: "four bytes", text: "abcd", merges: 3},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			bpe, err := Train(tt.text, 1000)
			if err != nil {
				t.Fatal(err)
			}

			if got := len(bpe.Merges()); got != tt.merges {
				t.Errorf("expected %d merges, got %d", tt.merges, got)
			}

			if bpe.VocabularySize() != 256+tt.merges {
				t.Errorf("expected vocabulary size %d, got %d", 256+tt.merges, bpe.VocabularySize())
			}
		})
	}
}

func TestTrainMonotonic(t *testing.T) {
	text := "hello world, hello there"
	full, err := Train(text, 256+100)
	if err != nil {
		t.Fatal(err)
	}

	collapse := len(full.Merges())
	if collapse == 0 || collapse >= 100 {
		t.Fatalf("unexpected collapse point %d", collapse)
	}

	for k := range collapse + 5 {
		bpe, err := Train(text, 256+k)
		if err != nil {
			t.Fatal(err)
		}

		want := full.Merges()[:min(k, collapse)]
		if diff := cmp.Diff(want, bpe.Merges(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("k=%d: merges mismatch (-want +got):\n%s", k, diff)
		}
	}
}

func TestTrainDeterministic(t *testing.T) {
	text := strings.Repeat("abcabdabeabf ", 10)
	first, err := Train(text, 280)
	if err != nil {
		t.Fatal(err)
	}

	for range 5 {
		again, err := Train(text, 280)
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(first.Merges(), again.Merges()); diff != "" {
			t.Fatalf("merges differ between runs (-first +again):\n%s", diff)
		}
	}
}

func TestTrainTieBreak(t *testing.T) {
	// every pair occurs once, so the smallest pair wins each round
	bpe, err := Train("dcba", 257)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]Pair{{98, 97}}, bpe.Merges()); diff != "" {
		t.Errorf("merges mismatch (-want +got):\n%s", diff)
	}
}

func TestTrainBytes(t *testing.T) {
	data := []byte{0xff, 0xfe, 0xff, 0xfe, 0x00}
	bpe, err := TrainBytes(data, 257)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]Pair{{0xff, 0xfe}}, bpe.Merges()); diff != "" {
		t.Errorf("merges mismatch (-want +got):\n%s", diff)
	}

	ids := bpe.EncodeBytes(data)
	if diff := cmp.Diff([]int32{256, 256, 0}, ids); diff != "" {
		t.Errorf("EncodeBytes mismatch (-want +got):\n%s", diff)
	}

	got, err := bpe.DecodeBytes(ids)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(got, data) {
		t.Errorf("expected %v, got %v", data, got)
	}
}

func BenchmarkTrain(b *testing.B) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 50)
	b.SetBytes(int64(len(text)))
	for range b.N {
		if _, err := Train(text, 512); err != nil {
			b.Fatal(err)
		}
	}
}
