package cmd

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorganca/minbpe/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewCLI()
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunHandler(t *testing.T) {
	out, err := execute(t, "--vocab-size", "259", "aaabdaaabac")
	require.NoError(t, err)
	assert.Equal(t, "Encoded: [258, 100, 258, 97, 99]\nDecoded: \"aaabdaaabac\"\n", out)
}

func TestRunHandlerUntrained(t *testing.T) {
	out, err := execute(t, "--vocab-size", "256", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Encoded: [104, 105]\nDecoded: \"hi\"\n", out)
}

func TestRunHandlerMissingText(t *testing.T) {
	out, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s), received 0")
	assert.Contains(t, out, "Usage:")
}

func TestRunHandlerInvalidVocabSize(t *testing.T) {
	_, err := execute(t, "--vocab-size", "100", "hello")
	require.ErrorIs(t, err, model.ErrInvalidVocabSize)
}

func TestRunHandlerMerges(t *testing.T) {
	out, err := execute(t, "--vocab-size", "259", "--merges", "aaabdaaabac")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Regexp(t, `^ID\s+LEFT\s+RIGHT\s+TOKEN`, lines[2])
	assert.Regexp(t, `^256\s+\[a\]\s+\[a\]\s+\[aa\]`, lines[3])
	assert.Regexp(t, `^257\s+\[a\]\s+\[b\]\s+\[ab\]`, lines[4])
	assert.Regexp(t, `^258\s+\[aa\]\s+\[ab\]\s+\[aaab\]`, lines[5])
}

func TestUsageListsEnvironment(t *testing.T) {
	cmd := NewCLI()
	usage := cmd.UsageString()
	for _, key := range []string{"MINBPE_CONFIG", "MINBPE_DEBUG", "MINBPE_TRACE", "MINBPE_VOCAB_SIZE"} {
		assert.Contains(t, usage, key)
	}
}
