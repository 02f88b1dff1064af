package scanner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-eml/internal/scanner"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, scanner.SplitLines("a\r\nb\nc"))
	assert.Equal(t, []string{"a", ""}, scanner.SplitLines("a\r\n"))
	assert.Equal(t, []string{""}, scanner.SplitLines(""))
}

func TestReadLines(t *testing.T) {
	t.Parallel()

	tests := []string{
		"a\r\nb\nc",
		"a\r\n",
		"",
		"one\r\n\r\ntwo\r\n",
		"lone\rcarriage\n",
	}

	for _, in := range tests {
		lines, err := scanner.ReadLines(strings.NewReader(in), 0)
		require.NoError(t, err)
		assert.Equal(t, scanner.SplitLines(in), lines, "input %q", in)
	}
}

func TestReadLines_LongLines(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 10_000)

	lines, err := scanner.ReadLines(strings.NewReader(long+"\r\nshort"), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{long, "short"}, lines)

	lines, err = scanner.ReadLines(strings.NewReader("12345\r\n123"), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"12345", "123"}, lines)

	_, err = scanner.ReadLines(strings.NewReader("short\r\n"+long), 100)
	assert.ErrorIs(t, err, scanner.ErrLargeLine)
}
