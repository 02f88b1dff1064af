package transfer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-eml/message/transfer"
)

func TestNewWrappedBase64Encoder(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	wc := transfer.NewWrappedBase64Encoder(w, 72, "\r\n")

	// many small writes must wrap exactly like one big write
	for _, c := range []byte(invoice) {
		_, err := wc.Write([]byte{c})
		require.NoError(t, err)
	}
	require.NoError(t, wc.Close())

	lines := strings.Split(strings.TrimSuffix(w.String(), "\r\n"), "\r\n")
	for _, line := range lines[:len(lines)-1] {
		assert.Len(t, line, 72)
	}
	assert.LessOrEqual(t, len(lines[len(lines)-1]), 72)

	assert.Equal(t, transfer.EncodeBase64([]byte(invoice), 72, "\r\n"), w.String())
}

func TestEncodeBase64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, invoice64, transfer.EncodeBase64([]byte(invoice), 76, "\r\n"))
	assert.Equal(t, "", transfer.EncodeBase64(nil, 72, "\r\n"))
	assert.Equal(t, "YWJj", transfer.EncodeBase64([]byte("abc"), 0, "\r\n"))

	// exactly one full line
	b := bytes.Repeat([]byte{'x'}, 54)
	out := transfer.EncodeBase64(b, 72, "\r\n")
	assert.Len(t, out, 74)
	assert.True(t, strings.HasSuffix(out, "\r\n"))
	assert.False(t, strings.HasSuffix(out, "\r\n\r\n"))
}

func TestDecodeBase64(t *testing.T) {
	t.Parallel()

	b, err := transfer.DecodeBase64(invoice64)
	require.NoError(t, err)
	assert.Equal(t, invoice, string(b))

	b, err = transfer.DecodeBase64("SGVsbG8\r\n")
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(b))

	_, err = transfer.DecodeBase64("!!!not base64!!!")
	assert.Error(t, err)
}
