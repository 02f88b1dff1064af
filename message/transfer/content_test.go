package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-eml/message/transfer"
)

func TestDecodeContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		cte      string
		charset  string
		binary   bool
		wantText string
	}{
		{"base64", "SGVsbG8gV29ybGQ=\r\n", "base64", "utf-8", true, "Hello World"},
		{"base64 mixed case", "SGVsbG8gV29ybGQ=", " BASE64 ", "", true, "Hello World"},
		{"base64 gbk", "xOO6ww==", "base64", "gb2312", true, "你好"},
		{"quoted-printable", "caf=C3=A9", "quoted-printable", "utf-8", false, "café"},
		{"7bit", "plain text", "7bit", "utf-8", false, "plain text"},
		{"absent", "plain text", "", "", false, "plain text"},
		{"8bit latin1", "caf\xe9", "8bit", "iso-8859-1", false, "café"},
		{"8bitmime latin1", "caf\xe9", "8bitmime", "iso-8859-1", false, "café"},
		{"8bit utf-8", "café", "8bit", "utf-8", false, "café"},
		{"binary utf-8", "café", "binary", "utf-8", true, "café"},
		{"binarymime latin1", "caf\xe9", "binarymime", "latin1", false, "café"},
		{"unknown encoding", "as is", "x-uuencode", "utf-8", false, "as is"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := transfer.DecodeContent(tt.raw, tt.cte, tt.charset)
			assert.Equal(t, tt.binary, c.IsBinary())
			assert.Equal(t, tt.wantText, c.Text())
		})
	}
}

func TestDecodeContentErr(t *testing.T) {
	t.Parallel()

	c, err := transfer.DecodeContentErr("@@@ not base64 @@@", "base64", "utf-8")
	assert.ErrorIs(t, err, transfer.ErrDecode)
	assert.False(t, c.IsBinary())
	assert.Equal(t, "@@@ not base64 @@@", c.Text())

	c, err = transfer.DecodeContentErr("abc", "8bit", "x-not-real")
	assert.ErrorIs(t, err, transfer.ErrDecode)
	assert.Equal(t, "abc", c.Text())

	c, err = transfer.DecodeContentErr("AAEC", "base64", "")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, c.Bytes())
	assert.Equal(t, 3, c.Len())
}

func TestContent(t *testing.T) {
	t.Parallel()

	txt := transfer.NewText("hello")
	assert.False(t, txt.IsBinary())
	assert.Equal(t, "utf-8", txt.Charset())
	assert.Equal(t, "hello", txt.String())

	bin := transfer.NewBinary([]byte{0xff})
	assert.True(t, bin.IsBinary())
	assert.Equal(t, "utf-8", bin.Charset())
	assert.Equal(t, []byte{0xff}, bin.Bytes())
}
