package charset_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-eml/message/charset"
)

// Εν αρχη ητο ο Λογος
var greekText = []byte{
	0xc5, 0xed, 0x20, 0xe1, 0xf1, 0xf7, 0xe7, 0x20, 0xe7, 0xf4, 0xef, 0x20,
	0xef, 0x20, 0xcb, 0xef, 0xe3, 0xef, 0xf2,
}

const greekUnicode = "Εν αρχη ητο ο Λογος"

// 你好 in GBK
var gbkText = []byte{0xc4, 0xe3, 0xba, 0xc3}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":             "utf-8",
		"UTF-8":        "utf-8",
		"utf8":         "utf-8",
		` "UTF-8" `:    "utf-8",
		"US-ASCII":     "us-ascii",
		"GB2312":       "gbk",
		"gbk":          "gbk",
		"ISO-8859-7":   "iso-8859-7",
		"latin1":       "windows-1252",
		"x-not-a-real": "x-not-a-real",
	}

	for in, want := range cases {
		assert.Equal(t, want, charset.Normalize(in), "normalize %q", in)
	}
}

func TestIsUTF8(t *testing.T) {
	t.Parallel()

	assert.True(t, charset.IsUTF8(""))
	assert.True(t, charset.IsUTF8("UTF8"))
	assert.False(t, charset.IsUTF8("iso-8859-1"))
}

func TestIsChinese(t *testing.T) {
	t.Parallel()

	assert.True(t, charset.IsChinese("gb2312"))
	assert.True(t, charset.IsChinese("GBK"))
	assert.True(t, charset.IsChinese("gb18030"))
	assert.False(t, charset.IsChinese("big5"))
	assert.False(t, charset.IsChinese("utf-8"))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	s, err := charset.Decode("iso-8859-7", greekText)
	require.NoError(t, err)
	assert.Equal(t, greekUnicode, s)

	s, err = charset.Decode("gb2312", gbkText)
	require.NoError(t, err)
	assert.Equal(t, "你好", s)

	s, err = charset.Decode("utf-8", []byte(greekUnicode))
	require.NoError(t, err)
	assert.Equal(t, greekUnicode, s)

	_, err = charset.Decode("x-not-a-real", greekText)
	assert.ErrorIs(t, err, charset.ErrUnknown)
}

func TestDecodeLenient(t *testing.T) {
	t.Parallel()

	assert.Equal(t, greekUnicode, charset.DecodeLenient("iso-8859-7", greekText))
	assert.Equal(t, string(greekText), charset.DecodeLenient("x-not-a-real", greekText))
}

func TestEncode(t *testing.T) {
	t.Parallel()

	b, err := charset.Encode("iso-8859-7", greekUnicode)
	require.NoError(t, err)
	assert.Equal(t, greekText, b)

	b, err = charset.Encode("", "plain")
	require.NoError(t, err)
	assert.Equal(t, []byte("plain"), b)

	_, err = charset.Encode("x-not-a-real", "plain")
	assert.ErrorIs(t, err, charset.ErrUnknown)
}

func TestReader(t *testing.T) {
	t.Parallel()

	r, err := charset.Reader("ISO-8859-7", bytes.NewReader(greekText))
	require.NoError(t, err)

	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, greekUnicode, string(b))

	_, err = charset.Reader("x-not-a-real", bytes.NewReader(greekText))
	assert.ErrorIs(t, err, charset.ErrUnknown)
}
