package walker_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-eml/message"
	"github.com/zostay/go-eml/message/header"
	"github.com/zostay/go-eml/message/walk"
	"github.com/zostay/go-eml/message/walker"
)

// each part names itself in X-Part
const treeMsg = `X-Part: root
Content-Type: multipart/mixed; boundary=r

--r
X-Part: left
Content-Type: multipart/alternative; boundary=l

--l
X-Part: left.0

one
--l
X-Part: left.1

two
--l--
--r
X-Part: middle

three
--r
X-Part: right
Content-Type: multipart/related; boundary=x

--x
X-Part: right.0

four
--x--
--r--
`

type stop struct {
	depth int
	i     int
	name  string
}

func walkTree(t *testing.T, walkFn func(walker.PartWalker, message.Generic) error, skip string) []stop {
	t.Helper()

	m, err := message.ParseString(treeMsg)
	require.NoError(t, err)

	var seen []stop
	err = walkFn(func(depth, i int, part message.Part) error {
		name, err := part.GetHeader().Get("X-Part")
		require.NoError(t, err)

		seen = append(seen, stop{depth, i, name})
		if name == skip {
			return walk.SkipParts
		}
		return nil
	}, m)
	require.NoError(t, err)

	return seen
}

func TestPartWalker_Walk(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []stop{
		{0, 0, "root"},
		{1, 0, "left"},
		{2, 0, "left.0"},
		{2, 1, "left.1"},
		{1, 1, "middle"},
		{1, 2, "right"},
		{2, 0, "right.0"},
	}, walkTree(t, walker.PartWalker.Walk, ""))
}

func TestPartWalker_WalkOpaque(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []stop{
		{2, 0, "left.0"},
		{2, 1, "left.1"},
		{1, 1, "middle"},
		{2, 0, "right.0"},
	}, walkTree(t, walker.PartWalker.WalkOpaque, ""))
}

func TestPartWalker_WalkMultipart(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []stop{
		{0, 0, "root"},
		{1, 0, "left"},
		{1, 2, "right"},
	}, walkTree(t, walker.PartWalker.WalkMultipart, ""))
}

func TestPartWalker_SkipParts(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []stop{
		{0, 0, "root"},
		{1, 0, "left"},
		{1, 1, "middle"},
		{1, 2, "right"},
		{2, 0, "right.0"},
	}, walkTree(t, walker.PartWalker.Walk, "left"))
}

func TestPartWalker_Stop(t *testing.T) {
	t.Parallel()

	m, err := message.ParseString(treeMsg)
	require.NoError(t, err)

	errStop := errors.New("stop")
	count := 0
	err = walker.PartWalker(func(depth, i int, part message.Part) error {
		count++
		if _, err := part.GetHeader().GetFirst(header.ContentType); err != nil {
			return errStop
		}
		return nil
	}).Walk(m)

	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 3, count)
}
