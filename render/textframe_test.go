package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFrame(t *testing.T) {
	tf := NewTextFrame([]string{"ab", "cd", "ef"}, 2)

	assert.Equal(t, 3, tf.Height())
	assert.Equal(t, 2, tf.Cols())
	assert.Equal(t, "ab\ncd\nef\n", tf.String())

	var buf bytes.Buffer
	n, err := tf.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, tf.String(), buf.String())
}

func TestTextFrame_Empty(t *testing.T) {
	tf := NewTextFrame(nil, 0)
	assert.Equal(t, "", tf.String())
	assert.Equal(t, 0, tf.Height())
}
