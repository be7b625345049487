package xpt

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteSource_ReadExact(t *testing.T) {
	src := NewByteSource(bytes.NewReader([]byte("hello world")))
	buf := make([]byte, 5)
	require.NoError(t, src.ReadExact(buf))
	require.Equal(t, "hello", string(buf))
}

func TestByteSource_ReadExact_ShortFails(t *testing.T) {
	src := NewByteSource(bytes.NewReader([]byte("hi")))
	buf := make([]byte, 5)
	err := src.ReadExact(buf)
	require.Error(t, err)
}

func TestByteSource_Skip(t *testing.T) {
	src := NewByteSource(bytes.NewReader([]byte("0123456789")))
	require.NoError(t, src.Skip(5))
	buf := make([]byte, 5)
	require.NoError(t, src.ReadExact(buf))
	require.Equal(t, "56789", string(buf))
}

func TestByteSource_ReadUpTo_ShortRead(t *testing.T) {
	src := NewByteSource(bytes.NewReader([]byte("abc")))
	buf := make([]byte, 10)
	n, err := src.ReadUpTo(buf)
	require.True(t, err == nil || err == io.EOF)
	require.Equal(t, 3, n)
}
