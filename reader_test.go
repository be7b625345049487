package xpt

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowReader_V8DeclaredCountTermination(t *testing.T) {
	projection := []columnProjection{{offset: 0, length: 8, typ: Numeric}}
	rr := &RowReader{
		src:        newMemorySource(make([]byte, 8*105)), // plenty of trailing padding
		decode:     UTF8Decoder,
		projection: projection,
		lineLength: 8,
		buf:        make([]byte, 8),
		declared:   100,
	}

	count := 0
	for {
		row, err := rr.ReadLine()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.Len(t, row, 1)
		count++
	}
	require.Equal(t, 100, count)
}

func TestRowReader_V5ShortReadTermination(t *testing.T) {
	rowLength := 48
	numRows := 17
	data := make([]byte, rowLength*numRows+16) // 16 bytes of trailing padding, short of another row
	projection := []columnProjection{{offset: 0, length: rowLength, typ: Character}}
	rr := &RowReader{
		src:        newMemorySource(data),
		decode:     UTF8Decoder,
		projection: projection,
		lineLength: rowLength,
		buf:        make([]byte, rowLength),
		declared:   0, // V5: until EOF
	}

	count := 0
	for {
		_, err := rr.ReadLine()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		count++
	}
	require.Equal(t, numRows, count)
}

func TestRowReader_ProjectsNumericAndCharacter(t *testing.T) {
	// one numeric column (8-byte IBM float, value 0.0) then one 4-byte character column
	row := append([]byte{0, 0, 0, 0, 0, 0, 0, 0}, []byte("abcd")...)
	projection := []columnProjection{
		{offset: 0, length: 8, typ: Numeric},
		{offset: 8, length: 4, typ: Character},
	}
	rr := &RowReader{
		src:        newMemorySource(row),
		decode:     UTF8Decoder,
		projection: projection,
		lineLength: 12,
		buf:        make([]byte, 12),
		declared:   0,
	}

	values, err := rr.ReadLine()
	require.NoError(t, err)
	require.Len(t, values, 2)
	n, ok := values[0].Number()
	require.True(t, ok)
	require.Equal(t, 0.0, n)
	c, ok := values[1].Character()
	require.True(t, ok)
	require.Equal(t, "abcd", c)

	_, err = rr.ReadLine()
	require.ErrorIs(t, err, io.EOF)
}

func TestRowReader_MissingValue(t *testing.T) {
	row := []byte{0x2E, 0, 0, 0, 0, 0, 0, 0}
	projection := []columnProjection{{offset: 0, length: 8, typ: Numeric}}
	rr := &RowReader{
		src:        newMemorySource(row),
		decode:     UTF8Decoder,
		projection: projection,
		lineLength: 8,
		buf:        make([]byte, 8),
	}

	values, err := rr.ReadLine()
	require.NoError(t, err)
	require.True(t, values[0].IsMissing())
}
