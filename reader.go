/*
	go-xpt: an open-source, Go solution to reading/writing XPT (SAS Transport) files.
    Copyright (C) 2026  Jan van der Linde

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package xpt

import "io"

// StringDecoder turns raw character-column bytes into a string. The core
// never assumes a specific encoding; callers inject UTF-8, GBK, or anything
// else via this function. Typical presets live in decoder.go.
type StringDecoder func([]byte) (string, error)

// columnProjection is the cached, per-column (offset, length, type) tuple
// RowReader walks for every observation row, built once at Start() instead
// of re-derived from DocumentMeta.Columns on every call.
type columnProjection struct {
	offset int
	length int
	typ    ColumnType
}

func buildProjection(columns []ColumnMeta) []columnProjection {
	proj := make([]columnProjection, len(columns))
	for i, c := range columns {
		proj[i] = columnProjection{offset: c.Offset, length: c.Length, typ: c.Type}
	}
	return proj
}

// Reader is the entry point: wrap a ByteSource and a StringDecoder, then
// call Start to consume the header and obtain a RowReader plus metadata.
// Reader hands off exclusive ownership of its ByteSource to the returned
// RowReader; the Reader value itself must not be used again afterward.
type Reader struct {
	src     ByteSource
	decode  StringDecoder
	started bool
}

// NewReader constructs a Reader over src, decoding character columns with
// decode.
func NewReader(src ByteSource, decode StringDecoder) *Reader {
	return &Reader{src: src, decode: decode}
}

// Start consumes the library/member/namestr header sections and returns a
// RowReader positioned at the first observation row, along with the
// dataset's metadata.
func (r *Reader) Start() (*RowReader, DocumentMeta, error) {
	if r.started {
		return nil, DocumentMeta{}, newParseError("", "Start called twice on the same Reader")
	}
	r.started = true

	meta, projection, err := assembleMetadata(r.src, r.decode)
	if err != nil {
		return nil, DocumentMeta{}, err
	}

	rr := &RowReader{
		src:        r.src,
		decode:     r.decode,
		projection: projection,
		lineLength: meta.lineLength,
		buf:        make([]byte, meta.lineLength),
		declared:   meta.observationCount,
	}
	return rr, meta, nil
}

// RowReader yields observation rows one at a time, in file order. It owns
// the ByteSource exclusively; rows must be consumed in order because the
// underlying stream is strictly forward-only.
type RowReader struct {
	src        ByteSource
	decode     StringDecoder
	projection []columnProjection
	lineLength int
	buf        []byte
	rowIndex   uint64
	declared   uint64 // 0 means "until EOF" (V5)
}

// ReadLine reads the next observation row and projects it to typed values.
// It returns (nil, io.EOF) when the stream ends — either a short physical
// read (the padding-tail case) or, for V8, when the declared row count has
// been reached, whichever comes first.
func (rr *RowReader) ReadLine() ([]Val, error) {
	n, err := rr.src.ReadUpTo(rr.buf)
	if err != nil && err != io.EOF {
		return nil, newDecodeError(err, "reading observation row %d", rr.rowIndex)
	}
	if n < rr.lineLength {
		return nil, io.EOF
	}
	if rr.declared != 0 && rr.rowIndex >= rr.declared {
		return nil, io.EOF
	}

	row := make([]Val, len(rr.projection))
	for i, p := range rr.projection {
		chunk := rr.buf[p.offset : p.offset+p.length]
		switch p.typ {
		case Numeric:
			f, present, ferr := DecodeIBMFloat(chunk)
			if ferr != nil {
				return nil, ferr
			}
			if present {
				row[i] = NumberVal(f)
			} else {
				row[i] = MissingVal()
			}
		case Character:
			s, derr := rr.decode(chunk)
			if derr != nil {
				return nil, newDecodeError(derr, "decoding character column %d", i)
			}
			row[i] = CharacterVal(s)
		}
	}

	rr.rowIndex++
	return row, nil
}
