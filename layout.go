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

import "encoding/binary"

// FieldKind enumerates the field types a fixed-layout schema may declare.
type FieldKind int

const (
	KindU16BE FieldKind = iota
	KindU32BE
	KindU64BE
	KindBytes
	KindString
)

// Field describes one entry of a fixed-offset binary record: its name, its
// wire type, and its byte length. Schemas are consumed in declaration order;
// offsets are implicit (the running sum of preceding lengths).
type Field struct {
	Name   string
	Kind   FieldKind
	Length int
}

// Record is a decoded fixed-layout record, keyed by field name. Values are
// uint16, uint32, uint64, []byte, or string depending on Kind.
type Record map[string]any

func schemaLength(schema []Field) int {
	n := 0
	for _, f := range schema {
		n += f.Length
	}
	return n
}

// Decode walks schema over buf in order, producing a Record. It fails with a
// ParseError if buf is shorter than the schema's total length. Strings are
// not trimmed or decoded here — that is left to the caller.
func Decode(schema []Field, buf []byte) (Record, error) {
	if len(buf) < schemaLength(schema) {
		return nil, newParseError("", "short slice: need %d bytes, got %d", schemaLength(schema), len(buf))
	}

	rec := make(Record, len(schema))
	offset := 0
	for _, f := range schema {
		chunk := buf[offset : offset+f.Length]
		switch f.Kind {
		case KindU16BE:
			rec[f.Name] = binary.BigEndian.Uint16(chunk)
		case KindU32BE:
			rec[f.Name] = binary.BigEndian.Uint32(chunk)
		case KindU64BE:
			rec[f.Name] = binary.BigEndian.Uint64(chunk)
		case KindBytes:
			b := make([]byte, f.Length)
			copy(b, chunk)
			rec[f.Name] = b
		case KindString:
			rec[f.Name] = string(chunk)
		}
		offset += f.Length
	}
	return rec, nil
}
