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

import "strings"

// namestrRecordSize is the fixed on-wire size of one namestr record: 140
// bytes in both V5 and V8. Only the trailing-field interpretation differs
// between versions; the overall record size does not.
const namestrRecordSize = 140

// v5NamestrSchema is the 140-byte V5 namestr layout: a common prefix
// (ntype..npos) followed by 52 ignored trailing bytes.
var v5NamestrSchema = []Field{
	{"ntype", KindU16BE, 2},
	{"nhfun", KindU16BE, 2},
	{"nlng", KindU16BE, 2},
	{"nvar0", KindU16BE, 2},
	{"nname", KindBytes, 8},
	{"nlabel", KindBytes, 40},
	{"nform", KindBytes, 8},
	{"nfl", KindU16BE, 2},
	{"nfd", KindU16BE, 2},
	{"nfj", KindU16BE, 2},
	{"nfill", KindBytes, 2},
	{"niform", KindBytes, 8},
	{"nifl", KindU16BE, 2},
	{"nifd", KindU16BE, 2},
	{"npos", KindU32BE, 4},
	{"rest", KindBytes, 52},
}

// v8NamestrSchema shares the same common prefix as V5, then carries the
// long-name field and the label length that triggers the LABELV8
// supplement, followed by 18 ignored trailing bytes.
var v8NamestrSchema = []Field{
	{"ntype", KindU16BE, 2},
	{"nhfun", KindU16BE, 2},
	{"nlng", KindU16BE, 2},
	{"nvar0", KindU16BE, 2},
	{"nname", KindBytes, 8},
	{"nlabel", KindBytes, 40},
	{"nform", KindBytes, 8},
	{"nfl", KindU16BE, 2},
	{"nfd", KindU16BE, 2},
	{"nfj", KindU16BE, 2},
	{"nfill", KindBytes, 2},
	{"niform", KindBytes, 8},
	{"nifl", KindU16BE, 2},
	{"nifd", KindU16BE, 2},
	{"npos", KindU32BE, 4},
	{"nlname", KindBytes, 32},
	{"lablen", KindU16BE, 2},
	{"rest", KindBytes, 18},
}

func columnTypeOf(ntype uint16) ColumnType {
	if ntype == 2 {
		return Character
	}
	return Numeric
}

// decodeV5Namestr decodes one 140-byte V5 namestr record into a ColumnMeta.
func decodeV5Namestr(buf []byte, decode StringDecoder) (ColumnMeta, error) {
	rec, err := Decode(v5NamestrSchema, buf)
	if err != nil {
		return ColumnMeta{}, err
	}
	return columnMetaFromNamestr(rec, rec["nname"].([]byte), decode)
}

// decodeV8Namestr decodes one 140-byte V8 namestr record into a ColumnMeta.
// The name comes from the 32-byte long-name field (nlname) rather than the
// 8-byte nname field, and lablen flags whether the label is complete or
// needs patching from the LABELV8 supplement.
func decodeV8Namestr(buf []byte, decode StringDecoder) (ColumnMeta, uint16, error) {
	rec, err := Decode(v8NamestrSchema, buf)
	if err != nil {
		return ColumnMeta{}, 0, err
	}
	col, err := columnMetaFromNamestr(rec, rec["nlname"].([]byte), decode)
	if err != nil {
		return ColumnMeta{}, 0, err
	}
	return col, rec["lablen"].(uint16), nil
}

func columnMetaFromNamestr(rec Record, nameBytes []byte, decode StringDecoder) (ColumnMeta, error) {
	name, err := decode(nameBytes)
	if err != nil {
		return ColumnMeta{}, newDecodeError(err, "decoding variable name")
	}
	label, err := decode(rec["nlabel"].([]byte))
	if err != nil {
		return ColumnMeta{}, newDecodeError(err, "decoding variable label")
	}
	formatName, err := decode(rec["nform"].([]byte))
	if err != nil {
		return ColumnMeta{}, newDecodeError(err, "decoding format name")
	}
	inFormatName, err := decode(rec["niform"].([]byte))
	if err != nil {
		return ColumnMeta{}, newDecodeError(err, "decoding informat name")
	}

	return ColumnMeta{
		Type:     columnTypeOf(rec["ntype"].(uint16)),
		Length:   int(rec["nlng"].(uint16)),
		VarIndex: int(rec["nvar0"].(uint16)),
		Name:     strings.TrimSpace(name),
		Label:    strings.TrimSpace(label),
		Format: Format{
			Name:     strings.TrimSpace(formatName),
			Width:    rec["nfl"].(uint16),
			Decimals: rec["nfd"].(uint16),
		},
		InFormat: Format{
			Name:     strings.TrimSpace(inFormatName),
			Width:    rec["nifl"].(uint16),
			Decimals: rec["nifd"].(uint16),
		},
		Offset: int(rec["npos"].(uint32)),
	}, nil
}
