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

import (
	"sort"
	"strings"
)

// DocumentVersion discriminates the two XPORT variants this reader
// supports. It is fixed for the lifetime of a dataset, chosen from the
// first header card.
type DocumentVersion int

const (
	V5 DocumentVersion = iota + 1
	V8
)

// ColumnType is the on-wire type code of a column: 1 for numeric, 2 for
// character.
type ColumnType int

const (
	Numeric ColumnType = iota + 1
	Character
)

// Format is a SAS display or input format triple: name, field width,
// decimal places.
type Format struct {
	Name     string
	Width    uint16
	Decimals uint16
}

// ColumnMeta describes one column (variable) of the dataset.
type ColumnMeta struct {
	Type     ColumnType
	Length   int
	VarIndex int
	Name     string
	Label    string
	Format   Format
	InFormat Format
	Offset   int
}

// documentBase holds the fixed ASCII fields shared by the library and
// member descriptor cards: both are the same 80-byte layout of SAS symbol,
// dataset name, header type, version, OS, and timestamp.
type documentBase struct {
	SASSymbol       string
	DatasetName     string
	HeaderType      string
	Version         string
	OperatingSystem string
	Timestamp       string
}

var documentBaseSchema = []Field{
	{"sas_symbol", KindString, 8},
	{"dataset_name", KindString, 8},
	{"header_type", KindString, 8},
	{"version", KindString, 8},
	{"operating_system", KindString, 8},
	{"blanks", KindBytes, 24},
	{"timestamp", KindString, 16},
}

func decodeDocumentBase(buf []byte) (documentBase, error) {
	rec, err := Decode(documentBaseSchema, buf)
	if err != nil {
		return documentBase{}, err
	}
	return documentBase{
		SASSymbol:       strings.TrimSpace(rec["sas_symbol"].(string)),
		DatasetName:     strings.TrimSpace(rec["dataset_name"].(string)),
		HeaderType:      strings.TrimSpace(rec["header_type"].(string)),
		Version:         strings.TrimSpace(rec["version"].(string)),
		OperatingSystem: strings.TrimSpace(rec["operating_system"].(string)),
		Timestamp:       strings.TrimSpace(rec["timestamp"].(string)),
	}, nil
}

// DocumentMeta is the aggregate metadata description of a dataset: library
// and member identity, timestamps, originating OS, and the ordered column
// list.
type DocumentMeta struct {
	Version          DocumentVersion
	Library          string
	DatasetName      string
	OperatingSystem  string
	SASVersion       string
	LibraryCreated   string
	LibraryModified  string
	MemberCreated    string
	MemberModified   string
	Columns          []ColumnMeta
	observationCount uint64 // 0 means "until EOF" (V5)
	lineLength       int
}

// labelPatch is one record of the V8 LABELV8 long-label supplement.
var labelPatchSchema = []Field{
	{"var_index", KindU16BE, 2},
	{"name_len", KindU16BE, 2},
	{"label_len", KindU16BE, 2},
}

// assembleMetadata drives the full V5/V8 header state machine on src and
// returns the finished DocumentMeta plus the projection table RowReader
// needs to decode observation rows.
func assembleMetadata(src ByteSource, decode StringDecoder) (DocumentMeta, []columnProjection, error) {
	libCard, err := readCard(src)
	if err != nil {
		return DocumentMeta{}, nil, err
	}
	version, err := parseLibraryCard(libCard)
	if err != nil {
		return DocumentMeta{}, nil, err
	}

	// The library descriptor's second field is a filler "SAS" marker, not a
	// name — unlike the member descriptor, where that slot is the dataset
	// name. The actual library name lives one slot further along, in the
	// field decodeDocumentBase calls HeaderType.
	libBaseBuf := make([]byte, cardSize)
	if err := src.ReadExact(libBaseBuf); err != nil {
		return DocumentMeta{}, nil, newDecodeError(err, "reading library descriptor")
	}
	libBase, err := decodeDocumentBase(libBaseBuf)
	if err != nil {
		return DocumentMeta{}, nil, err
	}

	libUpdateBuf := make([]byte, cardSize)
	if err := src.ReadExact(libUpdateBuf); err != nil {
		return DocumentMeta{}, nil, newDecodeError(err, "reading library update timestamp")
	}
	libUpdate := strings.TrimSpace(string(libUpdateBuf))

	memberCard, err := readCard(src)
	if err != nil {
		return DocumentMeta{}, nil, err
	}
	memberMetaLength, err := parseMemberCard(memberCard, version)
	if err != nil {
		return DocumentMeta{}, nil, err
	}

	// one 80-byte member-descriptor title card; content unused
	if err := src.Skip(cardSize); err != nil {
		return DocumentMeta{}, nil, newDecodeError(err, "skipping member descriptor card")
	}

	memBaseBuf := make([]byte, cardSize)
	if err := src.ReadExact(memBaseBuf); err != nil {
		return DocumentMeta{}, nil, newDecodeError(err, "reading member base")
	}
	memBase, err := decodeDocumentBase(memBaseBuf)
	if err != nil {
		return DocumentMeta{}, nil, err
	}

	memUpdateBuf := make([]byte, cardSize)
	if err := src.ReadExact(memUpdateBuf); err != nil {
		return DocumentMeta{}, nil, newDecodeError(err, "reading member update timestamp")
	}
	memUpdate := strings.TrimSpace(string(memUpdateBuf))

	namestrCard, err := readCard(src)
	if err != nil {
		return DocumentMeta{}, nil, err
	}
	columnCount, err := parseNamestrCard(namestrCard, version)
	if err != nil {
		return DocumentMeta{}, nil, err
	}

	columns := make([]ColumnMeta, 0, columnCount)
	namestrBuf := make([]byte, memberMetaLength)
	lineLength := 0
	longLabelPending := false

	for i := uint16(0); i < columnCount; i++ {
		if err := src.ReadExact(namestrBuf); err != nil {
			return DocumentMeta{}, nil, newDecodeError(err, "reading namestr record %d", i)
		}

		var col ColumnMeta
		if version == V5 {
			col, err = decodeV5Namestr(namestrBuf, decode)
		} else {
			var lablen uint16
			col, lablen, err = decodeV8Namestr(namestrBuf, decode)
			if lablen > 40 {
				longLabelPending = true
			}
		}
		if err != nil {
			return DocumentMeta{}, nil, err
		}

		if end := col.Offset + col.Length; end > lineLength {
			lineLength = end
		}
		columns = append(columns, col)
	}

	leftBlank := int(uint32(memberMetaLength) * uint32(columnCount) % 80)
	if leftBlank > 0 {
		if err := src.Skip(80 - leftBlank); err != nil {
			return DocumentMeta{}, nil, newDecodeError(err, "skipping namestr padding")
		}
	}

	var observationCount uint64
	if version == V5 {
		// V5 reads one observation-header title card before rows start.
		if _, err := readCard(src); err != nil {
			return DocumentMeta{}, nil, err
		}
	} else {
		if longLabelPending {
			if err := applyLongLabels(src, columns); err != nil {
				return DocumentMeta{}, nil, err
			}
			sort.Slice(columns, func(i, j int) bool { return columns[i].VarIndex < columns[j].VarIndex })
		}
		obsCard, err := readCard(src)
		if err != nil {
			return DocumentMeta{}, nil, err
		}
		observationCount, err = parseObsCard(obsCard)
		if err != nil {
			return DocumentMeta{}, nil, err
		}
	}

	sort.Slice(columns, func(i, j int) bool { return columns[i].VarIndex < columns[j].VarIndex })

	meta := DocumentMeta{
		Version:          version,
		Library:          libBase.HeaderType,
		DatasetName:      memBase.DatasetName,
		OperatingSystem:  memBase.OperatingSystem,
		SASVersion:       memBase.Version,
		LibraryCreated:   libBase.Timestamp,
		LibraryModified:  libUpdate,
		MemberCreated:    memBase.Timestamp,
		MemberModified:   memUpdate,
		Columns:          columns,
		observationCount: observationCount,
		lineLength:       lineLength,
	}

	return meta, buildProjection(columns), nil
}

// applyLongLabels reads the LABELV8 card and its records, patching each
// matching column's Name and Label in place from the supplement.
func applyLongLabels(src ByteSource, columns []ColumnMeta) error {
	labelCard, err := readCard(src)
	if err != nil {
		return err
	}
	recordCount, err := parseLabelCard(labelCard)
	if err != nil {
		return err
	}

	byVarIndex := make(map[int]*ColumnMeta, len(columns))
	for i := range columns {
		byVarIndex[columns[i].VarIndex] = &columns[i]
	}

	padding := 0
	head := make([]byte, 6)
	for i := uint16(0); i < recordCount; i++ {
		if err := src.ReadExact(head); err != nil {
			return newDecodeError(err, "reading label supplement record %d", i)
		}
		rec, err := Decode(labelPatchSchema, head)
		if err != nil {
			return err
		}
		varIndex := int(rec["var_index"].(uint16))
		nameLen := int(rec["name_len"].(uint16))
		labelLen := int(rec["label_len"].(uint16))

		nameBuf := make([]byte, nameLen)
		if err := src.ReadExact(nameBuf); err != nil {
			return newDecodeError(err, "reading long name for var %d", varIndex)
		}
		labelBuf := make([]byte, labelLen)
		if err := src.ReadExact(labelBuf); err != nil {
			return newDecodeError(err, "reading long label for var %d", varIndex)
		}

		col, ok := byVarIndex[varIndex]
		if !ok {
			return newParseError("LABELV8 HEADER RECORD", "no column for var_index %d", varIndex)
		}
		col.Name = strings.TrimSpace(string(nameBuf))
		col.Label = strings.TrimSpace(string(labelBuf))

		padding = (padding + 6 + nameLen + labelLen) % 80
	}
	if padding > 0 {
		if err := src.Skip(80 - padding); err != nil {
			return newDecodeError(err, "skipping label supplement padding")
		}
	}
	return nil
}
