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
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// UTF8Decoder trims trailing ASCII-space padding and validates the bytes as
// UTF-8. This is the default decoder for western-encoded transport files.
func UTF8Decoder(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", newDecodeError(nil, "invalid utf-8 in column bytes %v", b)
	}
	return strings.TrimSpace(string(b)), nil
}

// Windows1252Decoder decodes Latin-1-adjacent single-byte SAS transport
// files, trimming trailing padding. Grounded on the charmap.Windows1252
// decoder idiom used for fixed-width binary readers elsewhere in the wild.
func Windows1252Decoder(b []byte) (string, error) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return "", newDecodeError(err, "decoding windows-1252 column bytes")
	}
	return strings.TrimSpace(string(out)), nil
}

// GBKDecoder decodes GBK-encoded character columns, trimming trailing
// padding, for transport files written by a Chinese-locale SAS session.
func GBKDecoder(b []byte) (string, error) {
	out, err := simplifiedchinese.GBK.NewDecoder().Bytes(b)
	if err != nil {
		return "", newDecodeError(err, "decoding gbk column bytes")
	}
	return strings.TrimSpace(string(out)), nil
}
