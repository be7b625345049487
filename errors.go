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

import "fmt"

// ParseError reports a malformed or unexpected header card, namestr record,
// or body constraint. It always carries the offending text so a caller can
// locate the corruption without reader internals.
type ParseError struct {
	Title  string
	Detail string
}

func (e *ParseError) Error() string {
	if e.Title == "" {
		return e.Detail
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

func newParseError(title, format string, args ...any) *ParseError {
	return &ParseError{Title: title, Detail: fmt.Sprintf(format, args...)}
}

// DecodeError reports a byte-source failure, a string-decoder failure, or a
// logically-impossible IBM-float encoding.
type DecodeError struct {
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Detail, e.Err.Error())
	}
	return e.Detail
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(err error, format string, args ...any) *DecodeError {
	return &DecodeError{Detail: fmt.Sprintf(format, args...), Err: err}
}
