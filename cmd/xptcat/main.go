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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ogier/pflag"

	xpt "github.com/janvdl/go-xpt"
)

const disclaimer = "go-xpt  Copyright (C) 2026 Jan van der Linde\nThis program comes with ABSOLUTELY NO WARRANTY."

type options struct {
	filePath string
	encoding string
}

func main() {
	opts, earlyExit := parseArgs()
	if earlyExit {
		return
	}

	if err := run(opts); err != nil {
		showError(err)
		os.Exit(1)
	}
}

func parseArgs() (result options, exit bool) {
	var opts options
	pflag.StringVarP(&opts.filePath, "file", "f", "", "path to the .xpt transport file")
	pflag.StringVarP(&opts.encoding, "encoding", "e", "utf8", "character decoder: utf8, windows1252, gbk")
	help := pflag.BoolP("help", "h", false, "print usage and exit")
	pflag.Parse()

	if *help {
		fmt.Println(disclaimer)
		pflag.Usage()
		return opts, true
	}
	if opts.filePath == "" {
		showError(fmt.Errorf("missing required flag: --file"))
		pflag.Usage()
		return opts, true
	}
	return opts, false
}

func decoderFor(name string) (xpt.StringDecoder, error) {
	switch strings.ToLower(name) {
	case "", "utf8", "utf-8":
		return xpt.UTF8Decoder, nil
	case "windows1252", "windows-1252", "latin1":
		return xpt.Windows1252Decoder, nil
	case "gbk":
		return xpt.GBKDecoder, nil
	default:
		return nil, fmt.Errorf("unrecognized encoding %q", name)
	}
}

func run(opts options) error {
	decode, err := decoderFor(opts.encoding)
	if err != nil {
		return err
	}

	f, err := os.Open(opts.filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	src := xpt.NewByteSource(bufio.NewReader(f))
	reader := xpt.NewReader(src, decode)

	rows, meta, err := reader.Start()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	fmt.Printf("library: %s\n", meta.Library)
	fmt.Printf("dataset: %s\n", meta.DatasetName)
	fmt.Printf("os: %s  sas version: %s\n", meta.OperatingSystem, meta.SASVersion)

	names := make([]string, len(meta.Columns))
	for i, c := range meta.Columns {
		names[i] = c.Name
	}
	fmt.Println(strings.Join(names, "\t"))

	for {
		row, err := rows.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading row: %w", err)
		}
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
	return nil
}

func showError(err error) {
	fmt.Fprintf(os.Stderr, "xptcat: %s\n", err.Error())
}
