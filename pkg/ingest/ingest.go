// Package ingest turns an uploaded survey file into a table.
//
// The parser is picked from the filename alone: "csv" wins over "xls", which wins
// over "json". File contents are never sniffed.
package ingest

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"survey-dashboard-be/pkg/table"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xls"
	FormatJSON  Format = "json"
)

// ErrUnsupportedFormat means the filename matched none of the known formats.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ParseError wraps any failure while decoding or reading an upload.
type ParseError struct {
	Format Format
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %s: %s", e.Format, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DetectFormat maps a filename to a parser by substring match.
func DetectFormat(filename string) (Format, error) {
	switch {
	case strings.Contains(filename, "csv"):
		return FormatCSV, nil
	case strings.Contains(filename, "xls"):
		return FormatExcel, nil
	case strings.Contains(filename, "json"):
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
}

// Parse reads already-decoded file bytes into a table.
func Parse(filename string, data []byte) (*table.Table, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		return parseCSV(data)
	case FormatExcel:
		return parseExcel(data)
	default:
		return parseJSON(data)
	}
}

// DecodeDataURL splits an upload payload of the form "data:<mime>;base64,<body>"
// and decodes the body.
func DecodeDataURL(contents string) (string, []byte, error) {
	header, body, ok := strings.Cut(contents, ",")
	if !ok {
		return "", nil, &ParseError{Reason: "payload has no content separator"}
	}

	mime := strings.TrimPrefix(header, "data:")
	mime = strings.TrimSuffix(mime, ";base64")

	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		// Some clients drop the padding
		raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(body, "="))
		if rawErr != nil {
			return mime, nil, &ParseError{Reason: "invalid base64 body", Err: err}
		}
		data = raw
	}
	return mime, data, nil
}

// naTokens are the cell values read as missing, besides the empty string.
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {},
	"-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {},
	"NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

func cell(raw string) any {
	if raw == "" {
		return nil
	}
	if _, ok := naTokens[raw]; ok {
		return nil
	}
	return raw
}

// headerNames fills blank names and suffixes duplicates (".1", ".2", ...).
func headerNames(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	for i, name := range raw {
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		candidate := name
		for n := 1; used[candidate]; n++ {
			candidate = name + "." + strconv.Itoa(n)
		}
		used[candidate] = true
		out[i] = candidate
	}
	return out
}
