package sheet

import (
	"strings"
	"unicode"
)

// SplitLine tokenizes a single CSV line.
//
// Fields are separated by commas. A double quote toggles quoted mode, and a
// doubled quote inside a quoted section is a literal quote. Every field is
// trimmed after extraction. Multi-line quoted fields are not supported since
// the caller splits the document on newlines first.
func SplitLine(line string) []string {
	fields := make([]string, 0, strings.Count(line, ",")+1)
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inQuotes {
			switch {
			case ch == '"' && i+1 < len(line) && line[i+1] == '"':
				current.WriteByte('"')
				i++
			case ch == '"':
				inQuotes = false
			default:
				current.WriteByte(ch)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			fields = append(fields, trimField(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	return append(fields, trimField(current.String()))
}

// cell returns the trimmed value at idx, or "" when the column is absent or
// the row is short.
func cell(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return trimField(fields[idx])
}

// trimField strips surrounding whitespace and byte order marks. Exports
// saved from Excel start with U+FEFF, which would hide the first header.
func trimField(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
}
