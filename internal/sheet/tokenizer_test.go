package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"plain fields", "a,b,c", []string{"a", "b", "c"}},
		{"trims fields", " a , b ,c ", []string{"a", "b", "c"}},
		{"escaped quote inside quotes", `"a,b""c"`, []string{`a,b"c`}},
		{"quoted comma keeps field whole", `x,"1,234",y`, []string{"x", "1,234", "y"}},
		{"empty fields", ",,", []string{"", "", ""}},
		{"single empty line", "", []string{""}},
		{"quote mid field", `ab"c,d"e`, []string{"abc,de"}},
		{"trailing comma", "a,", []string{"a", ""}},
		{"unterminated quote runs to end", `"a,b`, []string{"a,b"}},
		{"byte order mark trimmed", "\ufeffday, \u00a0x", []string{"day", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLine(tt.line))
		})
	}
}

func TestCellOutOfRange(t *testing.T) {
	fields := []string{"a", " b "}
	assert.Equal(t, "", cell(fields, -1))
	assert.Equal(t, "", cell(fields, 5))
	assert.Equal(t, "b", cell(fields, 1))
}
