package serializer

import (
	"fmt"
	"strings"
)

const (
	DefaultDatePattern     = "%Y-%m-%d"
	DefaultDateTimePattern = "%Y-%m-%d %H:%M:%S"
)

var directives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "1",
	'd': "2",
	'H': "15",
	'I': "3",
	'M': "4",
	'S': "5",
	'f': "000000",
	'p': "PM",
	'b': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'j': "002",
	'z': "-0700",
	'Z': "MST",
	'%': "%",
}

// Layout converts a strftime-style format into a time package layout.
// Numeric month, day, hour, minute and second directives accept one or two
// digits, as strptime does.
//
//	Layout("%Y-%m-%d %H:%M:%S") // "2006-1-2 15:4:5"
func Layout(format string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(format) {
			return "", fmt.Errorf("serializer: pattern %q ends with a bare %%", format)
		}
		i++
		layout, ok := directives[format[i]]
		if !ok {
			return "", fmt.Errorf("serializer: pattern %q uses unsupported directive %%%c", format, format[i])
		}
		b.WriteString(layout)
	}
	return b.String(), nil
}

func mustLayout(format string) string {
	layout, err := Layout(format)
	if err != nil {
		panic(err.Error())
	}
	return layout
}
