package snapshot

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// File renders a as a complete snapshot file: "<?php return <export>;".
func File(a *Array) []byte {
	var b bytes.Buffer
	b.WriteString("<?php return ")
	writeArray(&b, a, 1)
	b.WriteByte(';')
	return b.Bytes()
}

// Export renders a in var_export layout: "array (" headers, two spaces of
// indentation per nesting level, nested arrays starting on their own line and
// a trailing comma after every element.
func Export(a *Array) []byte {
	var b bytes.Buffer
	writeArray(&b, a, 1)
	return b.Bytes()
}

func writeArray(b *bytes.Buffer, a *Array, level int) {
	if level > 1 {
		b.WriteByte('\n')
		writeSpaces(b, level-1)
	}
	b.WriteString("array (\n")

	for _, k := range a.keys {
		writeSpaces(b, level+1)
		if k.IsInt {
			b.WriteString(strconv.FormatInt(k.Int, 10))
		} else {
			writeString(b, k.Str)
		}
		b.WriteString(" => ")
		writeValue(b, a.values[k], level+2)
		b.WriteString(",\n")
	}

	if level > 1 {
		writeSpaces(b, level-1)
	}
	b.WriteByte(')')
}

func writeValue(b *bytes.Buffer, v any, level int) {
	switch t := v.(type) {
	case *Array:
		writeArray(b, t, level)
	case string:
		writeString(b, t)
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case float64:
		b.WriteString(formatFloat(t))
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case nil:
		b.WriteString("NULL")
	default:
		writeString(b, fmt.Sprint(t))
	}
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\x00", `' . "\0" . '`,
)

func writeString(b *bytes.Buffer, s string) {
	b.WriteByte('\'')
	b.WriteString(stringEscaper.Replace(s))
	b.WriteByte('\'')
}

func writeSpaces(b *bytes.Buffer, n int) {
	for i := 0; i < n; i++ {
		b.WriteByte(' ')
	}
}

// formatFloat prints the shortest round-tripping representation, always with
// a decimal point, switching to "1.0E+25" notation outside 1e-4..1e17.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}

	sign := ""
	if math.Signbit(f) {
		sign = "-"
		f = -f
	}

	// d.ddddde±XX
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(sci, "e")
	e, _ := strconv.Atoi(exp)
	digits := strings.Replace(mantissa, ".", "", 1)
	decpt := e + 1
	if f == 0 {
		decpt = 1
	}

	if decpt < -3 || decpt > 17 {
		frac := digits[1:]
		if frac == "" {
			frac = "0"
		}
		expSign := "+"
		if e < 0 {
			expSign = "-"
			e = -e
		}
		return sign + digits[:1] + "." + frac + "E" + expSign + strconv.Itoa(e)
	}

	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return sign + fixed
}
