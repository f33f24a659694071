package sqlspy

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const nullText = "null"

// FormatArg converts a call argument or result into the text used in trace records.
//
//   - nil values and nil pointers, maps, funcs and channels render as null
//   - values whose underlying type is string render double-quoted and escaped
//   - everything else renders with its default fmt representation
//
// Inside quoted text, printable ASCII is kept verbatim apart from the escapes \" \' and \\.
// Newline, carriage return, tab and backspace use their short escapes. Any other UTF-16 code
// unit renders as \u followed by its code point as a zero-padded DECIMAL number of at least four
// digits. Log consumers rely on this historical layout, so it must not be turned into hex.
// A byte that is not part of valid UTF-8 renders the same way with its byte value, so "\xff"
// becomes \u0255 instead of the replacement character.
func FormatArg(v any) string {
	if v == nil {
		return nullText
	}

	if s, ok := v.(string); ok {
		return quote(s)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return quote(rv.String())
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return nullText
		}
	default:
		// formatted below
	}

	return fmt.Sprint(v)
}

// FormatArgs formats each value with format and joins the results with ", ".
// A nil format falls back to FormatArg.
func FormatArgs(format func(any) string, args ...any) string {
	if format == nil {
		format = FormatArg
	}

	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = format(arg)
	}

	return strings.Join(parts, ", ")
}

// Describe builds the call description "method(arg1, arg2)".
func Describe(format func(any) string, method string, args ...any) string {
	return method + "(" + FormatArgs(format, args...) + ")"
}

func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			writeUnit(&sb, uint16(s[i]))
			i++

			continue
		}

		i += size

		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			writeUnit(&sb, uint16(r1))
			writeUnit(&sb, uint16(r2))

			continue
		}

		writeUnit(&sb, uint16(r))
	}

	sb.WriteByte('"')

	return sb.String()
}

func writeUnit(sb *strings.Builder, ch uint16) {
	switch {
	case ch == '"':
		sb.WriteString(`\"`)
	case ch == '\'':
		sb.WriteString(`\'`)
	case ch == '\\':
		sb.WriteString(`\\`)
	case ch >= ' ' && ch <= '~':
		sb.WriteByte(byte(ch))
	case ch == '\n':
		sb.WriteString(`\n`)
	case ch == '\r':
		sb.WriteString(`\r`)
	case ch == '\t':
		sb.WriteString(`\t`)
	case ch == '\b':
		sb.WriteString(`\b`)
	default:
		sb.WriteString(`\u`)
		fmt.Fprintf(sb, "%04d", ch)
	}
}
