package main

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"deedles.dev/wlgl/internal/xslices"
	"deedles.dev/wlgl/protocol"
)

func (ctx Context) ident(v string) string {
	v = strings.TrimPrefix(v, ctx.Config.Prefix)
	return ctx.camel(v)
}

func (ctx Context) camel(v string) string {
	var buf strings.Builder
	buf.Grow(len(v))
	shift := true
	for _, c := range v {
		if c == '_' {
			shift = true
			continue
		}

		if shift {
			c = unicode.ToUpper(c)
		}
		buf.WriteRune(c)
		shift = false
	}
	return buf.String()
}

func (ctx Context) export(v string) string {
	if len(v) == 0 {
		return ""
	}

	c, size := utf8.DecodeRuneInString(v)
	if unicode.IsUpper(c) {
		return v
	}

	var buf strings.Builder
	buf.Grow(len(v))
	buf.WriteRune(unicode.ToUpper(c))
	buf.WriteString(v[size:])
	return buf.String()
}

func (ctx Context) unexport(v string) string {
	if len(v) == 0 {
		return ""
	}

	c, size := utf8.DecodeRuneInString(v)
	if unicode.IsLower(c) {
		return v
	}

	var buf strings.Builder
	buf.Grow(len(v))
	buf.WriteRune(unicode.ToLower(c))
	buf.WriteString(v[size:])
	return buf.String()
}

// enumType returns the name of the Go type generated for an enum of
// the interface named iface.
func (ctx Context) enumType(iface string, enum protocol.Enum) string {
	return ctx.ident(iface) + ctx.camel(enum.Name)
}

func (ctx Context) comment(v string) string {
	v = strings.TrimSpace(v)
	if len(v) == 0 {
		return ""
	}

	lines := xslices.Filter(strings.Split(v, "\n"), func(line string) bool {
		return strings.TrimSpace(line) != ""
	})

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString("// ")
		sb.WriteString(strings.TrimSpace(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}
