package filter

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Args binds template placeholders to values. Positional and Named are the
// two implementations; Format renders a template against either.
type Args interface {
	lookup(field string) (string, bool)
}

// Positional binds {0}, {1}, ... to the values in order.
type Positional []string

// Only all-digit field names are indexes; "+1" or "-0" never bind.
func (p Positional) lookup(field string) (string, bool) {
	if field == "" || strings.TrimLeft(field, "0123456789") != "" {
		return "", false
	}
	i, err := strconv.Atoi(field)
	if err != nil || i >= len(p) {
		return "", false
	}
	return p[i], true
}

// Named binds {name} placeholders to the values of the map.
type Named map[string]string

func (n Named) lookup(field string) (string, bool) {
	v, ok := n[field]
	return v, ok
}

// Format renders template, substituting {field} placeholders from args.
//
// Supported syntax: {name}, {0}, automatic numbering with {}, the
// conversions !s and !r, a [[fill]align][width][.precision] format spec
// with align one of <, > or ^, and {{ / }} for literal braces. Any
// placeholder that cannot be bound yields a *TemplateBindingError.
func Format(template string, args Args) (string, error) {
	var sb strings.Builder
	sb.Grow(len(template))

	auto, manual := 0, false
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", &TemplateBindingError{Template: template, Message: "single '{' encountered in format string"}
			}
			ph, err := parsePlaceholder(template, template[i+1:i+1+end])
			if err != nil {
				return "", err
			}

			if ph.field == "" {
				if manual {
					return "", &TemplateBindingError{Template: template, Message: "cannot switch from manual field specification to automatic field numbering"}
				}
				ph.field = strconv.Itoa(auto)
				auto++
			} else {
				if auto > 0 {
					return "", &TemplateBindingError{Template: template, Message: "cannot switch from automatic field numbering to manual field specification"}
				}
				manual = true
			}

			value, ok := args.lookup(ph.field)
			if !ok {
				return "", &TemplateBindingError{Template: template, Placeholder: ph.field, Message: unboundMessage(args)}
			}
			if ph.conversion == 'r' {
				value = quote(value)
			}
			sb.WriteString(ph.spec.apply(value))
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", &TemplateBindingError{Template: template, Message: "single '}' encountered in format string"}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}

func unboundMessage(args Args) string {
	switch a := args.(type) {
	case Positional:
		return "no positional value at this index (record has " + strconv.Itoa(len(a)) + " fields)"
	case Named:
		return "no column with this name"
	default:
		return "not bound"
	}
}

type placeholder struct {
	field      string
	conversion byte
	spec       formatSpec
}

func parsePlaceholder(template, body string) (placeholder, error) {
	ph := placeholder{spec: defaultSpec()}

	field, rest := body, ""
	if idx := strings.IndexAny(body, "!:"); idx >= 0 {
		field, rest = body[:idx], body[idx:]
	}
	ph.field = field

	if strings.HasPrefix(rest, "!") {
		if len(rest) < 2 || (rest[1] != 's' && rest[1] != 'r') {
			return ph, &TemplateBindingError{Template: template, Placeholder: field, Message: "unknown conversion specifier"}
		}
		ph.conversion = rest[1]
		rest = rest[2:]
		if rest != "" && rest[0] != ':' {
			return ph, &TemplateBindingError{Template: template, Placeholder: field, Message: "expected ':' after conversion specifier"}
		}
	}

	if strings.HasPrefix(rest, ":") {
		spec, err := parseFormatSpec(rest[1:])
		if err != nil {
			return ph, &TemplateBindingError{Template: template, Placeholder: field, Message: err.Error()}
		}
		ph.spec = spec
	}
	return ph, nil
}

// formatSpec is the string subset of the format mini-language.
type formatSpec struct {
	fill      rune
	align     byte
	width     int
	precision int // -1 when unset
}

// defaultSpec leaves values untouched: no width and no precision.
func defaultSpec() formatSpec {
	return formatSpec{fill: ' ', align: '<', precision: -1}
}

type specError string

func (e specError) Error() string { return string(e) }

func parseFormatSpec(s string) (formatSpec, error) {
	spec := defaultSpec()
	if s == "" {
		return spec, nil
	}

	isAlign := func(b byte) bool { return b == '<' || b == '>' || b == '^' }
	if r, size := utf8.DecodeRuneInString(s); size < len(s) && isAlign(s[size]) {
		spec.fill, spec.align = r, s[size]
		s = s[size+1:]
	} else if isAlign(s[0]) {
		spec.align = s[0]
		s = s[1:]
	}

	digits := func() (int, string) {
		n := 0
		for n < len(s) && s[n] >= '0' && s[n] <= '9' {
			n++
		}
		if n == 0 {
			return -1, s
		}
		v, _ := strconv.Atoi(s[:n])
		return v, s[n:]
	}

	if w, rest := digits(); w >= 0 {
		spec.width, s = w, rest
	}
	if strings.HasPrefix(s, ".") {
		s = s[1:]
		p, rest := digits()
		if p < 0 {
			return spec, specError("format specifier missing precision")
		}
		spec.precision, s = p, rest
	}
	if s != "" && s != "s" {
		return spec, specError("invalid format specifier " + strconv.Quote(s))
	}
	return spec, nil
}

func (f formatSpec) apply(value string) string {
	if f.precision >= 0 && utf8.RuneCountInString(value) > f.precision {
		value = string([]rune(value)[:f.precision])
	}
	pad := f.width - utf8.RuneCountInString(value)
	if pad <= 0 {
		return value
	}
	fill := string(f.fill)
	switch f.align {
	case '>':
		return strings.Repeat(fill, pad) + value
	case '^':
		left := pad / 2
		return strings.Repeat(fill, left) + value + strings.Repeat(fill, pad-left)
	default:
		return value + strings.Repeat(fill, pad)
	}
}

// quote renders value the way the !r conversion does: single quotes unless
// the value itself contains a single quote and no double quote.
func quote(value string) string {
	q := "'"
	if strings.Contains(value, "'") && !strings.Contains(value, `"`) {
		q = `"`
	}
	var sb strings.Builder
	sb.WriteString(q)
	for _, r := range value {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case string(r) == q:
			sb.WriteString(`\` + q)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteString(q)
	return sb.String()
}
