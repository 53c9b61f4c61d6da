package protocol

// Textual packet codec. Every packet serializes to one line of the form
//
//	NAME field1 = value1 field2 = value2 ...
//
// and parses back from it. The grammar has no quoting; free-text values
// may contain spaces, so the boundary of a value is found by scanning
// backward from the next "=" to the space before the following field
// name. Bracketed values are comma-separated lists, holding either
// integers or nested packets serialized by the same grammar.
//
// This is the transcript format written to the log and consumed by
// replay tooling; it matches the upstream network's legacy encoding,
// booleans included ("True"/"False").

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrPacketNotFound reports a type name with no registry entry.
	ErrPacketNotFound = errors.New("packet type not found")

	// ErrMalformedPacket reports a line the grammar cannot parse.
	ErrMalformedPacket = errors.New("malformed packet line")
)

// wire value for "no seat"/"no position" on optbyte fields
const noneByte = 255

// Encode serializes a packet to its one-line textual form.
func Encode(p Packet) string {
	name := p.Kind().String()
	schema := schemas[name]
	if len(schema) == 0 {
		return name
	}

	v := reflect.Indirect(reflect.ValueOf(p))
	parts := make([]string, 0, len(schema)+1)
	parts = append(parts, name)
	for _, f := range schema {
		fv := v.Field(f.index)
		parts = append(parts, f.Name+" = "+encodeValue(f, fv))
	}
	return strings.Join(parts, " ")
}

func encodeValue(f Field, v reflect.Value) string {
	switch f.Type {
	case FieldInt:
		return strconv.Itoa(int(v.Int()))
	case FieldOptByte:
		n := int(v.Int())
		if n == -1 {
			n = noneByte
		}
		return strconv.Itoa(n)
	case FieldBool:
		if v.Bool() {
			return "True"
		}
		return "False"
	case FieldString:
		return v.String()
	case FieldIntList:
		elems := make([]string, v.Len())
		for i := range elems {
			elems[i] = strconv.Itoa(int(v.Index(i).Int()))
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case FieldPacketList:
		elems := make([]string, v.Len())
		for i := range elems {
			elems[i] = Encode(v.Index(i).Interface().(Packet))
		}
		return "[" + strings.Join(elems, ", ") + "]"
	}
	return ""
}

// Decode parses one textual packet line back into a packet. The type
// name must have a registry entry and every field must coerce to its
// schema type.
func Decode(line string) (Packet, error) {
	// Only leading whitespace and the line terminator are stripped:
	// a trailing space is significant, it is how an empty final
	// string field is encoded.
	line = strings.TrimRight(strings.TrimLeft(line, " \t"), "\r\n")
	if line == "" {
		return nil, fmt.Errorf("%w: empty line", ErrMalformedPacket)
	}

	name, rest, _ := strings.Cut(line, " ")
	construct, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPacketNotFound, name)
	}
	schema := schemas[name]

	params, err := splitParams(strings.TrimLeft(rest, " "))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	pkt := construct()
	v := reflect.ValueOf(pkt).Elem()
	for pname, raw := range params {
		// Archived transcripts carry the binary envelope's header
		// fields on every line; no schema includes them.
		if pname == "type" || pname == "length" {
			continue
		}
		f, ok := fieldNamed(schema, pname)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no field %q", ErrMalformedPacket, name, pname)
		}
		if err := coerce(f, v.Field(f.index), raw); err != nil {
			return nil, fmt.Errorf("%w: %s field %q: %v", ErrMalformedPacket, name, pname, err)
		}
	}
	return pkt, nil
}

func fieldNamed(schema []Field, name string) (Field, bool) {
	for _, f := range schema {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// rawValue is an intermediate parse result before schema coercion.
type rawValue struct {
	text    string
	ints    []int
	packets []Packet
	isList  bool
	allInts bool
}

// splitParams splits "a = 1 name = Fish and Chips b = 2" into raw
// field values.
func splitParams(s string) (map[string]rawValue, error) {
	params := map[string]rawValue{}
	rest := s
	for rest != "" {
		name, after, found := strings.Cut(rest, " ")
		if !found || (after != "=" && !strings.HasPrefix(after, "= ")) {
			return nil, fmt.Errorf("%w: expected \"= \" after field name %q", ErrMalformedPacket, name)
		}
		if after == "=" {
			// final field with an empty value, trailing space trimmed
			params[name] = rawValue{}
			return params, nil
		}
		rest = after[len("= "):]
		if rest == "" {
			// final field with an empty value
			params[name] = rawValue{}
			return params, nil
		}

		if strings.HasPrefix(rest, "[") {
			end := matchBracket(rest)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated list for field %q", ErrMalformedPacket, name)
			}
			raw, err := parseList(rest[1:end])
			if err != nil {
				return nil, err
			}
			params[name] = raw
			rest = strings.TrimSpace(rest[end+1:])
			continue
		}

		nextEq := strings.Index(rest, "=")
		if nextEq == 0 {
			return nil, fmt.Errorf("%w: no value for field %q", ErrMalformedPacket, name)
		}
		if nextEq < 0 {
			// last field: value runs to end of line
			params[name] = rawValue{text: rest}
			return params, nil
		}
		// The value ends before the field name preceding the next "=".
		// Scan backward from the "=" to the space before that name;
		// values themselves may contain spaces, so a forward split
		// would cut multi-word values short.
		sep := strings.LastIndex(rest[:nextEq-1], " ")
		if sep < 0 {
			return nil, fmt.Errorf("%w: no value for field %q", ErrMalformedPacket, name)
		}
		params[name] = rawValue{text: rest[:sep]}
		rest = rest[sep+1:]
	}
	return params, nil
}

// matchBracket returns the index of the "]" matching the "[" at
// position 0, or -1.
func matchBracket(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseList classifies a bracket's contents as an integer list or a
// list of nested packets and parses accordingly.
func parseList(inner string) (rawValue, error) {
	raw := rawValue{isList: true}
	if strings.TrimSpace(inner) == "" {
		raw.allInts = true
		return raw, nil
	}
	elems := strings.Split(inner, ", ")
	if isInteger(elems[0]) {
		raw.allInts = true
		raw.ints = make([]int, len(elems))
		for i, e := range elems {
			n, err := strconv.Atoi(strings.TrimSpace(e))
			if err != nil {
				return raw, fmt.Errorf("%w: bad integer list element %q", ErrMalformedPacket, e)
			}
			raw.ints[i] = n
		}
		return raw, nil
	}
	raw.packets = make([]Packet, len(elems))
	for i, e := range elems {
		p, err := Decode(e)
		if err != nil {
			return raw, err
		}
		raw.packets[i] = p
	}
	return raw, nil
}

func isInteger(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// coerce converts a raw parsed value to the field's schema type and
// stores it.
func coerce(f Field, dst reflect.Value, raw rawValue) error {
	switch f.Type {
	case FieldInt, FieldOptByte:
		if raw.isList {
			return fmt.Errorf("got a list, want an integer")
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw.text))
		if err != nil {
			return err
		}
		if f.Type == FieldOptByte && n == noneByte {
			n = -1
		}
		dst.SetInt(int64(n))
	case FieldBool:
		dst.SetBool(raw.text == "True")
	case FieldString:
		if raw.isList {
			return fmt.Errorf("got a list, want a string")
		}
		dst.SetString(raw.text)
	case FieldIntList:
		if !raw.isList || !raw.allInts {
			return fmt.Errorf("want an integer list")
		}
		dst.Set(reflect.ValueOf(append([]int{}, raw.ints...)))
	case FieldPacketList:
		if !raw.isList || raw.allInts && len(raw.ints) > 0 {
			return fmt.Errorf("want a packet list")
		}
		dst.Set(reflect.ValueOf(append([]Packet{}, raw.packets...)))
	}
	return nil
}
