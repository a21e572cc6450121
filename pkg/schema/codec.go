package schema

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// The wire format for form_structure is a JSON object whose key order is the
// field order. A primitive field's value is its bare kind tag, an object
// field's value is a nested mapping, and an array field's value is
// {"type": "array", "items": <kind tag or nested mapping>}.
const (
	arrayMarkerKey = "type"
	arrayItemsKey  = "items"
	arrayMarkerTag = "array"
)

// DecodeError reports a malformed stored structure. Decoding fails closed:
// the structure is refused rather than guessed at.
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "schema: decode: " + e.Reason
	}
	return "schema: decode " + e.Path + ": " + e.Reason
}

// DecodeStructure parses a stored form_structure payload, preserving field
// order.
func DecodeStructure(data []byte) (Structure, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := readValue(dec, "")
	if err != nil {
		return nil, err
	}
	members, ok := value.([]member)
	if !ok {
		return nil, &DecodeError{Reason: "top-level structure is not an object"}
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return classifyMembers(members, "")
}

// member is one ordered key/value pair inside a wire object. Values are
// either a string tag or a nested []member.
type member struct {
	key   string
	value any
}

func readValue(dec *json.Decoder, path string) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, &DecodeError{Path: path, Reason: "unexpected end of document"}
		}
		return nil, &DecodeError{Path: path, Reason: err.Error()}
	}

	switch t := tok.(type) {
	case string:
		return t, nil
	case json.Delim:
		if t != '{' {
			return nil, &DecodeError{Path: path, Reason: fmt.Sprintf("unexpected delimiter %q", t.String())}
		}
		return readMembers(dec, path)
	default:
		return nil, &DecodeError{Path: path, Reason: fmt.Sprintf("unexpected value %v", tok)}
	}
}

func readMembers(dec *json.Decoder, path string) ([]member, error) {
	members := []member{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &DecodeError{Path: path, Reason: "unterminated object"}
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return members, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &DecodeError{Path: path, Reason: fmt.Sprintf("unexpected object key %v", tok)}
		}
		value, err := readValue(dec, joinFieldPath(path, key))
		if err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: value})
	}
}

func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return &DecodeError{Reason: "trailing content after structure"}
	}
	return nil
}

func classifyMembers(members []member, path string) (Structure, error) {
	fields := make(Structure, 0, len(members))
	for _, m := range members {
		field, err := classifyMember(m, path)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func classifyMember(m member, path string) (FieldSpec, error) {
	at := joinFieldPath(path, m.key)

	switch value := m.value.(type) {
	case string:
		kind, err := primitiveKind(value, at)
		if err != nil {
			return FieldSpec{}, err
		}
		return FieldSpec{Name: m.key, Kind: kind}, nil
	case []member:
		if isArrayMarker(value) {
			return classifyArray(m.key, value, at)
		}
		children, err := classifyMembers(value, at)
		if err != nil {
			return FieldSpec{}, err
		}
		return FieldSpec{Name: m.key, Kind: KindObject, Children: children}, nil
	default:
		return FieldSpec{}, &DecodeError{Path: at, Reason: "unsupported field value"}
	}
}

// isArrayMarker reports whether a nested mapping is an array declaration
// rather than an object field. The wire format reserves type:"array" for this.
func isArrayMarker(members []member) bool {
	for _, m := range members {
		if m.key == arrayMarkerKey {
			tag, ok := m.value.(string)
			return ok && tag == arrayMarkerTag
		}
	}
	return false
}

func classifyArray(name string, members []member, path string) (FieldSpec, error) {
	field := FieldSpec{Name: name, Kind: KindArray}
	sawItems := false
	for _, m := range members {
		switch m.key {
		case arrayMarkerKey:
			// Already matched by isArrayMarker.
		case arrayItemsKey:
			sawItems = true
			switch items := m.value.(type) {
			case string:
				kind, err := primitiveKind(items, path)
				if err != nil {
					return FieldSpec{}, err
				}
				field.ItemKind = kind
			case []member:
				shape, err := classifyMembers(items, path)
				if err != nil {
					return FieldSpec{}, err
				}
				field.ItemKind = KindObject
				field.Items = shape
			default:
				return FieldSpec{}, &DecodeError{Path: path, Reason: "unsupported array item declaration"}
			}
		default:
			return FieldSpec{}, &DecodeError{Path: path, Reason: fmt.Sprintf("unexpected array key %q", m.key)}
		}
	}
	if !sawItems {
		return FieldSpec{}, &DecodeError{Path: path, Reason: "array field missing items"}
	}
	return field, nil
}

func primitiveKind(tag, path string) (Kind, error) {
	switch Kind(tag) {
	case KindString:
		return KindString, nil
	case KindNumber:
		return KindNumber, nil
	default:
		return "", &DecodeError{Path: path, Reason: fmt.Sprintf("unknown kind tag %q", tag)}
	}
}

// EncodeStructure serializes a structure back into its wire form, emitting
// keys in field order. EncodeStructure(DecodeStructure(s)) reproduces s for
// any well-formed payload, modulo insignificant whitespace.
func EncodeStructure(s Structure) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeFields(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFields(buf *bytes.Buffer, fields Structure) error {
	buf.WriteByte('{')
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(buf, field.Name); err != nil {
			return err
		}
		if err := writeFieldValue(buf, field); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeFieldValue(buf *bytes.Buffer, field FieldSpec) error {
	switch field.Kind {
	case KindString, KindNumber:
		return writeString(buf, string(field.Kind))
	case KindObject:
		return writeFields(buf, field.Children)
	case KindArray:
		buf.WriteByte('{')
		if err := writeKey(buf, arrayMarkerKey); err != nil {
			return err
		}
		if err := writeString(buf, arrayMarkerTag); err != nil {
			return err
		}
		buf.WriteByte(',')
		if err := writeKey(buf, arrayItemsKey); err != nil {
			return err
		}
		if field.ItemKind == KindObject {
			if err := writeFields(buf, field.Items); err != nil {
				return err
			}
		} else if err := writeString(buf, string(field.ItemKind)); err != nil {
			return err
		}
		buf.WriteByte('}')
		return nil
	default:
		return &ValidateError{Path: field.Name, Reason: "unknown field kind " + string(field.Kind)}
	}
}

func writeKey(buf *bytes.Buffer, key string) error {
	if err := writeString(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return nil
}

func writeString(buf *bytes.Buffer, value string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("schema: encode string: %w", err)
	}
	buf.Write(encoded)
	return nil
}

// CompactJSON normalizes a JSON payload for comparison, stripping
// insignificant whitespace. Key order is preserved.
func CompactJSON(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return "", fmt.Errorf("schema: compact: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
