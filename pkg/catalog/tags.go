package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Well-known tag names. Themes may use any other names as well.
const (
	TagMood            = "mood"            // list, e.g. predatory, eerie
	TagMovement        = "movement"        // static | dynamic
	TagDensity         = "density"         // sparse | medium | dense
	TagSize            = "size"            // small | medium | large
	TagBioluminescence = "bioluminescence" // flag
)

// TagKind identifies which variant a TagValue holds.
type TagKind int

const (
	// TagKindNone is the zero value; it never matches anything.
	TagKindNone TagKind = iota
	TagKindText
	TagKindFlag
	TagKindList
)

// TypeName returns the metadata type name for the kind.
func (k TagKind) TypeName() string {
	switch k {
	case TagKindText:
		return "string"
	case TagKindFlag:
		return "boolean"
	case TagKindList:
		return "string[]"
	default:
		return "none"
	}
}

// TagValue is a tag's value: text, a boolean flag, or a list of strings.
type TagValue struct {
	kind TagKind
	text string
	flag bool
	list []string
}

// Text returns a text TagValue.
func Text(s string) TagValue {
	return TagValue{kind: TagKindText, text: s}
}

// Flag returns a boolean TagValue.
func Flag(b bool) TagValue {
	return TagValue{kind: TagKindFlag, flag: b}
}

// List returns a list TagValue. The items are copied.
func List(items ...string) TagValue {
	return TagValue{kind: TagKindList, list: slices.Clone(items)}
}

// Kind returns the variant held by v.
func (v TagValue) Kind() TagKind { return v.kind }

// IsZero reports whether v holds no value.
func (v TagValue) IsZero() bool { return v.kind == TagKindNone }

// AsText returns the text and true if v is a text value.
func (v TagValue) AsText() (string, bool) { return v.text, v.kind == TagKindText }

// AsFlag returns the flag and true if v is a flag value.
func (v TagValue) AsFlag() (bool, bool) { return v.flag, v.kind == TagKindFlag }

// AsList returns a copy of the items and true if v is a list value.
func (v TagValue) AsList() ([]string, bool) {
	if v.kind != TagKindList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// Equal reports whether two values have the same kind and content.
func (v TagValue) Equal(o TagValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case TagKindText:
		return v.text == o.text
	case TagKindFlag:
		return v.flag == o.flag
	case TagKindList:
		return slices.Equal(v.list, o.list)
	default:
		return true
	}
}

// Elements returns the scalar values held by v: each list item as text, or
// v itself for scalars.
func (v TagValue) Elements() []TagValue {
	switch v.kind {
	case TagKindList:
		out := make([]TagValue, len(v.list))
		for i, item := range v.list {
			out[i] = Text(item)
		}
		return out
	case TagKindNone:
		return nil
	default:
		return []TagValue{v}
	}
}

// Matches applies the query-side tag rule with v as the query value and
// piece as the piece's own value:
//
//	list   vs list   -> the lists share at least one item
//	list   vs scalar -> the scalar is in the query list
//	scalar vs list   -> the scalar is in the piece list
//	scalar vs scalar -> equal
func (v TagValue) Matches(piece TagValue) bool {
	if v.kind == TagKindNone || piece.kind == TagKindNone {
		return false
	}
	switch {
	case v.kind == TagKindList && piece.kind == TagKindList:
		for _, item := range v.list {
			if slices.Contains(piece.list, item) {
				return true
			}
		}
		return false
	case v.kind == TagKindList:
		return piece.kind == TagKindText && slices.Contains(v.list, piece.text)
	case piece.kind == TagKindList:
		return v.kind == TagKindText && slices.Contains(piece.list, v.text)
	default:
		return v.Equal(piece)
	}
}

// String renders v for display: lists are comma separated.
func (v TagValue) String() string {
	switch v.kind {
	case TagKindText:
		return v.text
	case TagKindFlag:
		return strconv.FormatBool(v.flag)
	case TagKindList:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// MarshalJSON encodes v as a JSON string, boolean or array.
func (v TagValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case TagKindText:
		return json.Marshal(v.text)
	case TagKindFlag:
		return json.Marshal(v.flag)
	case TagKindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON string, boolean or array of strings.
func (v *TagValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = TagValue{}
	case data[0] == '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("tag list must contain only strings: %w", err)
		}
		*v = List(items...)
	case data[0] == 't' || data[0] == 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Flag(b)
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	default:
		// Numbers are kept as their literal text.
		*v = Text(string(data))
	}
	return nil
}

// UnmarshalYAML decodes a scalar or a sequence of scalars. Scalars resolved
// as booleans become flags; every other scalar is kept as text.
func (v *TagValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!bool" {
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}
			*v = Flag(b)
			return nil
		}
		*v = Text(node.Value)
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: tag list items must be scalars", item.Line)
			}
			items = append(items, item.Value)
		}
		*v = List(items...)
		return nil
	default:
		return fmt.Errorf("line %d: tag value must be a scalar or a list", node.Line)
	}
}

// MarshalYAML encodes v as a plain scalar or sequence.
func (v TagValue) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case TagKindText:
		return v.text, nil
	case TagKindFlag:
		return v.flag, nil
	case TagKindList:
		return v.list, nil
	default:
		return nil, nil
	}
}

// Tags is an ordered mapping from tag name to value. Insertion order is kept
// through encoding and decoding. The zero value is an empty bag.
type Tags struct {
	keys   []string
	values map[string]TagValue
}

// NewTags returns an empty tag bag.
func NewTags() *Tags {
	return &Tags{values: make(map[string]TagValue)}
}

// Set stores a value under name and returns t for chaining. Re-setting an
// existing name keeps its original position. Zero values are ignored.
func (t *Tags) Set(name string, value TagValue) *Tags {
	if value.IsZero() {
		return t
	}
	if t.values == nil {
		t.values = make(map[string]TagValue)
	}
	if _, exists := t.values[name]; !exists {
		t.keys = append(t.keys, name)
	}
	t.values[name] = value
	return t
}

// Get returns the value stored under name.
func (t *Tags) Get(name string) (TagValue, bool) {
	if t == nil {
		return TagValue{}, false
	}
	v, ok := t.values[name]
	return v, ok
}

// Keys returns the tag names in insertion order.
func (t *Tags) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.keys)
}

// Len returns the number of tags.
func (t *Tags) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Clone returns an independent copy of t.
func (t *Tags) Clone() *Tags {
	if t == nil {
		return nil
	}
	out := NewTags()
	for _, k := range t.keys {
		out.Set(k, t.values[k])
	}
	return out
}

// MarshalJSON encodes t as a JSON object in insertion order.
func (t *Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := t.values[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tag %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (t *Tags) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("tags must be a JSON object")
	}

	*t = Tags{values: make(map[string]TagValue)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("tag name must be a string")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode tag %q: %w", name, err)
		}
		var v TagValue
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("invalid tag %q: %w", name, err)
		}
		t.Set(name, v)
	}
	_, err = dec.Token()
	return err
}

// UnmarshalYAML decodes a YAML mapping, keeping key order.
func (t *Tags) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: tags must be a mapping", node.Line)
	}

	*t = Tags{values: make(map[string]TagValue)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var v TagValue
		if err := v.UnmarshalYAML(valNode); err != nil {
			return fmt.Errorf("tag %q: %w", keyNode.Value, err)
		}
		t.Set(keyNode.Value, v)
	}
	return nil
}

// MarshalYAML encodes t as a mapping node in insertion order.
func (t *Tags) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if t == nil {
		return node, nil
	}
	for _, k := range t.keys {
		var val yaml.Node
		raw, err := t.values[k].MarshalYAML()
		if err != nil {
			return nil, err
		}
		if err := val.Encode(raw); err != nil {
			return nil, fmt.Errorf("failed to encode tag %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}
