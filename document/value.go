package document

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/goccy/go-yaml"
)

// ErrDuplicateKey is returned when a key is added twice to a Mapping.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrNotMapping is returned when the top-level value of a document is not a mapping.
var ErrNotMapping = errors.New("top-level value is not a mapping")

// ErrUnsupportedType is returned when a decoded value has no Value variant.
var ErrUnsupportedType = errors.New("unsupported value type")

// Kind identifies a Value variant.
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindSequence
	KindMapping
)

var kindNames = [...]string{"null", "bool", "int", "uint", "float", "string", "sequence", "mapping"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// Value is a decoded YAML value. Only types in this package implement it.
type Value interface {
	fmt.Stringer
	Kind() Kind
	value()
}

// Null is the YAML null.
type Null struct{}

// Bool is a YAML boolean.
type Bool bool

// Int is an integer that fits in int64.
type Int int64

// Uint is an integer above math.MaxInt64.
type Uint uint64

// Float is a floating point number.
type Float float64

// String is a YAML string scalar.
type String string

// Sequence is an ordered list of values.
type Sequence []Value

func (Null) Kind() Kind     { return KindNull }
func (Bool) Kind() Kind     { return KindBool }
func (Int) Kind() Kind      { return KindInt }
func (Uint) Kind() Kind     { return KindUint }
func (Float) Kind() Kind    { return KindFloat }
func (String) Kind() Kind   { return KindString }
func (Sequence) Kind() Kind { return KindSequence }
func (*Mapping) Kind() Kind { return KindMapping }

func (Null) value()     {}
func (Bool) value()     {}
func (Int) value()      {}
func (Uint) value()     {}
func (Float) value()    {}
func (String) value()   {}
func (Sequence) value() {}
func (*Mapping) value() {}

// Entry is a single key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an ordered collection of unique string keys.
// The zero value is an empty mapping ready to use.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// Document is the top-level mapping of a parsed file.
type Document = Mapping

// NewMapping creates a mapping from entries. It fails on duplicate keys.
func NewMapping(entries ...Entry) (*Mapping, error) {
	mapping := &Mapping{}

	for _, entry := range entries {
		err := mapping.Add(entry.Key, entry.Value)
		if err != nil {
			return nil, err
		}
	}

	return mapping, nil
}

// Add appends a key. It returns ErrDuplicateKey if the key is already present.
func (m *Mapping) Add(key string, value Value) error {
	if _, exists := m.index[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}

	m.Set(key, value)

	return nil
}

// Set stores value under key. An existing key keeps its position.
func (m *Mapping) Set(key string, value Value) {
	if value == nil {
		value = Null{}
	}

	if m.index == nil {
		m.index = make(map[string]int)
	}

	if i, exists := m.index[key]; exists {
		m.entries[i].Value = value

		return
	}

	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}

	i, ok := m.index[key]
	if !ok {
		return nil, false
	}

	return m.entries[i].Value, true
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.entries)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}

	keys := make([]string, len(m.entries))
	for i, entry := range m.entries {
		keys[i] = entry.Key
	}

	return keys
}

// Entries returns a copy of the entries in insertion order.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}

	return slices.Clone(m.entries)
}

// All iterates over the mapping in insertion order.
func (m *Mapping) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}

		for _, entry := range m.entries {
			if !yield(entry.Key, entry.Value) {
				return
			}
		}
	}
}

// Lookup follows keys through nested mappings.
func Lookup(value Value, keys ...string) (Value, bool) {
	for _, key := range keys {
		mapping, ok := value.(*Mapping)
		if !ok {
			return nil, false
		}

		value, ok = mapping.Get(key)
		if !ok {
			return nil, false
		}
	}

	return value, true
}

// New builds a Document from decoder output.
// A nil or null value yields an empty Document. Any other non-mapping value
// fails with ErrNotMapping.
func New(raw any) (*Document, error) {
	value, err := FromAny(raw)
	if err != nil {
		return nil, err
	}

	switch typed := value.(type) {
	case *Mapping:
		return typed, nil
	case Null:
		return &Document{}, nil
	default:
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, value.Kind())
	}
}

// FromAny converts a decoded value into a Value.
// Mappings decoded as yaml.MapSlice keep their order; plain Go maps are sorted
// by key since they carry no order of their own.
func FromAny(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return typed, nil
	case bool:
		return Bool(typed), nil
	case int:
		return Int(typed), nil
	case int8:
		return Int(typed), nil
	case int16:
		return Int(typed), nil
	case int32:
		return Int(typed), nil
	case int64:
		return Int(typed), nil
	case uint:
		return fromUint(uint64(typed)), nil
	case uint8:
		return Int(typed), nil
	case uint16:
		return Int(typed), nil
	case uint32:
		return Int(typed), nil
	case uint64:
		return fromUint(typed), nil
	case float32:
		return Float(typed), nil
	case float64:
		return Float(typed), nil
	case string:
		return String(typed), nil
	case time.Time:
		return String(typed.Format(time.RFC3339Nano)), nil
	case []any:
		return fromSlice(typed)
	case yaml.MapSlice:
		return fromMapSlice(typed)
	case map[string]any:
		return fromStringMap(typed)
	case map[any]any:
		return fromAnyMap(typed)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, raw)
	}
}

func fromUint(v uint64) Value {
	if v > math.MaxInt64 {
		return Uint(v)
	}

	return Int(int64(v))
}

func fromSlice(items []any) (Value, error) {
	seq := make(Sequence, 0, len(items))

	for i, item := range items {
		value, err := FromAny(item)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}

		seq = append(seq, value)
	}

	return seq, nil
}

// fromMapSlice lets later entries replace earlier ones. goccy emits merged
// entries and explicit overrides into the same slice, and it rejects real
// duplicate keys while parsing.
func fromMapSlice(items yaml.MapSlice) (Value, error) {
	mapping := &Mapping{}

	for _, item := range items {
		key, err := KeyString(item.Key)
		if err != nil {
			return nil, err
		}

		value, err := FromAny(item.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}

		mapping.Set(key, value)
	}

	return mapping, nil
}

func fromStringMap(items map[string]any) (Value, error) {
	mapping := &Mapping{}

	for _, key := range slices.Sorted(maps.Keys(items)) {
		err := addConverted(mapping, key, items[key])
		if err != nil {
			return nil, err
		}
	}

	return mapping, nil
}

func fromAnyMap(items map[any]any) (Value, error) {
	byKey := make(map[string]any, len(items))

	for key, item := range items {
		name, err := KeyString(key)
		if err != nil {
			return nil, err
		}

		if _, exists := byKey[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, name)
		}

		byKey[name] = item
	}

	return fromStringMap(byKey)
}

func addConverted(mapping *Mapping, rawKey, rawValue any) error {
	key, err := KeyString(rawKey)
	if err != nil {
		return err
	}

	value, err := FromAny(rawValue)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}

	return mapping.Add(key, value)
}

// KeyString renders a decoded mapping key as a string.
// Scalar keys use their Value rendering, so `1: x` is keyed "1".
func KeyString(raw any) (string, error) {
	if key, ok := raw.(string); ok {
		return key, nil
	}

	value, err := FromAny(raw)
	if err != nil {
		return "", fmt.Errorf("mapping key: %w", err)
	}

	return value.String(), nil
}
