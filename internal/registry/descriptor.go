package registry

import (
	"reflect"
	"strings"
	"sync"
)

// FieldDescriptor describes one struct field's JSON key and role.
type FieldDescriptor struct {
	Name     string // Go field name
	JSONKey  string // JSON object key this field is read from / written to
	Index    int    // index into reflect.Type.Field
	Flags    FieldFlag
	EnumName string // "Record.Field" key into the enum table, set iff Flags.Has(FlagEnum)
}

// TypeDescriptor describes one record type's field list.
type TypeDescriptor struct {
	Name   string
	Type   reflect.Type
	Fields []FieldDescriptor
	Inline bool
}

// FieldByJSONKey returns the descriptor whose JSONKey matches key, and
// whether one was found. Derived siblings are never returned, mirroring
// the materializer's "skip derived entries" field-list walk.
func (d *TypeDescriptor) FieldByJSONKey(key string) (FieldDescriptor, bool) {
	for _, f := range d.Fields {
		if f.Flags.Has(FlagSize) || f.Flags.Has(FlagEnum) || f.Flags.Has(FlagSet) {
			continue
		}
		if f.JSONKey == key {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// SiblingSize returns the descriptor of the "<name>_size" field paired
// with the array field at fieldIndex, if any.
func (d *TypeDescriptor) SiblingSize(fieldIndex int) (FieldDescriptor, bool) {
	return d.siblingWithFlag(fieldIndex, FlagSize)
}

// SiblingSet returns the descriptor of the "<name>_set" field paired
// with the optional field at fieldIndex, if any.
func (d *TypeDescriptor) SiblingSet(fieldIndex int) (FieldDescriptor, bool) {
	return d.siblingWithFlag(fieldIndex, FlagSet)
}

// SiblingEnum returns the descriptor of the "<name>_enum" field paired
// with the string field at fieldIndex, if any.
func (d *TypeDescriptor) SiblingEnum(fieldIndex int) (FieldDescriptor, bool) {
	return d.siblingWithFlag(fieldIndex, FlagEnum)
}

func (d *TypeDescriptor) siblingWithFlag(fieldIndex int, flag FieldFlag) (FieldDescriptor, bool) {
	for i, f := range d.Fields {
		if i <= fieldIndex {
			continue
		}
		if !f.Flags.Has(flag) {
			// Derived siblings always immediately follow their base
			// field. The field right after the base may be a sibling
			// of another kind (an OPT string's SET before its ENUM)
			// and is stepped over; any later non-matching field ends
			// the run.
			if i == fieldIndex+1 {
				continue
			}
			break
		}
		return f, true
	}
	return FieldDescriptor{}, false
}

var cache sync.Map // reflect.Type -> *TypeDescriptor

// Describe returns the cached TypeDescriptor for t, building and caching
// it on first use by scanning struct tags. This is the Go-idiomatic
// analogue of the one-shot initializer that converts a static field
// table into an indexed descriptor set: instead of a single global
// init-time pass over a hand-written C field table, each record type
// builds (and permanently caches) its own descriptor the first time it
// is materialized, via struct tags on the type itself.
//
// Tag format: `ipc:"jsonKey,FLAG1,FLAG2,..."`. Flag names match the
// FieldFlag constants (ARRAY, SIZE, ENUM, PTR, OPT, SET, OMIT, INLINE).
// An ENUM-flagged field additionally reads `enum:"Record.Field"` naming
// its partition in the enum table.
func Describe(t reflect.Type) *TypeDescriptor {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := cache.Load(t); ok {
		return cached.(*TypeDescriptor)
	}

	d := build(t)
	actual, _ := cache.LoadOrStore(t, d)
	return actual.(*TypeDescriptor)
}

func build(t reflect.Type) *TypeDescriptor {
	d := &TypeDescriptor{Name: t.Name(), Type: t}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup("ipc")
		if !ok {
			continue
		}
		parts := strings.Split(tag, ",")
		jsonKey := parts[0]

		var flags FieldFlag
		for _, part := range parts[1:] {
			flags |= parseFlag(part)
		}

		fd := FieldDescriptor{
			Name:    sf.Name,
			JSONKey: jsonKey,
			Index:   i,
			Flags:   flags,
		}
		if flags.Has(FlagEnum) {
			fd.EnumName = sf.Tag.Get("enum")
		}
		if flags.Has(FlagInline) {
			d.Inline = true
		}
		d.Fields = append(d.Fields, fd)
	}
	return d
}

func parseFlag(name string) FieldFlag {
	switch strings.TrimSpace(name) {
	case "ARRAY":
		return FlagArray
	case "SIZE":
		return FlagSize
	case "ENUM":
		return FlagEnum
	case "PTR":
		return FlagPtr
	case "OPT":
		return FlagOpt
	case "SET":
		return FlagSet
	case "OMIT":
		return FlagOmit
	case "INLINE":
		return FlagInline
	default:
		return 0
	}
}
