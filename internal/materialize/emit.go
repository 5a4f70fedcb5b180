package materialize

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-i3ipc/i3ipc/internal/registry"
)

// Emit renders v (a struct or pointer to struct) as canonical JSON,
// walking the same type descriptor Decode consumed it against. Control
// bytes below 0x20, backslash and quote are escaped; all other bytes
// pass through unchanged (the peer's payloads are already valid UTF-8).
func Emit(v any) (string, error) {
	var b strings.Builder
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			b.WriteString("null")
			return b.String(), nil
		}
		rv = rv.Elem()
	}
	if err := emitStruct(&b, rv, false); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EmitHumanReadable is Emit's diagnostic sibling: string fields longer
// than 200 bytes are truncated with an ellipsis. Never used for
// wire-format output, only for error/log context.
func EmitHumanReadable(v any) (string, error) {
	var b strings.Builder
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			b.WriteString("null")
			return b.String(), nil
		}
		rv = rv.Elem()
	}
	if err := emitStruct(&b, rv, true); err != nil {
		return "", err
	}
	return b.String(), nil
}

const humanReadableStringLimit = 200

func emitStruct(b *strings.Builder, sv reflect.Value, human bool) error {
	desc := registry.Describe(sv.Type())

	if desc.Inline {
		if len(desc.Fields) == 0 {
			return fmt.Errorf("materialize: inline type %s has no fields", desc.Name)
		}
		return emitField(b, sv, desc.Fields[0], desc, human)
	}

	b.WriteByte('{')
	first := true
	for _, fd := range desc.Fields {
		if fd.Flags.Has(registry.FlagSize) || fd.Flags.Has(registry.FlagEnum) || fd.Flags.Has(registry.FlagSet) || fd.Flags.Has(registry.FlagOmit) {
			continue
		}
		rv := sv.Field(fd.Index)
		if fd.Flags.Has(registry.FlagOpt) && fieldAbsent(sv, desc, fd, rv) {
			if !first {
				b.WriteByte(',')
			}
			first = false
			writeJSONKey(b, fd.JSONKey)
			b.WriteString("null")
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		writeJSONKey(b, fd.JSONKey)
		if err := emitField(b, sv, fd, desc, human); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

// fieldAbsent reports whether an OPT field should be emitted as null: a
// pointer or slice is absent when nil; any other kind (string, scalar)
// defers to its "_set" sibling, since a zero-value string/number cannot
// tell "absent" from "present and empty/zero" on its own.
func fieldAbsent(sv reflect.Value, desc *registry.TypeDescriptor, fd registry.FieldDescriptor, rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice:
		return rv.IsNil()
	default:
		sib, ok := desc.SiblingSet(fd.Index)
		if !ok {
			return false
		}
		return !sv.Field(sib.Index).Bool()
	}
}

func writeJSONKey(b *strings.Builder, key string) {
	b.WriteByte('"')
	writeEscapedString(b, key, false)
	b.WriteString("\":")
}

func emitField(b *strings.Builder, sv reflect.Value, fd registry.FieldDescriptor, parent *registry.TypeDescriptor, human bool) error {
	rv := sv.Field(fd.Index)

	switch {
	case fd.Flags.Has(registry.FlagPtr):
		if rv.IsNil() {
			b.WriteString("null")
			return nil
		}
		return emitStruct(b, rv.Elem(), human)

	case fd.Flags.Has(registry.FlagArray):
		return emitArray(b, rv, human)

	default:
		return emitScalar(b, rv, human)
	}
}

func emitArray(b *strings.Builder, rv reflect.Value, human bool) error {
	if rv.IsNil() {
		b.WriteString("null")
		return nil
	}
	b.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		elem := rv.Index(i)
		if elem.Kind() == reflect.Struct {
			if err := emitStruct(b, elem, human); err != nil {
				return err
			}
		} else if err := emitScalar(b, elem, human); err != nil {
			return err
		}
	}
	b.WriteByte(']')
	return nil
}

func emitScalar(b *strings.Builder, rv reflect.Value, human bool) error {
	switch rv.Kind() {
	case reflect.Struct:
		return emitStruct(b, rv, human)
	case reflect.String:
		s := rv.String()
		if human && len(s) > humanReadableStringLimit {
			s = s[:humanReadableStringLimit] + "..."
		}
		b.WriteByte('"')
		writeEscapedString(b, s, false)
		b.WriteByte('"')
	case reflect.Bool:
		if rv.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case reflect.Int, reflect.Int32, reflect.Int64:
		fmt.Fprintf(b, "%d", rv.Int())
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		fmt.Fprintf(b, "%d", rv.Uint())
	case reflect.Float64, reflect.Float32:
		fmt.Fprintf(b, "%g", rv.Float())
	default:
		return fmt.Errorf("materialize: unsupported emit kind %s", rv.Kind())
	}
	return nil
}

func writeEscapedString(b *strings.Builder, s string, _ bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\':
			b.WriteString(`\\`)
		case c < 0x20:
			fmt.Fprintf(b, `\u%04x`, c)
		default:
			b.WriteByte(c)
		}
	}
}
