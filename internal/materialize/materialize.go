// Package materialize projects a jsonscan token stream into statically
// typed Go records, driven by the field descriptors in internal/registry.
// It also renders records back to canonical JSON (emit.go) against the
// same descriptors, so parse and emit can never drift apart.
//
// Go's garbage-collected heap stands in for the two-pass arena allocator
// the original builds by hand: "owning mode" is simply allocating a fresh
// destination value per call (Decode into a freshly zero-valued struct),
// and "static-alloc mode" is decoding into a caller-supplied, explicitly
// zeroed destination that is overwritten on the next call — the previous
// result becomes invalid exactly as the arena-reuse contract requires.
// The one place the sizing-then-layout technique still earns its keep is
// arrays: the decoder first counts elements by scanning to the matching
// ']' before allocating the slice, rather than growing it one append at
// a time.
package materialize

import (
	"fmt"
	"reflect"

	"github.com/go-i3ipc/i3ipc/internal/jsonscan"
	"github.com/go-i3ipc/i3ipc/internal/registry"
)

// Decoder consumes a token array produced by jsonscan.Scan.
type Decoder struct {
	buf    []byte
	tokens []jsonscan.Token
	pos    int
}

// NewDecoder creates a decoder over buf's token stream. buf must be the
// same (possibly in-place-decoded) buffer the tokens reference.
func NewDecoder(buf []byte, tokens []jsonscan.Token) *Decoder {
	return &Decoder{buf: buf, tokens: tokens}
}

func (d *Decoder) peek() jsonscan.Token {
	return d.tokens[d.pos]
}

func (d *Decoder) next() jsonscan.Token {
	t := d.tokens[d.pos]
	d.pos++
	return t
}

func (d *Decoder) errf(format string, args ...any) error {
	return &jsonscan.ParseError{
		TokenIndex: d.pos,
		Msg:        fmt.Sprintf(format, args...),
		Tokens:     d.tokens,
	}
}

func (d *Decoder) expectPunct(p byte) error {
	t := d.next()
	if t.Kind != jsonscan.KindPunct || t.Punct != p {
		return d.errf("expected %q", string(p))
	}
	return nil
}

// Decode materializes dest (a pointer to a struct) from the decoder's
// token stream, starting at the current position.
func Decode(dest any, d *Decoder) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("materialize: dest must be a non-nil pointer")
	}
	return d.decodeStructValue(rv.Elem())
}

// decodeStructValue fills an addressable struct value from an object
// token, or forwards into a single field when the type descriptor is
// marked INLINE (the JSON form is that field's value, not a wrapping
// object).
func (d *Decoder) decodeStructValue(sv reflect.Value) error {
	desc := registry.Describe(sv.Type())

	// An enum sibling whose base field is absent or null stays -1.
	for _, f := range desc.Fields {
		if f.Flags.Has(registry.FlagEnum) {
			sv.Field(f.Index).SetInt(-1)
		}
	}

	if desc.Inline {
		if len(desc.Fields) == 0 {
			return d.errf("inline type %s has no fields", desc.Name)
		}
		return d.decodeField(sv, desc.Fields[0], desc)
	}

	if d.peek().Kind == jsonscan.KindNull {
		d.next()
		return nil
	}

	if err := d.expectPunct('{'); err != nil {
		return err
	}
	if d.peek().Kind == jsonscan.KindPunct && d.peek().Punct == '}' {
		d.next()
		return nil
	}

	for {
		keyTok := d.next()
		if keyTok.Kind != jsonscan.KindString {
			return d.errf("expected object key")
		}
		key := keyTok.Text(d.buf)
		if err := d.expectPunct(':'); err != nil {
			return err
		}

		fd, ok := desc.FieldByJSONKey(key)
		if !ok {
			if err := d.skipValue(); err != nil {
				return err
			}
		} else if err := d.decodeField(sv, fd, desc); err != nil {
			return err
		}

		t := d.next()
		if t.Kind != jsonscan.KindPunct {
			return d.errf("expected ',' or '}'")
		}
		if t.Punct == '}' {
			return nil
		}
		if t.Punct != ',' {
			return d.errf("expected ',' or '}'")
		}
	}
}

// decodeField decodes one field's JSON value into sv.Field(fd.Index)
// and fills any derived siblings (SIZE/SET/ENUM) that accompany it. sv
// is the enclosing struct's addressable Value, kept around so derived
// siblings — which live beside the base field, not inside it — can be
// reached and set.
func (d *Decoder) decodeField(sv reflect.Value, fd registry.FieldDescriptor, parent *registry.TypeDescriptor) error {
	rv := sv.Field(fd.Index)
	isNull := d.peek().Kind == jsonscan.KindNull

	switch {
	case fd.Flags.Has(registry.FlagOpt) && isNull:
		d.next()
		rv.Set(reflect.Zero(rv.Type()))
		d.setSiblingBool(sv, parent, fd.Index, registry.FlagSet, false)
		return nil

	case fd.Flags.Has(registry.FlagPtr):
		if isNull {
			d.next()
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		elem := reflect.New(rv.Type().Elem())
		if err := d.decodeStructValue(elem.Elem()); err != nil {
			return err
		}
		rv.Set(elem)
		return nil

	case fd.Flags.Has(registry.FlagArray):
		count, err := d.decodeArray(rv)
		if err != nil {
			return err
		}
		d.setSiblingInt(sv, parent, fd.Index, registry.FlagSize, count)
		if fd.Flags.Has(registry.FlagOpt) {
			d.setSiblingBool(sv, parent, fd.Index, registry.FlagSet, true)
		}
		return nil

	default:
		if err := d.decodeScalar(rv); err != nil {
			return err
		}
		if fd.Flags.Has(registry.FlagOpt) {
			d.setSiblingBool(sv, parent, fd.Index, registry.FlagSet, true)
		}
		if rv.Kind() == reflect.String {
			if sib, ok := parent.SiblingEnum(fd.Index); ok {
				sv.Field(sib.Index).SetInt(int64(registry.EnumIndex(sib.EnumName, rv.String())))
			}
		}
		return nil
	}
}

func (d *Decoder) siblingFieldIndex(parent *registry.TypeDescriptor, baseIndex int, flag registry.FieldFlag) (int, bool) {
	var sib registry.FieldDescriptor
	var ok bool
	switch flag {
	case registry.FlagSize:
		sib, ok = parent.SiblingSize(baseIndex)
	case registry.FlagSet:
		sib, ok = parent.SiblingSet(baseIndex)
	case registry.FlagEnum:
		sib, ok = parent.SiblingEnum(baseIndex)
	}
	if !ok {
		return 0, false
	}
	return sib.Index, true
}

func (d *Decoder) setSiblingBool(sv reflect.Value, parent *registry.TypeDescriptor, baseIndex int, flag registry.FieldFlag, v bool) {
	idx, ok := d.siblingFieldIndex(parent, baseIndex, flag)
	if !ok {
		return
	}
	sv.Field(idx).SetBool(v)
}

func (d *Decoder) setSiblingInt(sv reflect.Value, parent *registry.TypeDescriptor, baseIndex int, flag registry.FieldFlag, v int) {
	idx, ok := d.siblingFieldIndex(parent, baseIndex, flag)
	if !ok {
		return
	}
	sv.Field(idx).SetInt(int64(v))
}

func (d *Decoder) decodeScalar(rv reflect.Value) error {
	if rv.Kind() == reflect.Struct {
		return d.decodeStructValue(rv)
	}

	t := d.next()
	switch rv.Kind() {
	case reflect.String:
		if t.Kind != jsonscan.KindString {
			return d.errf("expected string")
		}
		rv.SetString(t.Text(d.buf))
	case reflect.Bool:
		if t.Kind != jsonscan.KindBool {
			return d.errf("expected bool")
		}
		rv.SetBool(t.Bool)
	case reflect.Int, reflect.Int32, reflect.Int64:
		if t.Kind != jsonscan.KindNumber {
			return d.errf("expected number")
		}
		rv.SetInt(t.Int)
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		if t.Kind != jsonscan.KindNumber {
			return d.errf("expected number")
		}
		rv.SetUint(uint64(t.Int))
	case reflect.Float64, reflect.Float32:
		if t.Kind != jsonscan.KindNumber {
			return d.errf("expected number")
		}
		rv.SetFloat(t.Float)
	default:
		return d.errf("unsupported scalar kind %s", rv.Kind())
	}
	return nil
}

// decodeArray fills a slice field, first scanning ahead to count
// elements (the sizing pass) before allocating the slice and filling it
// (the layout/emit pass). Returns the element count.
func (d *Decoder) decodeArray(rv reflect.Value) (int, error) {
	if d.peek().Kind == jsonscan.KindNull {
		d.next()
		rv.Set(reflect.Zero(rv.Type()))
		return 0, nil
	}

	if err := d.expectPunct('['); err != nil {
		return 0, err
	}

	startPos := d.pos
	count := 0
	if !(d.peek().Kind == jsonscan.KindPunct && d.peek().Punct == ']') {
		for {
			if err := d.skipValue(); err != nil {
				return 0, err
			}
			count++
			t := d.next()
			if t.Kind == jsonscan.KindPunct && t.Punct == ']' {
				break
			}
			if !(t.Kind == jsonscan.KindPunct && t.Punct == ',') {
				return 0, d.errf("expected ',' or ']' in array")
			}
		}
	} else {
		d.next() // consume ']'
	}

	elemType := rv.Type().Elem()
	slice := reflect.MakeSlice(rv.Type(), count, count)

	d.pos = startPos
	for i := 0; i < count; i++ {
		elem := reflect.New(elemType).Elem()
		if err := d.decodeScalar(elem); err != nil {
			return 0, err
		}
		slice.Index(i).Set(elem)
		if i < count-1 {
			d.next() // comma
		}
	}
	d.next() // closing ']'

	rv.Set(slice)
	return count, nil
}

// skipValue consumes and discards one JSON value of any kind, used for
// object fields not present in the type descriptor.
func (d *Decoder) skipValue() error {
	t := d.next()
	switch t.Kind {
	case jsonscan.KindString, jsonscan.KindNumber, jsonscan.KindBool, jsonscan.KindNull:
		return nil
	case jsonscan.KindPunct:
		switch t.Punct {
		case '{':
			if d.peek().Kind == jsonscan.KindPunct && d.peek().Punct == '}' {
				d.next()
				return nil
			}
			for {
				keyTok := d.next()
				if keyTok.Kind != jsonscan.KindString {
					return d.errf("expected object key while skipping")
				}
				if err := d.expectPunct(':'); err != nil {
					return err
				}
				if err := d.skipValue(); err != nil {
					return err
				}
				sep := d.next()
				if sep.Kind != jsonscan.KindPunct {
					return d.errf("expected ',' or '}' while skipping")
				}
				if sep.Punct == '}' {
					return nil
				}
				if sep.Punct != ',' {
					return d.errf("expected ',' or '}' while skipping")
				}
			}
		case '[':
			if d.peek().Kind == jsonscan.KindPunct && d.peek().Punct == ']' {
				d.next()
				return nil
			}
			for {
				if err := d.skipValue(); err != nil {
					return err
				}
				sep := d.next()
				if sep.Kind != jsonscan.KindPunct {
					return d.errf("expected ',' or ']' while skipping")
				}
				if sep.Punct == ']' {
					return nil
				}
				if sep.Punct != ',' {
					return d.errf("expected ',' or ']' while skipping")
				}
			}
		default:
			return d.errf("unexpected punctuation while skipping")
		}
	case jsonscan.KindEOF:
		return d.errf("unexpected end of input while skipping")
	}
	return nil
}
