// Package registry holds the static, read-only type-descriptor tables that
// drive both the materializer (internal/materialize) and the JSON emitter:
// for every reply/event record, which fields exist, what JSON key each
// maps to, and what role each plays (array, optional, enum-backed, ...).
package registry

// FieldFlag is a bitmask describing a field's shape and parse/emit role.
// Derived siblings (SIZE/ENUM/SET) always immediately follow the base
// field they annotate in a type's field list.
type FieldFlag uint16

const (
	// FlagArray marks a field whose JSON value is an array; paired with
	// a derived FlagSize sibling recording the element count.
	FlagArray FieldFlag = 1 << iota
	// FlagSize marks a derived "<name>_size" sibling of an array field.
	FlagSize
	// FlagEnum marks a derived "<name>_enum" sibling of an enum-backed
	// string field.
	FlagEnum
	// FlagPtr marks a field that is a pointer to an inline record,
	// absent (nil) when the JSON value was null.
	FlagPtr
	// FlagOpt marks an optional scalar or array; paired with a derived
	// FlagSet sibling recording whether the JSON value was present and
	// non-null.
	FlagOpt
	// FlagSet marks a derived "<name>_set" sibling of an optional field.
	FlagSet
	// FlagOmit marks a field that the emitter skips entirely when
	// deciding what to render (used for fields that exist only to carry
	// derived state, not to be serialized themselves).
	FlagOmit
	// FlagInline marks a record type whose JSON form is its single
	// inner field's value rather than a wrapping object.
	FlagInline
)

// Has reports whether f includes all bits of other.
func (f FieldFlag) Has(other FieldFlag) bool {
	return f&other == other
}

func (f FieldFlag) String() string {
	names := []struct {
		flag FieldFlag
		name string
	}{
		{FlagArray, "ARRAY"},
		{FlagSize, "SIZE"},
		{FlagEnum, "ENUM"},
		{FlagPtr, "PTR"},
		{FlagOpt, "OPT"},
		{FlagSet, "SET"},
		{FlagOmit, "OMIT"},
		{FlagInline, "INLINE"},
	}
	s := ""
	for _, n := range names {
		if f.Has(n.flag) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return "NONE"
	}
	return s
}
