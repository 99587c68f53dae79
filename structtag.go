package ron

import (
	"reflect"
	"strings"
	"sync"
)

// ronField describes one Go struct field's RON binding (`ron:"name"`,
// `ron:"-"` to skip). A field tagged `ron:",newtype"` marks the *whole*
// struct as a newtype struct rather than a named-field struct, provided it
// is the struct's only field; see [isNewtypeStruct].
type ronField struct {
	Index   int
	Name    string
	Newtype bool
}

var fieldCache sync.Map // reflect.Type -> []ronField

// ronFields returns t's exported fields in declaration order, with their
// RON-visible name resolved from the `ron` struct tag (falling back to the
// Go field name), skipping fields tagged `ron:"-"`.
func ronFields(t reflect.Type) []ronField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]ronField)
	}
	var fields []ronField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		newtype := false
		if tag, ok := f.Tag.Lookup("ron"); ok {
			var opts string
			name, opts, _ = strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			newtype = opts == "newtype"
		}
		fields = append(fields, ronField{Index: i, Name: name, Newtype: newtype})
	}
	fieldCache.Store(t, fields)
	return fields
}

// isNewtypeStruct reports whether fields describes a Go type standing in
// for a newtype struct: `Name(inner)` rather than `Name(field: inner)`.
// Go has no syntax for a struct with an unnamed field, so this format's
// newtype structs are spelled as a single field tagged `ron:",newtype"`.
func isNewtypeStruct(fields []ronField) bool {
	return len(fields) == 1 && fields[0].Newtype
}

func fieldNames(fields []ronField) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
