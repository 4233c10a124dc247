package schema

import (
	"fmt"
	"reflect"
	"time"
)

// Row is a column-keyed copy of an entity's persisted state.
type Row map[string]any

var timeType = reflect.TypeOf(time.Time{})

// ID returns the primary key value. ok is false when the entity declares no
// primary key or the value cannot be read.
func (m *Metadata) ID(entity any) (id int64, ok bool) {
	pk, has := m.PK()
	if !has {
		return 0, false
	}
	v, readable := m.field(entity, pk)
	if !readable {
		return 0, false
	}
	return v.Int(), true
}

// SetID assigns the primary key. entity must be a non-nil pointer.
func (m *Metadata) SetID(entity any, id int64) error {
	pk, ok := m.PK()
	if !ok {
		return ErrNoPrimary
	}
	rv := reflect.ValueOf(entity)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("schema: SetID needs a non-nil pointer, got %T", entity)
	}
	rv.Elem().FieldByIndex(pk.index).SetInt(id)
	return nil
}

// Value returns a field's current value. ok is false when the field cannot
// be read, e.g. it sits behind a nil embedded pointer.
func (m *Metadata) Value(entity any, f Field) (value any, ok bool) {
	v, ok := m.field(entity, f)
	if !ok {
		return nil, false
	}
	return v.Interface(), true
}

func (m *Metadata) field(entity any, f Field) (v reflect.Value, ok bool) {
	defer func() {
		if recover() != nil {
			v, ok = reflect.Value{}, false
		}
	}()
	rv := reflect.ValueOf(entity)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Type() != m.Type {
		return reflect.Value{}, false
	}
	return rv.FieldByIndex(f.index), true
}

// Row copies every persisted column of entity. Pointer, map and slice values
// are copied so later mutation of the entity does not leak into the row.
func (m *Metadata) Row(entity any) Row {
	row := make(Row, len(m.Fields))
	for _, f := range m.Fields {
		v, ok := m.field(entity, f)
		if !ok {
			continue
		}
		row[f.Column] = clone(v)
	}
	return row
}

// Hydrate writes row values into dst, a pointer to the entity's struct.
// Columns missing from row leave the field untouched.
func (m *Metadata) Hydrate(row Row, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Type() != m.Type {
		return fmt.Errorf("schema: cannot hydrate %T as %v", dst, m.Type)
	}
	rv = rv.Elem()
	for _, f := range m.Fields {
		raw, ok := row[f.Column]
		if !ok {
			continue
		}
		target, err := rv.FieldByIndexErr(f.index)
		if err != nil {
			continue
		}
		if raw == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		src := reflect.ValueOf(clone(reflect.ValueOf(raw)))
		switch {
		case src.Type().AssignableTo(target.Type()):
			target.Set(src)
		case convertible(src.Type(), target.Type()):
			target.Set(src.Convert(target.Type()))
		case target.Kind() == reflect.Pointer && convertible(src.Type(), target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(src.Convert(target.Type().Elem()))
			target.Set(p)
		default:
			return fmt.Errorf("schema: column %s.%s: cannot assign %v to %v", m.Table, f.Column, src.Type(), target.Type())
		}
	}
	return nil
}

// convertible is reflect's ConvertibleTo without the integer-to-string rune
// conversion, which is never what a column value means.
func convertible(src, dst reflect.Type) bool {
	if dst.Kind() == reflect.String && src.Kind() != reflect.String {
		return false
	}
	return src.ConvertibleTo(dst)
}

func clone(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v.Interface()
		}
		p := reflect.New(v.Type().Elem())
		p.Elem().Set(v.Elem())
		return p.Interface()
	case reflect.Map:
		if v.IsNil() {
			return v.Interface()
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface()
	case reflect.Slice:
		if v.IsNil() {
			return v.Interface()
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(out, v)
		return out.Interface()
	default:
		return v.Interface()
	}
}

// Normalize reduces a field value to a plain representation suitable for
// snapshots and change sets: pointers are dereferenced (nil stays nil), named
// integer and string types lose their names, times are reported in UTC.
func Normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Type() == timeType {
		return rv.Interface().(time.Time).UTC()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	default:
		return rv.Interface()
	}
}

// Equal compares two field values after normalization.
func Equal(a, b any) bool {
	na, nb := Normalize(a), Normalize(b)
	if ta, ok := na.(time.Time); ok {
		tb, ok := nb.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(na, nb)
}
