// Package schema derives persistence metadata from entity struct tags.
//
// A persisted field carries a `db` tag naming its column:
//
//	ID        id.ContactID `db:"id,pk"`
//	Family    *string      `db:"family"`
//	ContactID id.ContactID `db:"contact_id" assoc:"contact"`
//	Changes   Changes      `db:"changes,json"`
//
// A field with an `assoc` tag is a single-valued association: the column holds
// the associated entity's id and the association is reported under the tag's
// name. Fields without a `db` tag (or tagged "-") are not persisted; this is
// where multi-valued associations live.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/jinzhu/inflection"
)

// TableNamer overrides the derived table name.
type TableNamer interface {
	TableName() string
}

// EntityNamer overrides the type tag recorded for an entity (defaults to the
// Go type name).
type EntityNamer interface {
	EntityName() string
}

var (
	ErrNotEntity  = errors.New("schema: not a registered entity")
	ErrNoPrimary  = errors.New("schema: entity has no primary key")
	tableNamerTyp = reflect.TypeOf((*TableNamer)(nil)).Elem()
	nameNamerTyp  = reflect.TypeOf((*EntityNamer)(nil)).Elem()
)

// Field describes one persisted column.
type Field struct {
	Name   string // Go field name
	Column string
	Assoc  string // association name, empty for scalars
	PK     bool
	JSON   bool
	index  []int
}

// Key is the name a field is reported under in snapshots and change sets.
func (f Field) Key() string {
	if f.Assoc != "" {
		return f.Assoc
	}
	return f.Column
}

func (f Field) IsAssociation() bool { return f.Assoc != "" }

// Metadata describes a registered entity type.
type Metadata struct {
	Type   reflect.Type // struct type, never a pointer
	Name   string
	Table  string
	Fields []Field
	pk     int
}

// PK returns the primary key field.
func (m *Metadata) PK() (Field, bool) {
	if m.pk < 0 {
		return Field{}, false
	}
	return m.Fields[m.pk], true
}

// Columns lists column names in declaration order.
func (m *Metadata) Columns() []string {
	cols := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		cols[i] = f.Column
	}
	return cols
}

// Registry caches metadata per entity type. The zero value is not usable; use
// NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*Metadata
	byName map[string]*Metadata
}

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*Metadata),
		byName: make(map[string]*Metadata),
	}
}

// Register parses and caches the metadata of each entity's type. Entities are
// passed as pointers to their struct.
func (r *Registry) Register(entities ...any) error {
	for _, e := range entities {
		if _, err := r.register(e); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is Register for package-level wiring.
func (r *Registry) MustRegister(entities ...any) *Registry {
	if err := r.Register(entities...); err != nil {
		panic(err)
	}
	return r
}

// Of returns the metadata for entity's type.
func (r *Registry) Of(entity any) (*Metadata, error) {
	typ, err := structType(entity)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	m, ok := r.byType[typ]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotEntity, typ)
	}
	return m, nil
}

// ByName looks up metadata by entity type tag.
func (r *Registry) ByName(name string) (*Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byName[name]
	return m, ok
}

func (r *Registry) register(entity any) (*Metadata, error) {
	typ, err := structType(entity)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.byType[typ]; ok {
		return m, nil
	}
	m, err := parse(typ)
	if err != nil {
		return nil, err
	}
	if other, ok := r.byName[m.Name]; ok {
		return nil, fmt.Errorf("schema: entity name %q used by %v and %v", m.Name, other.Type, typ)
	}
	r.byType[typ] = m
	r.byName[m.Name] = m
	return m, nil
}

func structType(entity any) (reflect.Type, error) {
	if entity == nil {
		return nil, errors.New("schema: nil entity")
	}
	typ := reflect.TypeOf(entity)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: unsupported entity %T", entity)
	}
	return typ, nil
}

func parse(typ reflect.Type) (*Metadata, error) {
	if typ.Name() == "" {
		return nil, fmt.Errorf("schema: cannot register anonymous struct %v", typ)
	}
	m := &Metadata{
		Type:  typ,
		Name:  entityName(typ),
		Table: tableName(typ),
		pk:    -1,
	}
	if err := collect(m, typ, nil); err != nil {
		return nil, err
	}
	if len(m.Fields) == 0 {
		return nil, fmt.Errorf("schema: %v has no db-tagged fields", typ)
	}
	return m, nil
}

// collect appends the persisted fields of typ, descending into embedded
// structs that carry no db tag of their own.
func collect(m *Metadata, typ reflect.Type, prefix []int) error {
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		index := append(append([]int(nil), prefix...), sf.Index...)
		tag, ok := sf.Tag.Lookup("db")
		if !ok && sf.Anonymous {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				if err := collect(m, et, index); err != nil {
					return err
				}
			}
			continue
		}
		if !ok || tag == "-" || !sf.IsExported() {
			continue
		}
		parts := strings.Split(tag, ",")
		f := Field{
			Name:   sf.Name,
			Column: strings.TrimSpace(parts[0]),
			Assoc:  sf.Tag.Get("assoc"),
			index:  index,
		}
		if f.Column == "" {
			f.Column = toSnakeCase(sf.Name)
		}
		for _, opt := range parts[1:] {
			switch strings.TrimSpace(opt) {
			case "pk":
				f.PK = true
			case "json":
				f.JSON = true
			}
		}
		if f.PK {
			if m.pk >= 0 {
				return fmt.Errorf("schema: %v declares more than one primary key", m.Type)
			}
			switch sf.Type.Kind() {
			case reflect.Int, reflect.Int32, reflect.Int64:
			default:
				return fmt.Errorf("schema: %v primary key must be an integer", m.Type)
			}
			m.pk = len(m.Fields)
		}
		m.Fields = append(m.Fields, f)
	}
	return nil
}

func entityName(typ reflect.Type) string {
	if reflect.PointerTo(typ).Implements(nameNamerTyp) {
		if n, ok := reflect.New(typ).Interface().(EntityNamer); ok {
			if name := strings.TrimSpace(n.EntityName()); name != "" {
				return name
			}
		}
	}
	return typ.Name()
}

func tableName(typ reflect.Type) string {
	if reflect.PointerTo(typ).Implements(tableNamerTyp) {
		if n, ok := reflect.New(typ).Interface().(TableNamer); ok {
			if name := strings.TrimSpace(n.TableName()); name != "" {
				return name
			}
		}
	}
	return inflection.Plural(toSnakeCase(typ.Name()))
}

func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
