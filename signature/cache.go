package signature

import (
	"reflect"
	"sync"
)

// fieldCache caches struct field metadata so constructor parsing and
// auto-wiring do not walk the same struct type twice.
type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]Field
}

// Field stores metadata about one struct field.
type Field struct {
	Index    int
	Name     string
	Type     reflect.Type
	Tag      reflect.StructTag
	Exported bool
	Embedded bool
}

var defaultCache = newFieldCache()

func newFieldCache() *fieldCache {
	return &fieldCache{
		fields: make(map[reflect.Type][]Field),
	}
}

// Fields returns the field metadata of a struct type (or pointer to struct).
// Non-struct types yield nil.
func Fields(typ reflect.Type) []Field {
	return defaultCache.get(typ)
}

func (fc *fieldCache) get(typ reflect.Type) []Field {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	// Fast path: check cache with read lock
	fc.mu.RLock()
	fields, exists := fc.fields[typ]
	fc.mu.RUnlock()

	if exists {
		return fields
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	// Double-check after acquiring write lock
	if fields, exists = fc.fields[typ]; exists {
		return fields
	}

	if typ.Kind() != reflect.Struct {
		fc.fields[typ] = nil
		return nil
	}

	fields = make([]Field, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		fields = append(fields, Field{
			Index:    i,
			Name:     f.Name,
			Type:     f.Type,
			Tag:      f.Tag,
			Exported: f.PkgPath == "",
			Embedded: f.Anonymous,
		})
	}

	fc.fields[typ] = fields
	return fields
}

// StructField returns the reflect.StructField described by f.
func (f Field) StructField() reflect.StructField {
	return reflect.StructField{Name: f.Name, Type: f.Type, Tag: f.Tag, Index: []int{f.Index}, Anonymous: f.Embedded}
}
