package command

import (
	"reflect"
	"sync"
)

// parameterNameCache caches reflection results for parameter name lookups.
// Key is reflect.Type, value is the derived name string.
var parameterNameCache sync.Map

// parameterName derives a command name from its parameter type.
// Pointers are dereferenced; unnamed types fall back to their string form.
// Results are cached to avoid repeated reflection overhead.
func parameterName[P any]() string {
	t := reflect.TypeOf((*P)(nil)).Elem()
	if name, ok := parameterNameCache.Load(t); ok {
		return name.(string)
	}

	original := t
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	var name string
	if t.Name() != "" {
		name = t.Name()
	} else {
		name = t.String()
	}

	parameterNameCache.Store(original, name)
	return name
}
