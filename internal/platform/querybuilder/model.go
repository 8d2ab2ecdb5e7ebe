package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds a single-row INSERT from the `db` tags of a struct.
// suffix is appended verbatim, e.g. "ON CONFLICT (public_id) DO NOTHING".
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	fields, err := taggedFields(model)
	if err != nil {
		return "", nil, err
	}

	var s statement
	s.write("INSERT INTO ", table, " (")
	for i, f := range fields {
		if i > 0 {
			s.write(", ")
		}
		s.write(f.column)
	}
	s.write(") VALUES (")
	for i, f := range fields {
		if i > 0 {
			s.write(", ")
		}
		s.bind(f.value)
	}
	s.write(")")
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		s.write(" ", suffix)
	}

	return s.result()
}

// UpdateModel sets every `db` tagged column of model on the rows matched by where.
func UpdateModel(table string, model any, where ...Condition) (string, []any, error) {
	fields, err := taggedFields(model)
	if err != nil {
		return "", nil, err
	}

	b := Update(table).Where(where...)
	for _, f := range fields {
		b.Set(f.column, f.value)
	}
	return b.ToSQL()
}

type taggedField struct {
	column string
	value  any
}

func taggedFields(model any) ([]taggedField, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	fields := make([]taggedField, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		column, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		column = strings.TrimSpace(column)
		if column == "" || column == "-" {
			continue
		}
		fields = append(fields, taggedField{column: column, value: value.Field(i).Interface()})
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return fields, nil
}
