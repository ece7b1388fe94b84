package models

import "fmt"

// FieldType is the storage type of a schema field.
type FieldType string

const (
	TypeInteger FieldType = "integer"
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
)

// Constraint is a predicate every stored value of a field must satisfy.
type Constraint string

const (
	NotEmpty Constraint = "not_empty"
	Positive Constraint = "positive"
)

// Field describes a single attribute of an entity.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	Example     interface{}
	Default     interface{}
	ReadOnly    bool
	Constraints []Constraint
}

// Schema is an explicit description of an entity's shape, independent of any
// persistence binding.
type Schema struct {
	Name   string
	Fields []Field
}

// FieldError reports the first field that breaks the schema.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q %s", e.Field, e.Reason)
}

// Field returns the named field description.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Check verifies values against the writable fields of the schema, in field
// order. Missing values are accepted when the field declares a default.
func (s Schema) Check(values map[string]interface{}) error {
	for _, f := range s.Fields {
		if f.ReadOnly {
			continue
		}
		v, ok := values[f.Name]
		if !ok {
			if f.Default != nil {
				continue
			}
			return &FieldError{Field: f.Name, Reason: "is required"}
		}
		if !f.Type.accepts(v) {
			return &FieldError{Field: f.Name, Reason: fmt.Sprintf("must be of type %s", f.Type)}
		}
		for _, c := range f.Constraints {
			if !c.holds(v) {
				return &FieldError{Field: f.Name, Reason: fmt.Sprintf("violates constraint %s", c)}
			}
		}
	}
	return nil
}

func (t FieldType) accepts(v interface{}) bool {
	switch t {
	case TypeInteger:
		_, ok := v.(int64)
		return ok
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		_, ok := v.(float64)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	}
	return false
}

func (c Constraint) holds(v interface{}) bool {
	switch c {
	case NotEmpty:
		s, ok := v.(string)
		return ok && s != ""
	case Positive:
		n, ok := v.(float64)
		return ok && n > 0
	}
	return true
}
