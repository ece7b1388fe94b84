package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tags registered on the validator by New.
const (
	TagInteger  = "int_like"
	TagNotEmpty = "not_empty"
	TagNumeric  = "numeric_like"
	TagPositive = "positive"
	TagBoolean  = "bool_like"
)

// Rule pairs a validator tag with the message reported when it fails.
type Rule struct {
	Tag     string
	Message string
}

// Location tells where a field is read from.
type Location string

const (
	Params Location = "params"
	Body   Location = "body"
)

// FieldRules is the ordered rule chain applied to one request field.
type FieldRules struct {
	Field    string
	Location Location
	Rules    []Rule
}

var (
	ProductID = FieldRules{Field: "id", Location: Params, Rules: []Rule{
		{Tag: TagInteger, Message: "El id debe ser un numero entero"},
	}}
	ProductName = FieldRules{Field: "name", Location: Body, Rules: []Rule{
		{Tag: TagNotEmpty, Message: "El nombre es obligatorio"},
	}}
	ProductPrice = FieldRules{Field: "price", Location: Body, Rules: []Rule{
		{Tag: TagNumeric, Message: "Valor no valido"},
		{Tag: TagNotEmpty, Message: "El numero es obligatorio"},
		{Tag: TagPositive, Message: "El precio debe ser mayor a 0"},
	}}
	ProductAvailability = FieldRules{Field: "availability", Location: Body, Rules: []Rule{
		{Tag: TagBoolean, Message: "Valor de disponibilidad no valido"},
	}}
)

func registerRules(v *validator.Validate) error {
	funcs := map[string]validator.Func{
		TagInteger:  isInteger,
		TagNotEmpty: isNotEmpty,
		TagNumeric:  isNumeric,
		TagPositive: isPositive,
		TagBoolean:  isBoolean,
	}
	for tag, fn := range funcs {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isInteger(fl validator.FieldLevel) bool {
	_, ok := AsInt(fl.Field().Interface())
	return ok
}

func isNotEmpty(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return s != ""
	}
	return true
}

func isNumeric(fl validator.FieldLevel) bool {
	_, ok := AsFloat(fl.Field().Interface())
	return ok
}

func isPositive(fl validator.FieldLevel) bool {
	f, ok := AsFloat(fl.Field().Interface())
	return ok && f > 0
}

func isBoolean(fl validator.FieldLevel) bool {
	_, ok := AsBool(fl.Field().Interface())
	return ok
}

// AsInt converts a path or body value to an integer ID.
func AsInt(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	case float64:
		if t != float64(int64(t)) {
			return 0, false
		}
		return int64(t), true
	}
	return 0, false
}

// AsFloat accepts JSON numbers and numeric strings.
func AsFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// AsBool accepts JSON booleans plus "true", "false", "1", "0" and the numbers 1 and 0.
func AsBool(v interface{}) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch t {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	case float64:
		switch t {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}
