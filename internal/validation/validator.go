// Package validation applies declarative per-field rule chains to incoming
// requests and short-circuits the route pipeline when any rule fails.
package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	violationsKey = "validation.violations"
	bodyKey       = "validation.body"
)

// Violation is a single field-level validation failure.
type Violation struct {
	Type     string      `json:"type"`
	Field    string      `json:"field"`
	Location Location    `json:"location"`
	Value    interface{} `json:"value,omitempty"`
	Message  string      `json:"message"`
}

// Input is the raw request data the rules are evaluated against.
type Input struct {
	Params map[string]string
	Body   map[string]interface{}
}

func (in Input) lookup(f FieldRules) (interface{}, bool) {
	switch f.Location {
	case Params:
		v, ok := in.Params[f.Field]
		return v, ok
	case Body:
		v, ok := in.Body[f.Field]
		if v == nil {
			return nil, false
		}
		return v, ok
	}
	return nil, false
}

// Validator evaluates FieldRules with go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the product rule tags registered.
func New() (*Validator, error) {
	v := validator.New()
	if err := registerRules(v); err != nil {
		return nil, err
	}
	return &Validator{validate: v}, nil
}

// Validate runs every rule of every field and returns the failures in field
// declaration order, then rule order. A missing value fails every rule.
func (v *Validator) Validate(in Input, fields ...FieldRules) []Violation {
	var violations []Violation
	for _, f := range fields {
		value, present := in.lookup(f)
		for _, rule := range f.Rules {
			if present && v.validate.Var(value, rule.Tag) == nil {
				continue
			}
			violations = append(violations, Violation{
				Type:     "field",
				Field:    f.Field,
				Location: f.Location,
				Value:    value,
				Message:  rule.Message,
			})
		}
	}
	return violations
}

// Check returns a route stage that records violations for the given fields.
// It never responds itself; HandleInputErrors decides.
func (v *Validator) Check(fields ...FieldRules) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := Input{Params: map[string]string{}, Body: BodyOf(c)}
		for _, f := range fields {
			if f.Location == Params {
				in.Params[f.Field] = utils.CopyString(c.Params(f.Field))
			}
		}
		if found := v.Validate(in, fields...); len(found) > 0 {
			c.Locals(violationsKey, append(Violations(c), found...))
		}
		return c.Next()
	}
}

// HandleInputErrors responds 400 with every recorded violation, or passes on.
func HandleInputErrors(c *fiber.Ctx) error {
	if violations := Violations(c); len(violations) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": violations,
		})
	}
	return c.Next()
}

// Violations returns the violations recorded so far for the request.
func Violations(c *fiber.Ctx) []Violation {
	violations, _ := c.Locals(violationsKey).([]Violation)
	return violations
}

// BodyOf decodes the JSON object body once per request. Anything that is not
// a JSON object yields an empty body.
func BodyOf(c *fiber.Ctx) map[string]interface{} {
	if body, ok := c.Locals(bodyKey).(map[string]interface{}); ok {
		return body
	}
	body := map[string]interface{}{}
	if raw := c.Body(); len(raw) > 0 {
		var decoded map[string]interface{}
		if err := c.App().Config().JSONDecoder(raw, &decoded); err == nil && decoded != nil {
			body = decoded
		}
	}
	c.Locals(bodyKey, body)
	return body
}
