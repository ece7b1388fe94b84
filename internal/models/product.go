package models

import "time"

// Product represents a product in the catalog.
// Values are returned by the repositories as copies; mutating one never
// changes the stored record.
type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Availability bool      `json:"availability"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// ProductFields holds the mutable fields of a product.
// Availability is nil when the caller did not supply it.
type ProductFields struct {
	Name         string
	Price        float64
	Availability *bool
}

// Values returns the fields keyed by their schema names.
func (f ProductFields) Values() map[string]interface{} {
	values := map[string]interface{}{
		"name":  f.Name,
		"price": f.Price,
	}
	if f.Availability != nil {
		values["availability"] = *f.Availability
	}
	return values
}

// ProductSchema describes the stored shape of a product.
var ProductSchema = Schema{
	Name: "Product",
	Fields: []Field{
		{Name: "id", Type: TypeInteger, Description: "The product ID", Example: 1, ReadOnly: true},
		{Name: "name", Type: TypeString, Description: "The product Name", Example: "Samsung s24", Constraints: []Constraint{NotEmpty}},
		{Name: "price", Type: TypeNumber, Description: "The product Price", Example: 200, Constraints: []Constraint{Positive}},
		{Name: "availability", Type: TypeBoolean, Description: "The product Availability", Example: true, Default: true},
	},
}
