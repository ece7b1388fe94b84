// Package docs builds the OpenAPI description of the products API.
package docs

import (
	"productapi/internal/models"

	"gopkg.in/yaml.v3"
)

// Document is an OpenAPI document as a generic tree.
type Document map[string]interface{}

// YAML renders the document as YAML.
func (d Document) YAML() ([]byte, error) {
	return yaml.Marshal(map[string]interface{}(d))
}

// SchemaObject converts a schema description into an OpenAPI schema object.
func SchemaObject(s models.Schema) map[string]interface{} {
	properties := map[string]interface{}{}
	for _, f := range s.Fields {
		prop := map[string]interface{}{
			"type":        string(f.Type),
			"description": f.Description,
		}
		if f.Example != nil {
			prop["example"] = f.Example
		}
		if f.Default != nil {
			prop["default"] = f.Default
		}
		if f.ReadOnly {
			prop["readOnly"] = true
		}
		for _, c := range f.Constraints {
			switch c {
			case models.NotEmpty:
				prop["minLength"] = 1
			case models.Positive:
				prop["exclusiveMinimum"] = true
				prop["minimum"] = 0
			}
		}
		properties[f.Name] = prop
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
}

// Products returns the document for the product routes mounted at basePath.
func Products(basePath string) Document {
	ref := map[string]interface{}{"$ref": "#/components/schemas/Product"}
	tags := []string{"Products"}
	idParam := func(description string) []interface{} {
		return []interface{}{map[string]interface{}{
			"in":          "path",
			"name":        "id",
			"description": description,
			"required":    true,
			"schema":      map[string]interface{}{"type": "integer"},
		}}
	}
	jsonContent := func(schema interface{}) map[string]interface{} {
		return map[string]interface{}{
			"application/json": map[string]interface{}{"schema": schema},
		}
	}
	response := func(description string, schema interface{}) map[string]interface{} {
		r := map[string]interface{}{"description": description}
		if schema != nil {
			r["content"] = jsonContent(schema)
		}
		return r
	}
	input := func(withAvailability bool) map[string]interface{} {
		props := map[string]interface{}{
			"name":  map[string]interface{}{"type": "string", "example": "Pocophone x7 pro"},
			"price": map[string]interface{}{"type": "number", "example": 370},
		}
		if withAvailability {
			props["availability"] = map[string]interface{}{"type": "boolean", "example": true}
		}
		return map[string]interface{}{
			"required": true,
			"content": jsonContent(map[string]interface{}{
				"type":       "object",
				"properties": props,
			}),
		}
	}

	return Document{
		"openapi": "3.0.2",
		"info": map[string]interface{}{
			"title":       "Rest Api Go / Fiber",
			"version":     "1.0.0",
			"description": "API Docs for Products",
		},
		"tags": []interface{}{
			map[string]interface{}{"name": "Products", "description": "Api operations related to products"},
		},
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"Product": SchemaObject(models.ProductSchema),
			},
		},
		"paths": map[string]interface{}{
			basePath: map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get a List of products",
					"tags":        tags,
					"description": "Return a list of Products",
					"responses": map[string]interface{}{
						"200": response("Successful response", map[string]interface{}{"type": "array", "items": ref}),
					},
				},
				"post": map[string]interface{}{
					"summary":     "Create a new Product",
					"tags":        tags,
					"description": "Returns a new record in the database",
					"requestBody": input(false),
					"responses": map[string]interface{}{
						"201": response("Successful response", ref),
						"400": response("Invalid Request - invalid input data", nil),
					},
				},
			},
			basePath + "/{id}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get a Product by ID",
					"tags":        tags,
					"description": "Return a product based on its unique ID",
					"parameters":  idParam("The ID of the product to retrieve"),
					"responses": map[string]interface{}{
						"200": response("Successful Response", ref),
						"404": response("Not found", nil),
						"400": response("Bad Request - Invalid ID", nil),
					},
				},
				"put": map[string]interface{}{
					"summary":     "Updates a product with user input",
					"tags":        tags,
					"description": "Returns the updated product",
					"parameters":  idParam("The ID of the product to update"),
					"requestBody": input(true),
					"responses": map[string]interface{}{
						"200": response("Successful response", ref),
						"400": response("Bad Request - Invalid ID or Invalid input data", nil),
						"404": response("Product Not Found", nil),
					},
				},
				"patch": map[string]interface{}{
					"summary":     "Update Product Availability",
					"tags":        tags,
					"description": "Returns the updated availability",
					"parameters":  idParam("The ID of the product to update"),
					"responses": map[string]interface{}{
						"200": response("Successful response", ref),
						"400": response("Bad Request - Invalid ID", nil),
						"404": response("Product Not Found", nil),
					},
				},
				"delete": map[string]interface{}{
					"summary":     "Deletes a Product by a given ID",
					"tags":        tags,
					"description": "Deletes a product by its ID and returns a confirmation message.",
					"parameters":  idParam("The ID of the product to delete"),
					"responses": map[string]interface{}{
						"200": response("Product successfully deleted", map[string]interface{}{
							"type":    "string",
							"example": "Producto Eliminado",
						}),
						"404": response("Product not found", nil),
						"400": response("Bad Request - Invalid ID supplied", nil),
					},
				},
			},
		},
	}
}
