package validation

import (
	"unicode/utf8"

	"catalogo/internal/models"
)

// FieldError is a single validation failure attached to one input field.
type FieldError struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// Rule pairs a field name and its fixed user-facing message with the
// predicate that accepts or rejects the input.
type Rule struct {
	Field   string
	Message string
	Valid   func(in models.ProductInput) bool
}

// productRules lists every create-product rule in reporting order. Rules are
// independent; all of them run on every input so the caller sees the full
// set of violations at once.
var productRules = []Rule{
	{
		Field:   "name",
		Message: "Name must be between 3 and 80 characters",
		Valid: func(in models.ProductInput) bool {
			// Length limits count characters, not bytes, so accented
			// names are measured the same as plain ASCII ones.
			n := utf8.RuneCountInString(in.Name)
			return n >= 3 && n <= 80
		},
	},
	{
		Field:   "description",
		Message: "Description must have at least 10 characters",
		Valid: func(in models.ProductInput) bool {
			return utf8.RuneCountInString(in.Description) >= 10
		},
	},
	{
		Field:   "price",
		Message: "Price must be positive",
		Valid: func(in models.ProductInput) bool {
			return in.Price > 0
		},
	},
	{
		Field:   "categories",
		Message: "Must have at least one category",
		Valid: func(in models.ProductInput) bool {
			// A null categories list in the JSON body unmarshals to nil,
			// which is treated the same as an empty list.
			return len(in.Categories) > 0
		},
	},
}

// ValidateProduct runs every rule against the input and returns the
// violations in rule order. A nil return means the input is valid.
func ValidateProduct(in models.ProductInput) []FieldError {
	var fieldErrors []FieldError
	for _, rule := range productRules {
		if !rule.Valid(in) {
			fieldErrors = append(fieldErrors, FieldError{
				FieldName: rule.Field,
				Message:   rule.Message,
			})
		}
	}
	return fieldErrors
}
