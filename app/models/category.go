package models

// DefaultCategories are seeded at startup when no other list is configured.
var DefaultCategories = []string{"True Crime", "Fanfics", "Autorais"}

// Validate checks the category against the column constraints.
func (c *Category) Validate() error {
	return validate.Struct(c)
}
