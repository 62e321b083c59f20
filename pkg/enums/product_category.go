package enums

import "fmt"

// ProductCategory groups catalog items for storefront filtering.
type ProductCategory string

const (
	ProductCategoryAlimentacion ProductCategory = "alimentacion"
	ProductCategoryHigiene      ProductCategory = "higiene"
	ProductCategoryRopa         ProductCategory = "ropa"
	ProductCategoryJuguetes     ProductCategory = "juguetes"
	ProductCategoryPaseo        ProductCategory = "paseo"
	ProductCategoryHogar        ProductCategory = "hogar"
)

var validProductCategories = []ProductCategory{
	ProductCategoryAlimentacion,
	ProductCategoryHigiene,
	ProductCategoryRopa,
	ProductCategoryJuguetes,
	ProductCategoryPaseo,
	ProductCategoryHogar,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
