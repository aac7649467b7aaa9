package filter

import (
	"strings"

	"github.com/billie-coop/vitrine/internal/catalog"
)

// Match returns the products whose code equals the trimmed text, preserving
// order. Blank text returns a copy of the whole list.
func Match(products []catalog.Product, text string) []catalog.Product {
	term := strings.TrimSpace(text)
	if term == "" {
		return append([]catalog.Product(nil), products...)
	}

	matched := make([]catalog.Product, 0, 1)
	for _, p := range products {
		if p.Code() == term {
			matched = append(matched, p)
		}
	}
	return matched
}
