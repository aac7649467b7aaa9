// Package catalog defines the product records exchanged with the backend and the
// form payload used to create them.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Product is a catalog entry as served by the /products endpoint.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	PictureURL  string  `json:"pictureUrl"`
}

// Code returns the decimal form of the product ID, the value users type in the
// filter box.
func (p Product) Code() string {
	return strconv.Itoa(p.ID)
}

// FormattedPrice renders the price the way the product cards show it.
func (p Product) FormattedPrice() string {
	return FormatPrice(p.Price)
}

// FormatPrice formats a price in reais with two decimals and a comma separator,
// e.g. "R$ 12,50". No thousands grouping is applied.
func FormatPrice(price float64) string {
	return "R$ " + strings.Replace(fmt.Sprintf("%.2f", price), ".", ",", 1)
}

// MaxID returns the highest ID in the list, or 0 for an empty list.
func MaxID(products []Product) int {
	highest := 0
	for _, p := range products {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest
}
