package domain

import "strings"

// Dish is a pre-ordered line item attached to a reservation. Dishes are
// informational and never checked against the menu.
type Dish struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

// GroupDishes merges items with the same name (case-insensitive), summing
// quantities and keeping the first price seen. Items without a name or with a
// non-positive quantity are dropped. Order of first appearance is kept.
func GroupDishes(items []Dish) []Dish {
	out := make([]Dish, 0, len(items))
	index := make(map[string]int, len(items))

	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" || it.Quantity <= 0 {
			continue
		}

		key := strings.ToLower(name)
		if i, ok := index[key]; ok {
			out[i].Quantity += it.Quantity
			continue
		}

		index[key] = len(out)
		out = append(out, Dish{Name: name, Quantity: it.Quantity, PriceCents: it.PriceCents})
	}

	return out
}

func (r *Reservation) DishesTotal() int64 {
	var total int64
	for _, d := range r.Dishes {
		total += int64(d.Quantity) * d.PriceCents
	}
	return total
}
