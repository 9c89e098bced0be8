package farmstand

import "strings"

// CategoryAll is the wildcard category that matches every product.
const CategoryAll = "all"

// FilterProducts returns the products matching both predicates: category must
// equal the given category (unless it is CategoryAll) and the name must
// contain the search term case-insensitively. An empty term matches
// everything, so FilterProducts(list, "all", "") returns the full list.
func FilterProducts(list []Product, category, term string) []Product {
	term = strings.ToLower(strings.TrimSpace(term))

	filtered := make([]Product, 0, len(list))
	for _, p := range list {
		if category != CategoryAll && p.Category != category {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// DefaultCatalog is the storefront's starter dataset, inserted by the seed
// command into an empty products table.
var DefaultCatalog = []Product{
	{ID: "p1", Name: "Tomatoes", Category: "vegetable", Price: 1.20, Unit: "kg", Img: "https://images.unsplash.com/photo-1567306226416-28f0efdc88ce?q=80&w=800&auto=format&fit=crop"},
	{ID: "p2", Name: "Watermelon", Category: "fruit", Price: 5.00, Unit: "each", Img: "https://images.unsplash.com/photo-1501004318641-b39e6451bec6?q=80&w=800&auto=format&fit=crop"},
	{ID: "p3", Name: "Cucumber", Category: "vegetable", Price: 0.90, Unit: "each", Img: "https://images.unsplash.com/photo-1528825871115-3581a5387919?q=80&w=800&auto=format&fit=crop"},
	{ID: "p4", Name: "Butternut", Category: "vegetable", Price: 2.50, Unit: "each", Img: "https://images.unsplash.com/photo-1608460151804-7a4f4a1e4fb9?q=80&w=800&auto=format&fit=crop"},
	{ID: "p5", Name: "Peppers", Category: "vegetable", Price: 1.80, Unit: "kg", Img: "https://images.unsplash.com/photo-1569741333666-54a1f5d37f3b?q=80&w=800&auto=format&fit=crop"},
}
