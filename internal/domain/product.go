package domain

// Product is an active, orderable catalog entry. Number is the short code customers type.
type Product struct {
	ProductID string
	Number    string
	Name      string
	Price     float64
}

// FindProductByNumber returns the first product whose number matches exactly.
func FindProductByNumber(products []Product, number string) (Product, bool) {
	for _, p := range products {
		if p.Number == number {
			return p, true
		}
	}
	return Product{}, false
}
