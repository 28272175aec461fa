package domain

// CartItem is a denormalized snapshot of a product at the moment it was
// added to the cart, plus the chosen quantity. The copy is deliberate:
// later catalog edits or deletions must not rewrite cart contents.
type CartItem struct {
	ProductID   string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
}

// NewCartItem snapshots a product into a cart line with the given quantity.
func NewCartItem(p *Product, quantity int) CartItem {
	return CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Quantity:    quantity,
	}
}

// Subtotal returns price * quantity for this line.
func (c CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}
