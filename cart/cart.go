// Package cart holds the per-session shopping cart. Carts live only in
// memory: they are never written to the document store, and they disappear
// when the order is submitted or the session is reset.
package cart

import (
	"sync"

	"go-qrmenu-ordering/models"
	"go-qrmenu-ordering/money"
)

// Cart aggregates menu items into quantity-merged line items. All methods
// are safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []models.OrderItem
}

func New() *Cart {
	return &Cart{}
}

// Add puts one unit of the menu item into the cart. Adding an item that is
// already present increments its quantity instead of duplicating the line.
func (c *Cart) Add(itemID, name string, price money.Cents) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Item_id == itemID {
			c.items[i].Quantity++
			c.items[i].Total = c.items[i].Price.Mul(c.items[i].Quantity)
			return
		}
	}
	c.items = append(c.items, models.OrderItem{
		Item_id:  itemID,
		Name:     name,
		Price:    price,
		Quantity: 1,
		Total:    price,
	})
}

// UpdateQuantity sets the line quantity; qty <= 0 removes the line.
func (c *Cart) UpdateQuantity(itemID string, qty int) {
	if qty <= 0 {
		c.Remove(itemID)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Item_id == itemID {
			c.items[i].Quantity = qty
			c.items[i].Total = c.items[i].Price.Mul(qty)
			return
		}
	}
}

// Remove drops the line with the given menu item id.
func (c *Cart) Remove(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Item_id == itemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the current line items.
func (c *Cart) Items() []models.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.OrderItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalAmount is the sum of all line totals.
func (c *Cart) TotalAmount() money.Cents {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum money.Cents
	for _, it := range c.items {
		sum += it.Total
	}
	return sum
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}
