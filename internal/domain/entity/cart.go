package entity

import (
	"errors"
	"time"
)

var ErrCartItemNotFound = errors.New("item not found in cart")

type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(userID string) *Cart {
	return &Cart{
		UserID:    userID,
		Items:     make([]CartItem, 0),
		UpdatedAt: time.Now().UTC(),
	}
}

func (c *Cart) indexOf(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Quantity(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

func (c *Cart) AddItem(productID string, quantity int) error {
	if productID == "" {
		return errors.New("product ID cannot be empty for cart item")
	}
	if quantity <= 0 {
		return errors.New("quantity to add must be positive")
	}
	if i := c.indexOf(productID); i >= 0 {
		c.Items[i].Quantity += quantity
	} else {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateItemQuantity sets the quantity; zero or less removes the line.
func (c *Cart) UpdateItemQuantity(productID string, newQuantity int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrCartItemNotFound
	}
	if newQuantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	} else {
		c.Items[i].Quantity = newQuantity
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (c *Cart) RemoveItem(productID string) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrCartItemNotFound
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now().UTC()
}

// Wishlist is a per-user set of product ids.
type Wishlist struct {
	UserID     string   `json:"userId"`
	ProductIDs []string `json:"productIds"`
}
