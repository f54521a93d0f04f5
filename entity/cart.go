package entity

import "time"

type CartItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Name      string `json:"name" bson:"name"`
	Price     int64  `json:"price" bson:"price"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

type Cart struct {
	TelegramId int64      `json:"telegram_id" bson:"telegram_id"`
	Items      []CartItem `json:"items" bson:"items"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Total sums item prices at the quantities currently in the cart.
func (c *Cart) Total() int64 {
	if c == nil {
		return 0
	}
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// Add merges a product into the cart, bumping quantity on repeat adds.
func (c *Cart) Add(productID, name string, price int64, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
	})
}

// Remove drops a product from the cart entirely.
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}
