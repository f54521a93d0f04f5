package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DeliveryPending   = "pending"
	DeliveryInTransit = "in_transit"
	DeliveryDelivered = "delivered"
	DeliveryCancelled = "cancelled"
)

type Delivery struct {
	ID             string    `json:"id" bson:"id"`
	OrderID        string    `json:"order_id" bson:"order_id" validate:"required"`
	Latitude       float64   `json:"latitude" bson:"latitude"`
	Longitude      float64   `json:"longitude" bson:"longitude"`
	AddressDetails string    `json:"address_details" bson:"address_details"`
	Status         string    `json:"status" bson:"status"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

func NewDelivery(orderID string, lat, lon float64, details string) *Delivery {
	return &Delivery{
		ID:             uuid.NewString(),
		OrderID:        orderID,
		Latitude:       lat,
		Longitude:      lon,
		AddressDetails: details,
		Status:         DeliveryPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}
