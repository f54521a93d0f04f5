package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Order lifecycle statuses.
const (
	OrderPending            = "pending"
	OrderPaid               = "paid"
	OrderPaymentValidated   = "payment_validated"
	OrderPaymentInvalidated = "payment_invalidated"
	OrderShipped            = "shipped"
	OrderDelivered          = "delivered"
	OrderCancelled          = "cancelled"
)

type OrderItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Name      string `json:"name" bson:"name"`
	Price     int64  `json:"price" bson:"price"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

type Order struct {
	ID              string      `json:"id" bson:"id"`
	Number          int64       `json:"number" bson:"number"`
	UserUUID        string      `json:"user_uuid" bson:"user_uuid"`
	TelegramId      int64       `json:"telegram_id" bson:"telegram_id"`
	Items           []OrderItem `json:"items" bson:"items"`
	TotalAmount     int64       `json:"total_amount" bson:"total_amount"`
	Status          string      `json:"status" bson:"status"`
	TrackingNumber  string      `json:"tracking_number" bson:"tracking_number"`
	ReceiptFileID   string      `json:"receipt_file_id" bson:"receipt_file_id"`
	ReceiptMimeType string      `json:"receipt_mime_type" bson:"receipt_mime_type"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" bson:"updated_at"`
}

func NewOrder(userUUID string, telegramId int64) *Order {
	return &Order{
		ID:         uuid.NewString(),
		UserUUID:   userUUID,
		TelegramId: telegramId,
		Status:     OrderPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// MakeTrackingNumber builds the tracking code handed to the buyer
// after order confirmation: TRK<unix-millis><order-number>.
func MakeTrackingNumber(number int64, at time.Time) string {
	return fmt.Sprintf("TRK%d%d", at.UnixMilli(), number)
}

// CountsAsRevenue reports whether the order status contributes to
// revenue aggregates.
func CountsAsRevenue(status string) bool {
	switch status {
	case OrderPaymentValidated, OrderShipped, OrderDelivered:
		return true
	}
	return false
}
