package entity

import "time"

// GridFS file kinds.
const (
	FileKindProductImage = "product-image"
	FileKindReceipt      = "receipt"
)

type FileMetadata struct {
	Kind        string    `json:"kind" bson:"kind"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	ContentType string    `json:"content_type" bson:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
