package entity

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name" validate:"required"`
	NameEn    string    `json:"name_en" bson:"name_en"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func NewCategory(name, nameEn string) *Category {
	return &Category{
		ID:        uuid.NewString(),
		Name:      name,
		NameEn:    nameEn,
		CreatedAt: time.Now(),
	}
}

// Title returns the category name in the requested locale.
func (c *Category) Title(lang string) string {
	if lang == LangEn && c.NameEn != "" {
		return c.NameEn
	}
	return c.Name
}

type Product struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name" validate:"required"`
	Price       int64     `json:"price" bson:"price" validate:"required,gt=0"`
	Description string    `json:"description" bson:"description"`
	ImageFileID string    `json:"image_file_id" bson:"image_file_id"`
	CategoryID  string    `json:"category_id" bson:"category_id" validate:"required"`
	Stock       int       `json:"stock" bson:"stock" validate:"gte=0"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func NewProduct() *Product {
	return &Product{
		ID:        uuid.NewString(),
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (p *Product) InStock() bool {
	return p.Active && p.Stock > 0
}
