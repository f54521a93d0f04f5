package product

import (
	"io"

	"BazaarBot/entity"
)

type Core interface {
	GetProduct(id string) (*entity.Product, error)
	ListProducts(categoryID string) ([]entity.Product, error)
	CreateProduct(draft entity.ProductDraft) (*entity.Product, error)
	UpdateProduct(id string, draft entity.ProductDraft) (*entity.Product, error)
	ListCategories() ([]entity.Category, error)
	CreateCategory(name, nameEn string) (*entity.Category, error)
	ProductImage(id string) (string, entity.FileMetadata, io.ReadCloser, error)
	ProductFeedback(id string) ([]entity.Feedback, error)
}
