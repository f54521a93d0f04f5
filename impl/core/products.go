package core

import (
	"context"
	"fmt"
	"io"

	"BazaarBot/entity"
)

func (c *Core) GetProduct(id string) (*entity.Product, error) {
	if c.catalog == nil {
		return nil, fmt.Errorf("catalog service not initialized")
	}
	return c.catalog.GetProduct(context.Background(), id)
}

func (c *Core) ListProducts(categoryID string) ([]entity.Product, error) {
	if c.catalog == nil {
		return nil, fmt.Errorf("catalog service not initialized")
	}
	if categoryID != "" {
		return c.catalog.ListActiveByCategory(context.Background(), categoryID)
	}
	return c.catalog.ListProducts(context.Background())
}

func (c *Core) CreateProduct(draft entity.ProductDraft) (*entity.Product, error) {
	if c.catalog == nil {
		return nil, fmt.Errorf("catalog service not initialized")
	}
	return c.catalog.CreateProduct(context.Background(), draft)
}

func (c *Core) UpdateProduct(id string, draft entity.ProductDraft) (*entity.Product, error) {
	if c.catalog == nil {
		return nil, fmt.Errorf("catalog service not initialized")
	}
	return c.catalog.UpdateProduct(context.Background(), id, draft)
}

func (c *Core) ProductFeedback(id string) ([]entity.Feedback, error) {
	if c.catalog == nil {
		return nil, fmt.Errorf("catalog service not initialized")
	}
	return c.catalog.ProductFeedback(context.Background(), id)
}

func (c *Core) ListCategories() ([]entity.Category, error) {
	if c.catalog == nil {
		return nil, fmt.Errorf("catalog service not initialized")
	}
	return c.catalog.ListCategories(context.Background())
}

func (c *Core) CreateCategory(name, nameEn string) (*entity.Category, error) {
	if c.catalog == nil {
		return nil, fmt.Errorf("catalog service not initialized")
	}
	return c.catalog.CreateCategory(context.Background(), name, nameEn)
}

func (c *Core) ProductImage(id string) (string, entity.FileMetadata, io.ReadCloser, error) {
	if c.catalog == nil {
		return "", entity.FileMetadata{}, nil, fmt.Errorf("catalog service not initialized")
	}
	return c.catalog.ProductImage(context.Background(), id)
}
