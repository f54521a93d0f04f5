package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"BazaarBot/entity"
	"BazaarBot/internal/lib/sl"
	"BazaarBot/internal/lib/validate"
)

var ErrProductNotFound = errors.New("product not found")

// Storage is the persistence surface the catalog service needs.
type Storage interface {
	UpsertProduct(product *entity.Product) error
	GetProduct(id string) (*entity.Product, error)
	ListProducts(activeOnly bool) ([]entity.Product, error)
	ListProductsByCategory(categoryID string, activeOnly bool) ([]entity.Product, error)
	UpsertCategory(category *entity.Category) error
	GetCategory(id string) (*entity.Category, error)
	ListCategories() ([]entity.Category, error)
	InsertFeedback(feedback *entity.Feedback) error
	FeedbackByProduct(productID string) ([]entity.Feedback, error)
	UploadFile(filename string, reader io.Reader, meta entity.FileMetadata) (primitive.ObjectID, int64, error)
	DownloadFile(fileID primitive.ObjectID) (string, entity.FileMetadata, io.ReadCloser, error)
	DeleteFile(fileID primitive.ObjectID) error
}

type Service struct {
	storage Storage
	log     *slog.Logger
}

func NewCatalogService(storage Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		log:     logger.With(sl.Module("catalog service")),
	}
}

// CreateProduct persists a fully assembled draft from the add-product
// wizard. The image lands in GridFS; the product document carries only
// the file id.
func (s *Service) CreateProduct(ctx context.Context, draft entity.ProductDraft) (*entity.Product, error) {
	if err := validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("invalid product draft: %w", err)
	}

	product := entity.NewProduct()
	product.Name = draft.Name
	product.Price = draft.Price
	product.Description = draft.Description
	product.CategoryID = draft.CategoryID
	product.Stock = draft.Stock

	if len(draft.Image) > 0 {
		fileID, err := s.storeImage(product.ID, draft)
		if err != nil {
			return nil, err
		}
		product.ImageFileID = fileID.Hex()
	}

	if err := s.storage.UpsertProduct(product); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}

	s.log.Info("product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)
	return product, nil
}

// UpdateProduct applies an edit draft to an existing product. An empty
// draft image keeps the stored one; a new image replaces it and the old
// GridFS file is removed.
func (s *Service) UpdateProduct(ctx context.Context, id string, draft entity.ProductDraft) (*entity.Product, error) {
	product, err := s.storage.GetProduct(id)
	if err != nil {
		return nil, fmt.Errorf("loading product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if err := validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("invalid product draft: %w", err)
	}

	product.Name = draft.Name
	product.Price = draft.Price
	product.Description = draft.Description
	product.CategoryID = draft.CategoryID
	product.Stock = draft.Stock

	if len(draft.Image) > 0 {
		oldFileID := product.ImageFileID

		fileID, err := s.storeImage(product.ID, draft)
		if err != nil {
			return nil, err
		}
		product.ImageFileID = fileID.Hex()

		if oldFileID != "" {
			if oid, err := primitive.ObjectIDFromHex(oldFileID); err == nil {
				if err := s.storage.DeleteFile(oid); err != nil {
					s.log.Error("deleting replaced image", slog.String("product_id", id), sl.Err(err))
				}
			}
		}
	}

	if err := s.storage.UpsertProduct(product); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}

	s.log.Info("product updated", slog.String("product_id", product.ID))
	return product, nil
}

func (s *Service) storeImage(productID string, draft entity.ProductDraft) (primitive.ObjectID, error) {
	meta := entity.FileMetadata{
		Kind:        entity.FileKindProductImage,
		OwnerID:     productID,
		ContentType: draft.ImageMime,
		UploadedAt:  time.Now(),
	}
	fileID, _, err := s.storage.UploadFile("product-"+productID, bytes.NewReader(draft.Image), meta)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("storing image: %w", err)
	}
	return fileID, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return s.storage.GetProduct(id)
}

func (s *Service) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.storage.ListProducts(false)
}

// ListActiveByCategory returns the storefront view of one category.
func (s *Service) ListActiveByCategory(ctx context.Context, categoryID string) ([]entity.Product, error) {
	return s.storage.ListProductsByCategory(categoryID, true)
}

func (s *Service) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.storage.ListCategories()
}

func (s *Service) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	return s.storage.GetCategory(id)
}

func (s *Service) CreateCategory(ctx context.Context, name, nameEn string) (*entity.Category, error) {
	category := entity.NewCategory(name, nameEn)
	if err := validate.Struct(category); err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}
	if err := s.storage.UpsertCategory(category); err != nil {
		return nil, fmt.Errorf("saving category: %w", err)
	}
	return category, nil
}

// ProductImage streams the stored image of a product.
func (s *Service) ProductImage(ctx context.Context, productID string) (string, entity.FileMetadata, io.ReadCloser, error) {
	product, err := s.storage.GetProduct(productID)
	if err != nil {
		return "", entity.FileMetadata{}, nil, err
	}
	if product == nil || product.ImageFileID == "" {
		return "", entity.FileMetadata{}, nil, ErrProductNotFound
	}

	fileID, err := primitive.ObjectIDFromHex(product.ImageFileID)
	if err != nil {
		return "", entity.FileMetadata{}, nil, fmt.Errorf("image file id: %w", err)
	}
	return s.storage.DownloadFile(fileID)
}
