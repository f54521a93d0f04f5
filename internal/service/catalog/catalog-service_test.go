package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"BazaarBot/entity"
)

type storageMock struct {
	products   map[string]*entity.Product
	categories []entity.Category
	feedback   []*entity.Feedback

	upserted    *entity.Product
	uploaded    int
	deletedFile primitive.ObjectID
}

func newStorageMock() *storageMock {
	return &storageMock{products: make(map[string]*entity.Product)}
}

func (m *storageMock) UpsertProduct(product *entity.Product) error {
	m.upserted = product
	m.products[product.ID] = product
	return nil
}

func (m *storageMock) GetProduct(id string) (*entity.Product, error) {
	return m.products[id], nil
}

func (m *storageMock) ListProducts(bool) ([]entity.Product, error) { return nil, nil }

func (m *storageMock) ListProductsByCategory(string, bool) ([]entity.Product, error) {
	return nil, nil
}

func (m *storageMock) UpsertCategory(*entity.Category) error { return nil }

func (m *storageMock) GetCategory(string) (*entity.Category, error) { return nil, nil }

func (m *storageMock) ListCategories() ([]entity.Category, error) { return m.categories, nil }

func (m *storageMock) InsertFeedback(feedback *entity.Feedback) error {
	m.feedback = append(m.feedback, feedback)
	return nil
}

func (m *storageMock) FeedbackByProduct(productID string) ([]entity.Feedback, error) {
	var out []entity.Feedback
	for _, f := range m.feedback {
		if f.ProductID == productID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *storageMock) UploadFile(string, io.Reader, entity.FileMetadata) (primitive.ObjectID, int64, error) {
	m.uploaded++
	return primitive.NewObjectID(), 0, nil
}

func (m *storageMock) DownloadFile(primitive.ObjectID) (string, entity.FileMetadata, io.ReadCloser, error) {
	return "", entity.FileMetadata{}, nil, nil
}

func (m *storageMock) DeleteFile(fileID primitive.ObjectID) error {
	m.deletedFile = fileID
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validDraft() entity.ProductDraft {
	return entity.ProductDraft{
		Name:       "Saffron",
		Price:      9000,
		CategoryID: "cat-1",
		Stock:      10,
	}
}

func TestCreateProduct(t *testing.T) {
	storage := newStorageMock()
	svc := NewCatalogService(storage, discardLogger())

	draft := validDraft()
	draft.Image = []byte{0xFF, 0xD8}
	draft.ImageMime = "image/jpeg"

	product, err := svc.CreateProduct(context.Background(), draft)
	require.NoError(t, err)
	require.NotEmpty(t, product.ID)
	require.Equal(t, "Saffron", product.Name)
	require.True(t, product.Active)
	require.NotEmpty(t, product.ImageFileID)
	require.Equal(t, 1, storage.uploaded)
	require.Same(t, product, storage.upserted)
}

func TestCreateProductRejectsInvalidDraft(t *testing.T) {
	storage := newStorageMock()
	svc := NewCatalogService(storage, discardLogger())

	draft := validDraft()
	draft.Price = 0

	_, err := svc.CreateProduct(context.Background(), draft)
	require.Error(t, err)
	require.Nil(t, storage.upserted)
}

func TestUpdateProductKeepsImageWhenDraftHasNone(t *testing.T) {
	storage := newStorageMock()
	existing := entity.NewProduct()
	existing.Name = "Old name"
	existing.Price = 100
	existing.CategoryID = "cat-1"
	existing.ImageFileID = primitive.NewObjectID().Hex()
	storage.products[existing.ID] = existing

	svc := NewCatalogService(storage, discardLogger())

	updated, err := svc.UpdateProduct(context.Background(), existing.ID, validDraft())
	require.NoError(t, err)
	require.Equal(t, "Saffron", updated.Name)
	require.Equal(t, existing.ImageFileID, updated.ImageFileID)
	require.Equal(t, 0, storage.uploaded)
	require.True(t, storage.deletedFile.IsZero())
}

func TestUpdateProductReplacesImage(t *testing.T) {
	storage := newStorageMock()
	existing := entity.NewProduct()
	existing.Name = "Old name"
	existing.Price = 100
	existing.CategoryID = "cat-1"
	oldFile := primitive.NewObjectID()
	existing.ImageFileID = oldFile.Hex()
	storage.products[existing.ID] = existing

	svc := NewCatalogService(storage, discardLogger())

	draft := validDraft()
	draft.Image = []byte{0xFF, 0xD8}
	draft.ImageMime = "image/jpeg"

	updated, err := svc.UpdateProduct(context.Background(), existing.ID, draft)
	require.NoError(t, err)
	require.NotEqual(t, oldFile.Hex(), updated.ImageFileID)
	require.Equal(t, 1, storage.uploaded)
	require.Equal(t, oldFile, storage.deletedFile)
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := NewCatalogService(newStorageMock(), discardLogger())

	_, err := svc.UpdateProduct(context.Background(), "missing", validDraft())
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddFeedback(t *testing.T) {
	storage := newStorageMock()
	product := entity.NewProduct()
	storage.products[product.ID] = product

	svc := NewCatalogService(storage, discardLogger())

	feedback, err := svc.AddFeedback(context.Background(), product.ID, 10, 5, "excellent")
	require.NoError(t, err)
	require.Equal(t, 5, feedback.Rating)
	require.Equal(t, "excellent", feedback.Comment)
	require.Len(t, storage.feedback, 1)

	list, err := svc.ProductFeedback(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestAddFeedbackRejectsBadRating(t *testing.T) {
	storage := newStorageMock()
	product := entity.NewProduct()
	storage.products[product.ID] = product

	svc := NewCatalogService(storage, discardLogger())

	_, err := svc.AddFeedback(context.Background(), product.ID, 10, 0, "")
	require.Error(t, err)
	require.Empty(t, storage.feedback)

	_, err = svc.AddFeedback(context.Background(), product.ID, 10, 6, "")
	require.Error(t, err)
	require.Empty(t, storage.feedback)
}

func TestAddFeedbackUnknownProduct(t *testing.T) {
	svc := NewCatalogService(newStorageMock(), discardLogger())

	_, err := svc.AddFeedback(context.Background(), "missing", 10, 4, "")
	require.ErrorIs(t, err, ErrProductNotFound)
}
