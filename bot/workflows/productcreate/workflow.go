package productcreate

import (
	"context"
	"log/slog"

	"BazaarBot/bot/workflow"
	"BazaarBot/entity"
)

// Workflow ID
const (
	WorkflowID workflow.WorkflowID = "product_create"
)

// Step IDs
const (
	StepName        workflow.StepID = "name"
	StepPrice       workflow.StepID = "price"
	StepDescription workflow.StepID = "description"
	StepPhoto       workflow.StepID = "photo"
	StepCategory    workflow.StepID = "category"
	StepStock       workflow.StepID = "stock"
	StepCommit      workflow.StepID = "commit"
)

// State data keys
const (
	KeyName        = "name"
	KeyPrice       = "price"
	KeyDescription = "description"
	KeyImage       = "image"
	KeyImageMime   = "image_mime"
	KeyCategoryID  = "category_id"
	KeyStock       = "stock"
)

// Catalog defines the persistence operations the wizard commits through.
type Catalog interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
	CreateProduct(ctx context.Context, draft entity.ProductDraft) (*entity.Product, error)
}

// PhotoFetcher downloads a photo from the chat transport by file id,
// returning the raw bytes and their mime type.
type PhotoFetcher interface {
	DownloadPhoto(ctx context.Context, fileID string) ([]byte, string, error)
}

// ProductCreateWorkflow drives the admin's add-product wizard.
type ProductCreateWorkflow struct {
	steps   map[workflow.StepID]workflow.Step
	catalog Catalog
	photos  PhotoFetcher
	log     *slog.Logger
}

// New creates the product creation workflow.
func New(catalog Catalog, photos PhotoFetcher, log *slog.Logger) *ProductCreateWorkflow {
	w := &ProductCreateWorkflow{
		steps:   make(map[workflow.StepID]workflow.Step),
		catalog: catalog,
		photos:  photos,
		log:     log,
	}
	w.registerSteps()
	return w
}

// ID returns the workflow ID.
func (w *ProductCreateWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

// InitialStep returns the first step.
func (w *ProductCreateWorkflow) InitialStep() workflow.StepID {
	return StepName
}

// GetStep returns a step by ID.
func (w *ProductCreateWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *ProductCreateWorkflow) registerSteps() {
	w.steps[StepName] = NewNameStep()
	w.steps[StepPrice] = NewPriceStep()
	w.steps[StepDescription] = NewDescriptionStep()
	w.steps[StepPhoto] = NewPhotoStep(w.photos)
	w.steps[StepCategory] = NewCategoryStep(w.catalog)
	w.steps[StepStock] = NewStockStep()
	w.steps[StepCommit] = NewCommitStep(w.catalog, w.log)
}
