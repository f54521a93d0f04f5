package productupdate

import (
	"context"
	"log/slog"

	"BazaarBot/bot/workflow"
	"BazaarBot/entity"
)

// Workflow ID
const (
	WorkflowID workflow.WorkflowID = "product_update"
)

// Step IDs
const (
	StepLoad        workflow.StepID = "load"
	StepName        workflow.StepID = "name"
	StepPrice       workflow.StepID = "price"
	StepDescription workflow.StepID = "description"
	StepPhoto       workflow.StepID = "photo"
	StepCategory    workflow.StepID = "category"
	StepStock       workflow.StepID = "stock"
	StepCommit      workflow.StepID = "commit"
)

// State data keys. The cur_* keys hold the product's stored values,
// loaded once when the wizard starts; empty or "-" input falls back to
// them step by step.
const (
	KeyName        = "name"
	KeyPrice       = "price"
	KeyDescription = "description"
	KeyImage       = "image"
	KeyImageMime   = "image_mime"
	KeyCategoryID  = "category_id"
	KeyStock       = "stock"

	KeyCurName         = "cur_name"
	KeyCurPrice        = "cur_price"
	KeyCurDescription  = "cur_description"
	KeyCurCategoryID   = "cur_category_id"
	KeyCurCategoryName = "cur_category_name"
	KeyCurStock        = "cur_stock"
)

// Catalog defines the persistence operations the wizard reads and
// commits through.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	UpdateProduct(ctx context.Context, id string, draft entity.ProductDraft) (*entity.Product, error)
}

// PhotoFetcher downloads a photo from the chat transport by file id.
type PhotoFetcher interface {
	DownloadPhoto(ctx context.Context, fileID string) ([]byte, string, error)
}

// ProductUpdateWorkflow drives the admin's edit-product wizard. The
// session owner key carries the product id, so editing product A and
// product B are distinct sessions.
type ProductUpdateWorkflow struct {
	steps   map[workflow.StepID]workflow.Step
	catalog Catalog
	photos  PhotoFetcher
	log     *slog.Logger
}

// New creates the product update workflow.
func New(catalog Catalog, photos PhotoFetcher, log *slog.Logger) *ProductUpdateWorkflow {
	w := &ProductUpdateWorkflow{
		steps:   make(map[workflow.StepID]workflow.Step),
		catalog: catalog,
		photos:  photos,
		log:     log,
	}
	w.registerSteps()
	return w
}

// ID returns the workflow ID.
func (w *ProductUpdateWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

// InitialStep returns the first step.
func (w *ProductUpdateWorkflow) InitialStep() workflow.StepID {
	return StepLoad
}

// GetStep returns a step by ID.
func (w *ProductUpdateWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *ProductUpdateWorkflow) registerSteps() {
	w.steps[StepLoad] = NewLoadStep(w.catalog)
	w.steps[StepName] = NewNameStep()
	w.steps[StepPrice] = NewPriceStep()
	w.steps[StepDescription] = NewDescriptionStep()
	w.steps[StepPhoto] = NewPhotoStep(w.photos)
	w.steps[StepCategory] = NewCategoryStep(w.catalog)
	w.steps[StepStock] = NewStockStep()
	w.steps[StepCommit] = NewCommitStep(w.catalog, w.log)
}
