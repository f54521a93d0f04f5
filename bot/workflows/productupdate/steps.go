package productupdate

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"BazaarBot/bot/i18n"
	"BazaarBot/bot/menus"
	"BazaarBot/bot/workflow"
	"BazaarBot/bot/workflow/ui"
	"BazaarBot/entity"
	"BazaarBot/internal/lib/sl"
)

// BaseStep provides common functionality for all steps.
type BaseStep struct {
	id workflow.StepID
}

func (s *BaseStep) ID() workflow.StepID {
	return s.id
}

func (s *BaseStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	return workflow.StepResult{}
}

func (s *BaseStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	return workflow.StepResult{}
}

func (s *BaseStep) HandleCallback(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState, data string) workflow.StepResult {
	return workflow.StepResult{}
}

func (s *BaseStep) HandlePhoto(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	return workflow.StepResult{}
}

func (s *BaseStep) HandleContact(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	return workflow.StepResult{}
}

func abortToAdminMenu(b *tgbotapi.Bot, state *workflow.SessionState, msgKey string) workflow.StepResult {
	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, msgKey), &tgbotapi.SendMessageOpts{
		ReplyMarkup: menus.Admin(state.Lang),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{Cancel: true}
}

// keepCurrent reports whether the input means "keep the stored value".
func keepCurrent(text string) bool {
	text = strings.TrimSpace(text)
	return text == "" || text == "-"
}

// LoadStep - fetch the product being edited and stash its current values
type LoadStep struct {
	BaseStep
	catalog Catalog
}

func NewLoadStep(catalog Catalog) *LoadStep {
	return &LoadStep{BaseStep: BaseStep{id: StepLoad}, catalog: catalog}
}

func (s *LoadStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	product, err := s.catalog.GetProduct(ctx, state.Owner.EntityID)
	if err != nil || product == nil {
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.not_found"), &tgbotapi.SendMessageOpts{
			ReplyMarkup: menus.Admin(state.Lang),
		})
		return workflow.StepResult{Cancel: true}
	}

	return workflow.StepResult{
		NextStep: StepName,
		UpdateState: map[string]any{
			KeyCurName:        product.Name,
			KeyCurPrice:       product.Price,
			KeyCurDescription: product.Description,
			KeyCurCategoryID:  product.CategoryID,
			KeyCurStock:       product.Stock,
		},
	}
}

// NameStep - new name, "-" keeps the current one
type NameStep struct {
	BaseStep
}

func NewNameStep() *NameStep {
	return &NameStep{BaseStep: BaseStep{id: StepName}}
}

func (s *NameStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	msg := i18n.T(state.Lang, "product.ask_name_current", state.GetString(KeyCurName))
	_, err := b.SendMessage(state.ChatID, msg, nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *NameStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	name := strings.TrimSpace(c.EffectiveMessage.Text)
	if keepCurrent(name) {
		name = state.GetString(KeyCurName)
	}
	return workflow.StepResult{
		NextStep:    StepPrice,
		UpdateState: map[string]any{KeyName: name},
	}
}

// PriceStep - new price, "-" keeps the current one, bad numbers abort
type PriceStep struct {
	BaseStep
}

func NewPriceStep() *PriceStep {
	return &PriceStep{BaseStep: BaseStep{id: StepPrice}}
}

func (s *PriceStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	msg := i18n.T(state.Lang, "product.ask_price_current", state.GetInt64(KeyCurPrice))
	_, err := b.SendMessage(state.ChatID, msg, nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *PriceStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	text := strings.TrimSpace(c.EffectiveMessage.Text)
	price := state.GetInt64(KeyCurPrice)
	if !keepCurrent(text) {
		parsed, err := strconv.ParseInt(text, 10, 64)
		if err != nil || parsed <= 0 {
			return abortToAdminMenu(b, state, "product.invalid_price")
		}
		price = parsed
	}
	return workflow.StepResult{
		NextStep:    StepDescription,
		UpdateState: map[string]any{KeyPrice: price},
	}
}

// DescriptionStep - new description, "-" keeps the current one
type DescriptionStep struct {
	BaseStep
}

func NewDescriptionStep() *DescriptionStep {
	return &DescriptionStep{BaseStep: BaseStep{id: StepDescription}}
}

func (s *DescriptionStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	current := state.GetString(KeyCurDescription)
	if current == "" {
		current = "—"
	}
	msg := i18n.T(state.Lang, "product.ask_description_current", current)
	_, err := b.SendMessage(state.ChatID, msg, nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *DescriptionStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	description := strings.TrimSpace(c.EffectiveMessage.Text)
	if keepCurrent(description) {
		description = state.GetString(KeyCurDescription)
	}
	return workflow.StepResult{
		NextStep:    StepPhoto,
		UpdateState: map[string]any{KeyDescription: description},
	}
}

// PhotoStep - new photo, "-" keeps the stored image
type PhotoStep struct {
	BaseStep
	photos PhotoFetcher
}

func NewPhotoStep(photos PhotoFetcher) *PhotoStep {
	return &PhotoStep{BaseStep: BaseStep{id: StepPhoto}, photos: photos}
}

func (s *PhotoStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.ask_photo_current"), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *PhotoStep) HandlePhoto(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	photos := c.EffectiveMessage.Photo
	if len(photos) == 0 {
		return abortToAdminMenu(b, state, "product.photo_required")
	}

	fileID := photos[len(photos)-1].FileId
	image, mime, err := s.photos.DownloadPhoto(ctx, fileID)
	if err != nil {
		return workflow.StepResult{Error: err}
	}

	return workflow.StepResult{
		NextStep: StepCategory,
		UpdateState: map[string]any{
			KeyImage:     image,
			KeyImageMime: mime,
		},
	}
}

func (s *PhotoStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	if keepCurrent(c.EffectiveMessage.Text) {
		// Empty image in the draft means "leave the stored blob alone".
		return workflow.StepResult{NextStep: StepCategory}
	}
	return abortToAdminMenu(b, state, "product.photo_required")
}

// CategoryStep - selection list with the current category marked
type CategoryStep struct {
	BaseStep
	catalog Catalog
}

func NewCategoryStep(catalog Catalog) *CategoryStep {
	return &CategoryStep{BaseStep: BaseStep{id: StepCategory}, catalog: catalog}
}

func (s *CategoryStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.categories_failed"), &tgbotapi.SendMessageOpts{
			ReplyMarkup: menus.Admin(state.Lang),
		})
		return workflow.StepResult{Error: err}
	}

	currentID := state.GetString(KeyCurCategoryID)
	currentName := "—"
	items := make([]ui.SelectableItem, len(categories))
	for i, cat := range categories {
		items[i] = ui.SelectableItem{
			ID:     cat.ID,
			Text:   cat.Title(string(state.Lang)),
			Marked: cat.ID == currentID,
		}
		if cat.ID == currentID {
			currentName = cat.Title(string(state.Lang))
		}
	}

	msg := i18n.T(state.Lang, "product.ask_category_current", currentName)
	_, err = b.SendMessage(state.ChatID, msg, &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.SelectionKeyboard(items),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *CategoryStep) HandleCallback(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil || cb.SelectedID() == "" {
		return workflow.StepResult{}
	}
	return workflow.StepResult{
		NextStep:    StepStock,
		UpdateState: map[string]any{KeyCategoryID: cb.SelectedID()},
	}
}

// StockStep - new stock, "-" keeps the current one, bad numbers abort
type StockStep struct {
	BaseStep
}

func NewStockStep() *StockStep {
	return &StockStep{BaseStep: BaseStep{id: StepStock}}
}

func (s *StockStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	msg := i18n.T(state.Lang, "product.ask_stock_current", state.GetInt(KeyCurStock))
	_, err := b.SendMessage(state.ChatID, msg, nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *StockStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	text := strings.TrimSpace(c.EffectiveMessage.Text)
	stock := state.GetInt(KeyCurStock)
	if !keepCurrent(text) {
		parsed, err := strconv.Atoi(text)
		if err != nil || parsed < 0 {
			return abortToAdminMenu(b, state, "product.invalid_stock")
		}
		stock = parsed
	}
	return workflow.StepResult{
		NextStep:    StepCommit,
		UpdateState: map[string]any{KeyStock: stock},
	}
}

// CommitStep - persist the merged draft
type CommitStep struct {
	BaseStep
	catalog Catalog
	log     *slog.Logger
}

func NewCommitStep(catalog Catalog, log *slog.Logger) *CommitStep {
	return &CommitStep{BaseStep: BaseStep{id: StepCommit}, catalog: catalog, log: log}
}

func (s *CommitStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	categoryID := state.GetString(KeyCategoryID)
	if categoryID == "" {
		categoryID = state.GetString(KeyCurCategoryID)
	}

	draft := entity.ProductDraft{
		Name:        state.GetString(KeyName),
		Price:       state.GetInt64(KeyPrice),
		Description: state.GetString(KeyDescription),
		Image:       state.GetBytes(KeyImage),
		ImageMime:   state.GetString(KeyImageMime),
		CategoryID:  categoryID,
		Stock:       state.GetInt(KeyStock),
	}

	product, err := s.catalog.UpdateProduct(ctx, state.Owner.EntityID, draft)
	if err != nil {
		s.log.Error("product update commit",
			slog.String("product_id", state.Owner.EntityID),
			slog.Int64("user_id", state.Owner.UserID),
			sl.Err(err),
		)
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.create_failed"), &tgbotapi.SendMessageOpts{
			ReplyMarkup: menus.Admin(state.Lang),
		})
		return workflow.StepResult{Error: err}
	}

	s.log.Info("product updated",
		slog.String("product_id", product.ID),
		slog.Int64("user_id", state.Owner.UserID),
	)

	_, err = b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.updated"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: menus.Admin(state.Lang),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{Complete: true}
}
