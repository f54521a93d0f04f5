package productcreate

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

// abortToAdminMenu sends a localized rejection and re-renders the admin
// menu. Invalid input terminates the wizard; the admin starts over.
func abortToAdminMenu(b *tgbotapi.Bot, state *workflow.SessionState, msgKey string) workflow.StepResult {
	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, msgKey), &tgbotapi.SendMessageOpts{
		ReplyMarkup: menus.Admin(state.Lang),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{Cancel: true}
}

// NameStep - ask for the product name
type NameStep struct {
	BaseStep
}

func NewNameStep() *NameStep {
	return &NameStep{BaseStep: BaseStep{id: StepName}}
}

func (s *NameStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.ask_name"), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *NameStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	name := strings.TrimSpace(c.EffectiveMessage.Text)
	if name == "" {
		return abortToAdminMenu(b, state, "error.generic")
	}
	return workflow.StepResult{
		NextStep:    StepPrice,
		UpdateState: map[string]any{KeyName: name},
	}
}

// PriceStep - ask for the price; non-numeric or non-positive input
// terminates the wizard.
type PriceStep struct {
	BaseStep
}

func NewPriceStep() *PriceStep {
	return &PriceStep{BaseStep: BaseStep{id: StepPrice}}
}

func (s *PriceStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.ask_price"), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *PriceStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	price, err := strconv.ParseInt(strings.TrimSpace(c.EffectiveMessage.Text), 10, 64)
	if err != nil || price <= 0 {
		return abortToAdminMenu(b, state, "product.invalid_price")
	}
	return workflow.StepResult{
		NextStep:    StepDescription,
		UpdateState: map[string]any{KeyPrice: price},
	}
}

// DescriptionStep - optional, "-" skips
type DescriptionStep struct {
	BaseStep
}

func NewDescriptionStep() *DescriptionStep {
	return &DescriptionStep{BaseStep: BaseStep{id: StepDescription}}
}

func (s *DescriptionStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.ask_description"), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *DescriptionStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	description := strings.TrimSpace(c.EffectiveMessage.Text)
	if description == "-" {
		description = ""
	}
	return workflow.StepResult{
		NextStep:    StepPhoto,
		UpdateState: map[string]any{KeyDescription: description},
	}
}

// PhotoStep - require an actual photo; link-based images are rejected
// since products are stored as binary blobs.
type PhotoStep struct {
	BaseStep
	photos PhotoFetcher
}

func NewPhotoStep(photos PhotoFetcher) *PhotoStep {
	return &PhotoStep{BaseStep: BaseStep{id: StepPhoto}, photos: photos}
}

func (s *PhotoStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.ask_photo"), nil)
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

	// Telegram sends several resolutions; the last one is the largest.
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
	return abortToAdminMenu(b, state, "product.photo_required")
}

// CategoryStep - single-select from the rendered category list
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

	items := make([]ui.SelectableItem, len(categories))
	for i, cat := range categories {
		items[i] = ui.SelectableItem{ID: cat.ID, Text: cat.Title(string(state.Lang))}
	}

	keyboard := ui.SelectionKeyboard(items)
	_, err = b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.ask_category"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: keyboard,
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

// StockStep - integer >= 0, same abort policy as price
type StockStep struct {
	BaseStep
}

func NewStockStep() *StockStep {
	return &StockStep{BaseStep: BaseStep{id: StepStock}}
}

func (s *StockStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.ask_stock"), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *StockStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	stock, err := strconv.Atoi(strings.TrimSpace(c.EffectiveMessage.Text))
	if err != nil || stock < 0 {
		return abortToAdminMenu(b, state, "product.invalid_stock")
	}
	return workflow.StepResult{
		NextStep:    StepCommit,
		UpdateState: map[string]any{KeyStock: stock},
	}
}

// CommitStep - assemble the draft and persist it
type CommitStep struct {
	BaseStep
	catalog Catalog
	log     *slog.Logger
}

func NewCommitStep(catalog Catalog, log *slog.Logger) *CommitStep {
	return &CommitStep{BaseStep: BaseStep{id: StepCommit}, catalog: catalog, log: log}
}

func (s *CommitStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	draft := entity.ProductDraft{
		Name:        state.GetString(KeyName),
		Price:       state.GetInt64(KeyPrice),
		Description: state.GetString(KeyDescription),
		Image:       state.GetBytes(KeyImage),
		ImageMime:   state.GetString(KeyImageMime),
		CategoryID:  state.GetString(KeyCategoryID),
		Stock:       state.GetInt(KeyStock),
	}

	product, err := s.catalog.CreateProduct(ctx, draft)
	if err != nil {
		s.log.Error("product create commit",
			slog.Int64("user_id", state.Owner.UserID),
			sl.Err(err),
		)
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.create_failed"), &tgbotapi.SendMessageOpts{
			ReplyMarkup: menus.Admin(state.Lang),
		})
		return workflow.StepResult{Error: err}
	}

	s.log.Info("product created",
		slog.String("product_id", product.ID),
		slog.Int64("user_id", state.Owner.UserID),
	)

	_, err = b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.created"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: menus.Admin(state.Lang),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{Complete: true}
}
