package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"BazaarBot/entity"
	"BazaarBot/internal/lib/sl"
)

var ErrUnknownField = errors.New("unknown profile field")

// Storage is the persistence surface the user service needs.
type Storage interface {
	GetUserByTelegramId(telegramId int64) (*entity.User, error)
	UpsertUser(user entity.User) error
	SetUserField(telegramId int64, field, value string) error
	SetUserBlocked(telegramId int64, blocked bool) error
	GetAdmins() ([]entity.User, error)
	ListUsers() ([]entity.User, error)
}

type Service struct {
	storage Storage
	log     *slog.Logger
}

func NewUserService(storage Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		log:     logger.With(sl.Module("user service")),
	}
}

// GetOrRegister returns the user for a chat, creating the record on
// first contact.
func (s *Service) GetOrRegister(ctx context.Context, telegramId, chatId int64, language string) (*entity.User, error) {
	existing, err := s.storage.GetUserByTelegramId(telegramId)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	created := entity.NewUser(telegramId, chatId, language)
	if err := s.storage.UpsertUser(*created); err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.log.Info("user registered",
		slog.Int64("telegram_id", telegramId),
		slog.String("language", created.Language),
	)
	return created, nil
}

func (s *Service) ByTelegramId(ctx context.Context, telegramId int64) (*entity.User, error) {
	return s.storage.GetUserByTelegramId(telegramId)
}

// profileFields maps wizard edit targets to document keys. Anything
// outside this map never reaches storage.
var profileFields = map[string]string{
	"name":    "full_name",
	"phone":   "phone",
	"email":   "email",
	"address": "address",
}

func (s *Service) UpdateField(ctx context.Context, telegramId int64, field, value string) error {
	key, ok := profileFields[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return s.storage.SetUserField(telegramId, key, value)
}

// SavePhone stores a phone number shared via the contact button.
func (s *Service) SavePhone(ctx context.Context, telegramId int64, phone string) error {
	return s.storage.SetUserField(telegramId, "phone", phone)
}

func (s *Service) SetLanguage(ctx context.Context, telegramId int64, language string) error {
	if language != entity.LangEn {
		language = entity.LangFa
	}
	return s.storage.SetUserField(telegramId, "language", language)
}

func (s *Service) Admins(ctx context.Context) ([]entity.User, error) {
	return s.storage.GetAdmins()
}

func (s *Service) Users(ctx context.Context) ([]entity.User, error) {
	return s.storage.ListUsers()
}

func (s *Service) Block(ctx context.Context, telegramId int64, blocked bool) error {
	return s.storage.SetUserBlocked(telegramId, blocked)
}
