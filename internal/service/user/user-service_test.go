package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"BazaarBot/entity"
)

type storageMock struct {
	users    map[int64]*entity.User
	upserted *entity.User

	fieldKey   string
	fieldValue string
}

func newStorageMock() *storageMock {
	return &storageMock{users: make(map[int64]*entity.User)}
}

func (m *storageMock) GetUserByTelegramId(telegramId int64) (*entity.User, error) {
	return m.users[telegramId], nil
}

func (m *storageMock) UpsertUser(user entity.User) error {
	m.upserted = &user
	m.users[user.TelegramId] = &user
	return nil
}

func (m *storageMock) SetUserField(_ int64, field, value string) error {
	m.fieldKey = field
	m.fieldValue = value
	return nil
}

func (m *storageMock) SetUserBlocked(telegramId int64, blocked bool) error {
	if u, ok := m.users[telegramId]; ok {
		u.Blocked = blocked
	}
	return nil
}

func (m *storageMock) GetAdmins() ([]entity.User, error) { return nil, nil }

func (m *storageMock) ListUsers() ([]entity.User, error) { return nil, nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetOrRegisterCreatesOnFirstContact(t *testing.T) {
	storage := newStorageMock()
	svc := NewUserService(storage, discardLogger())

	user, err := svc.GetOrRegister(context.Background(), 10, 10, "en")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, user.UUID)
	require.Equal(t, int64(10), user.TelegramId)
	require.Equal(t, entity.LangEn, user.Language)
	require.NotNil(t, storage.upserted)
}

func TestGetOrRegisterReturnsExisting(t *testing.T) {
	storage := newStorageMock()
	existing := entity.NewUser(10, 10, "fa")
	existing.FullName = "Existing Buyer"
	storage.users[10] = existing

	svc := NewUserService(storage, discardLogger())

	user, err := svc.GetOrRegister(context.Background(), 10, 10, "en")
	require.NoError(t, err)
	require.Same(t, existing, user)
	require.Nil(t, storage.upserted)
}

func TestGetOrRegisterUnknownLanguageFallsBackToFa(t *testing.T) {
	svc := NewUserService(newStorageMock(), discardLogger())

	user, err := svc.GetOrRegister(context.Background(), 10, 10, "de")
	require.NoError(t, err)
	require.Equal(t, entity.LangFa, user.Language)
}

func TestUpdateFieldMapsWizardTargets(t *testing.T) {
	storage := newStorageMock()
	svc := NewUserService(storage, discardLogger())

	require.NoError(t, svc.UpdateField(context.Background(), 10, "name", "Maryam"))
	require.Equal(t, "full_name", storage.fieldKey)
	require.Equal(t, "Maryam", storage.fieldValue)

	require.NoError(t, svc.UpdateField(context.Background(), 10, "address", "Valiasr St. 12"))
	require.Equal(t, "address", storage.fieldKey)
}

func TestUpdateFieldRejectsUnknown(t *testing.T) {
	storage := newStorageMock()
	svc := NewUserService(storage, discardLogger())

	err := svc.UpdateField(context.Background(), 10, "is_admin", "true")
	require.ErrorIs(t, err, ErrUnknownField)
	require.Empty(t, storage.fieldKey)
}

func TestSetLanguageNormalizes(t *testing.T) {
	storage := newStorageMock()
	svc := NewUserService(storage, discardLogger())

	require.NoError(t, svc.SetLanguage(context.Background(), 10, "en"))
	require.Equal(t, entity.LangEn, storage.fieldValue)

	require.NoError(t, svc.SetLanguage(context.Background(), 10, "ru"))
	require.Equal(t, entity.LangFa, storage.fieldValue)
}
