package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mydrive-server/internal/handler"
	"mydrive-server/internal/model"
	"mydrive-server/internal/security"
)

type MockShareService struct{ mock.Mock }

func (m *MockShareService) Share(ctx context.Context, ownerUUID string, itemType model.ItemType, itemUUID, granteeLogin string, permission model.Permission) (*model.SharedItem, error) {
	args := m.Called(ctx, ownerUUID, itemType, itemUUID, granteeLogin, permission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SharedItem), args.Error(1)
}

func (m *MockShareService) UpdateGrant(ctx context.Context, requesterUUID, grantUUID string, permission model.Permission) (*model.SharedItem, error) {
	args := m.Called(ctx, requesterUUID, grantUUID, permission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SharedItem), args.Error(1)
}

func (m *MockShareService) Revoke(ctx context.Context, requesterUUID, grantUUID string) error {
	return m.Called(ctx, requesterUUID, grantUUID).Error(0)
}

func (m *MockShareService) ListSharedWithMe(ctx context.Context, granteeLogin string) ([]model.SharedItemView, error) {
	args := m.Called(ctx, granteeLogin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SharedItemView), args.Error(1)
}

func (m *MockShareService) ListSharedByMe(ctx context.Context, ownerUUID string) ([]model.SharedItemView, error) {
	args := m.Called(ctx, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SharedItemView), args.Error(1)
}

func (m *MockShareService) ResolveEffectivePermission(ctx context.Context, exec sqlx.ExtContext, userUUID, userLogin string, itemType model.ItemType, itemUUID string) (model.Permission, error) {
	args := m.Called(ctx, exec, userUUID, userLogin, itemType, itemUUID)
	return args.Get(0).(model.Permission), args.Error(1)
}

func (m *MockShareService) RevokeForItems(ctx context.Context, exec sqlx.ExtContext, itemUUIDs []string) (int64, error) {
	args := m.Called(ctx, exec, itemUUIDs)
	return args.Get(0).(int64), args.Error(1)
}

// newShareRequest : запрос с claims в контексте, как после JWT middleware
func newShareRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	claims := &security.Claims{UserUUID: "owner-1", Login: "user1"}
	return req.WithContext(context.WithValue(req.Context(), security.UserContextKey, claims))
}

func TestShareHandler_ShareFile(t *testing.T) {
	created := time.Date(2026, 8, 23, 12, 34, 56, 0, time.UTC)

	t.Run("response uses wire field names", func(t *testing.T) {
		shareService := new(MockShareService)
		shareService.On("Share", mock.Anything, "owner-1", model.ItemTypeFile, "file-1", "user2", model.PermissionView).
			Return(&model.SharedItem{
				UUID:         "grant-1",
				OwnerUUID:    "owner-1",
				GranteeLogin: "user2",
				ItemType:     model.ItemTypeFile,
				ItemUUID:     "file-1",
				Permission:   model.PermissionView,
				CreatedAt:    created,
			}, nil)

		router := chi.NewRouter()
		router.Post("/api/shared/file/{item_id}", handler.NewShareHandler(shareService).ShareFile)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, newShareRequest(http.MethodPost, "/api/shared/file/file-1",
			`{"username":"user2","permissionLevel":"view"}`))

		require.Equal(t, http.StatusCreated, recorder.Code)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		assert.Equal(t, "grant-1", payload["id"])
		assert.Equal(t, "view", payload["permissionLevel"])
		assert.Equal(t, "user2", payload["shared_with"])
		assert.Equal(t, "user1", payload["owner"])
		assert.Equal(t, "2026-08-23T12:34:56Z", payload["created"])
		// внутренние имена полей модели наружу не утекают
		assert.NotContains(t, payload, "owner_uuid")
		assert.NotContains(t, payload, "grantee_login")
	})

	t.Run("bad permission level", func(t *testing.T) {
		shareService := new(MockShareService)
		router := chi.NewRouter()
		router.Post("/api/shared/file/{item_id}", handler.NewShareHandler(shareService).ShareFile)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, newShareRequest(http.MethodPost, "/api/shared/file/file-1",
			`{"username":"user2","permissionLevel":"admin"}`))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		shareService.AssertNotCalled(t, "Share", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestShareHandler_UpdateShare(t *testing.T) {
	t.Run("response uses wire field names", func(t *testing.T) {
		shareService := new(MockShareService)
		shareService.On("UpdateGrant", mock.Anything, "owner-1", "grant-1", model.PermissionEdit).
			Return(&model.SharedItem{
				UUID:         "grant-1",
				OwnerUUID:    "owner-1",
				GranteeLogin: "user2",
				ItemType:     model.ItemTypeDirectory,
				ItemUUID:     "dir-1",
				Permission:   model.PermissionEdit,
				CreatedAt:    time.Now().UTC(),
			}, nil)

		router := chi.NewRouter()
		router.Put("/api/shared/{share_id}", handler.NewShareHandler(shareService).UpdateShare)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, newShareRequest(http.MethodPut, "/api/shared/grant-1",
			`{"permissionLevel":"edit"}`))

		require.Equal(t, http.StatusOK, recorder.Code)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		assert.Equal(t, "grant-1", payload["id"])
		assert.Equal(t, "edit", payload["permissionLevel"])
		assert.NotContains(t, payload, "owner_uuid")
	})
}
