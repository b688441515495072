package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/repository"
	"github.com/contactdesk/backend/pkg/auth"
)

type mockUserRepo struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return nil
}

const meTestSecret = "dev-secret-change-in-production-32bytes"

func meRequest(t *testing.T, userID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	token := auth.CreateSessionToken(userID, auth.SessionSecretBytes(meTestSecret))
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName(), Value: token})
	return req
}

func TestMe_Success(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			if id != "u1" {
				t.Errorf("expected lookup for u1, got %q", id)
			}
			return &model.User{ID: "u1", Email: "op@x.com", Name: "Op"}, nil
		},
	}
	h := NewMeHandler(repo, auth.SessionSecretBytes(meTestSecret), []string{"op@x.com"})

	rec := httptest.NewRecorder()
	h.Me(rec, meRequest(t, "u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp meResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "u1" || resp.Email != "op@x.com" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if !resp.IsAdmin {
		t.Error("expected is_admin=true for a listed admin email")
	}
}

func TestMe_NonAdminEmail(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: "u2", Email: "visitor@x.com"}, nil
		},
	}
	h := NewMeHandler(repo, auth.SessionSecretBytes(meTestSecret), []string{"op@x.com"})

	rec := httptest.NewRecorder()
	h.Me(rec, meRequest(t, "u2"))

	var resp meResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.IsAdmin {
		t.Error("expected is_admin=false for an unlisted email")
	}
}

func TestMe_NoCookie_Returns401(t *testing.T) {
	h := NewMeHandler(&mockUserRepo{}, auth.SessionSecretBytes(meTestSecret), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMe_TamperedToken_Returns401(t *testing.T) {
	h := NewMeHandler(&mockUserRepo{}, auth.SessionSecretBytes(meTestSecret), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName(), Value: "dTE=.deadbeef"})
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMe_UnknownUser_Returns401(t *testing.T) {
	h := NewMeHandler(&mockUserRepo{}, auth.SessionSecretBytes(meTestSecret), nil)

	rec := httptest.NewRecorder()
	h.Me(rec, meRequest(t, "gone"))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
