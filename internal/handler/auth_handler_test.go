package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"freightquote/internal/model"
	"freightquote/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	h := newTestHandler(&MockStore{})

	c, rec := newContext(http.MethodPost, "/api/register",
		`{"username":"new@test.com","password":"secret","name":"New User","role":"client"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "new@test.com", user.Username)
	assert.Equal(t, model.RoleClient, user.Role)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestRegisterDefaultsRoleAndName(t *testing.T) {
	h := newTestHandler(&MockStore{})

	c, rec := newContext(http.MethodPost, "/api/register",
		`{"username":"bare@test.com","password":"secret"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, model.RoleClient, user.Role)
	assert.Equal(t, "bare@test.com", user.Name)
}

func TestRegisterUnknownRole(t *testing.T) {
	h := newTestHandler(&MockStore{})

	c, rec := newContext(http.MethodPost, "/api/register",
		`{"username":"x@test.com","password":"secret","role":"superuser"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown role")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := &MockStore{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 7, Username: username}, nil
		},
	}
	h := newTestHandler(store)

	c, rec := newContext(http.MethodPost, "/api/register",
		`{"username":"taken@test.com","password":"secret"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username already exists")
}

func TestLogin(t *testing.T) {
	hashed, err := password.Hash("secret")
	require.NoError(t, err)

	store := &MockStore{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 3, Username: username, Password: hashed, Role: model.RoleClient}, nil
		},
	}
	h := newTestHandler(store)

	c, rec := newContext(http.MethodPost, "/api/login",
		`{"username":"client@tech.com","password":"secret"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(3), resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginSeededAccount(t *testing.T) {
	store := &MockStore{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 4, Username: username, Password: password.LegacySeedPassword, Role: model.RoleAdmin}, nil
		},
	}
	h := newTestHandler(store)

	c, rec := newContext(http.MethodPost, "/api/login",
		`{"username":"admin@platform.com","password":"password123"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	hashed, err := password.Hash("secret")
	require.NoError(t, err)

	store := &MockStore{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 3, Username: username, Password: hashed}, nil
		},
	}
	h := newTestHandler(store)

	c, rec := newContext(http.MethodPost, "/api/login",
		`{"username":"client@tech.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid credentials", body["message"], "auth failures share the message key")
}

func TestLoginUnknownUser(t *testing.T) {
	h := newTestHandler(&MockStore{})

	c, rec := newContext(http.MethodPost, "/api/login",
		`{"username":"ghost@test.com","password":"secret"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCurrentUser(t *testing.T) {
	h := newTestHandler(&MockStore{})

	c, rec := newContext(http.MethodGet, "/api/user", "")
	asUser(c, 1, model.RoleClient)
	require.NoError(t, h.CurrentUser(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, uint(1), user.ID)
}

func TestCurrentUserUnauthenticated(t *testing.T) {
	h := newTestHandler(&MockStore{})

	c, rec := newContext(http.MethodGet, "/api/user", "")
	require.NoError(t, h.CurrentUser(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
