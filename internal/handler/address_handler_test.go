package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"freightquote/internal/model"
	"freightquote/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAddressBody = `{"street":"123 Innovation Dr","number":"123","neighborhood":"Centro","city":"Tech City","state":"SP","zip_code":"01000-000"}`

func TestCreateAddress(t *testing.T) {
	h := newTestHandler(&MockStore{})

	c, rec := newContext(http.MethodPost, "/api/companies/1/addresses", validAddressBody)
	asUser(c, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, h.CreateAddress(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var address model.Address
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &address))
	assert.Equal(t, uint(1), address.CompanyID)
}

func TestCreateAddressMissingField(t *testing.T) {
	h := newTestHandler(&MockStore{})

	c, rec := newContext(http.MethodPost, "/api/companies/1/addresses",
		`{"street":"123 Innovation Dr","number":"123"}`)
	asUser(c, 1, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, h.CreateAddress(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "neighborhood is required")
}

func TestUpdateAddressNotFound(t *testing.T) {
	store := &MockStore{
		GetAddressFunc: func(ctx context.Context, id uint) (*model.Address, error) {
			return nil, storage.ErrNotFound
		},
	}
	h := newTestHandler(store)

	c, rec := newContext(http.MethodPut, "/api/addresses/9", validAddressBody)
	asUser(c, 1, model.RoleAdmin)
	setParam(c, "id", "9")
	require.NoError(t, h.UpdateAddress(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestDeleteAddress(t *testing.T) {
	var deleted uint
	store := &MockStore{
		DeleteAddressFunc: func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		},
	}
	h := newTestHandler(store)

	c, rec := newContext(http.MethodDelete, "/api/addresses/4", "")
	asUser(c, 1, model.RoleAdmin)
	setParam(c, "id", "4")
	require.NoError(t, h.DeleteAddress(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint(4), deleted)
}

func TestListAuditLogsPagination(t *testing.T) {
	var gotLimit, gotOffset int
	store := &MockStore{
		GetAuditLogsFunc: func(ctx context.Context, limit, offset int) ([]model.AuditLog, error) {
			gotLimit = limit
			gotOffset = offset
			return []model.AuditLog{}, nil
		},
	}
	h := newTestHandler(store)

	c, rec := newContext(http.MethodGet, "/api/audit-logs", "")
	asUser(c, 1, model.RoleAuditor)
	require.NoError(t, h.ListAuditLogs(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, gotLimit)
	assert.Equal(t, 0, gotOffset)

	c, _ = newContext(http.MethodGet, "/api/audit-logs?limit=1000&offset=20", "")
	asUser(c, 1, model.RoleAuditor)
	require.NoError(t, h.ListAuditLogs(c))
	assert.Equal(t, 200, gotLimit, "limit capped")
	assert.Equal(t, 20, gotOffset)
}
