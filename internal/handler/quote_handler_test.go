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

func sampleQuotes() []model.Quote {
	return []model.Quote{
		{ID: 1, ClientID: 1, Origin: "São Paulo, SP", Destination: "Rio de Janeiro, RJ", Status: model.QuoteStatusOpen},
		{ID: 2, ClientID: 2, Origin: "Curitiba, PR", Destination: "Porto Alegre, RS", Status: model.QuoteStatusResponded},
		{ID: 3, ClientID: 2, Origin: "Salvador, BA", Destination: "Recife, PE", Status: model.QuoteStatusClosed},
	}
}

func quoteStore() *MockStore {
	return &MockStore{
		GetQuotesFunc: func(ctx context.Context) ([]model.Quote, error) {
			return sampleQuotes(), nil
		},
	}
}

func listQuotesAs(t *testing.T, userID uint, role string) []model.Quote {
	t.Helper()
	h := newTestHandler(quoteStore())

	c, rec := newContext(http.MethodGet, "/api/quotes", "")
	asUser(c, userID, role)
	require.NoError(t, h.ListQuotes(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var quotes []model.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quotes))
	return quotes
}

func TestListQuotesClientSeesOwnOnly(t *testing.T) {
	quotes := listQuotesAs(t, 1, model.RoleClient)
	require.Len(t, quotes, 1)
	assert.Equal(t, uint(1), quotes[0].ID)
}

func TestListQuotesCarrierExcludesClosed(t *testing.T) {
	quotes := listQuotesAs(t, 9, model.RoleCarrier)
	require.Len(t, quotes, 2)
	for _, q := range quotes {
		assert.NotEqual(t, model.QuoteStatusClosed, q.Status)
	}
}

func TestListQuotesAdminSeesAll(t *testing.T) {
	assert.Len(t, listQuotesAs(t, 9, model.RoleAdmin), 3)
	assert.Len(t, listQuotesAs(t, 9, model.RoleAuditor), 3)
}

func TestCreateQuote(t *testing.T) {
	var gotClientID uint
	store := &MockStore{
		CreateQuoteFunc: func(ctx context.Context, clientID uint, q *model.Quote) error {
			gotClientID = clientID
			q.ID = 10
			q.ClientID = clientID
			q.Status = model.QuoteStatusOpen
			return nil
		},
	}
	h := newTestHandler(store)

	c, rec := newContext(http.MethodPost, "/api/quotes",
		`{"origin":"São Paulo, SP","destination":"Rio de Janeiro, RJ","weight":1500.5,"volume":10.5,"cargo_type":"Electronics"}`)
	asUser(c, 5, model.RoleClient)
	require.NoError(t, h.CreateQuote(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint(5), gotClientID)

	var quote model.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.Equal(t, model.QuoteStatusOpen, quote.Status)
	assert.Equal(t, uint(5), quote.ClientID)
}

func TestCreateQuoteValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing origin", `{"destination":"B","weight":1,"cargo_type":"X"}`, "origin is required"},
		{"missing destination", `{"origin":"A","weight":1,"cargo_type":"X"}`, "destination is required"},
		{"zero weight", `{"origin":"A","destination":"B","cargo_type":"X"}`, "weight must be positive"},
		{"negative weight", `{"origin":"A","destination":"B","weight":-5,"cargo_type":"X"}`, "weight must be positive"},
		{"missing cargo type", `{"origin":"A","destination":"B","weight":1}`, "cargo_type is required"},
	}
	h := newTestHandler(&MockStore{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodPost, "/api/quotes", tt.body)
			asUser(c, 5, model.RoleClient)
			require.NoError(t, h.CreateQuote(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestGetQuoteNotFound(t *testing.T) {
	store := &MockStore{
		GetQuoteFunc: func(ctx context.Context, id uint) (*model.Quote, error) {
			return nil, storage.ErrNotFound
		},
	}
	h := newTestHandler(store)

	c, rec := newContext(http.MethodGet, "/api/quotes/999", "")
	asUser(c, 1, model.RoleClient)
	setParam(c, "id", "999")
	require.NoError(t, h.GetQuote(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Quote not found", body["message"])
}

func TestCloseQuoteByOwner(t *testing.T) {
	h := newTestHandler(&MockStore{})

	c, rec := newContext(http.MethodPost, "/api/quotes/1/close", "")
	asUser(c, 1, model.RoleClient)
	setParam(c, "id", "1")
	require.NoError(t, h.CloseQuote(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var quote model.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.Equal(t, model.QuoteStatusClosed, quote.Status)
}

func TestCloseQuoteNotOwner(t *testing.T) {
	h := newTestHandler(&MockStore{})

	c, rec := newContext(http.MethodPost, "/api/quotes/1/close", "")
	asUser(c, 2, model.RoleClient)
	setParam(c, "id", "1")
	require.NoError(t, h.CloseQuote(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCloseQuoteAsAdmin(t *testing.T) {
	h := newTestHandler(&MockStore{})

	c, rec := newContext(http.MethodPost, "/api/quotes/1/close", "")
	asUser(c, 99, model.RoleAdmin)
	setParam(c, "id", "1")
	require.NoError(t, h.CloseQuote(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}
