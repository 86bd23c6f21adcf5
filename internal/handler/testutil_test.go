package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"freightquote/internal/handler"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

func newTestHandler(store *MockStore) *handler.Handler {
	return handler.New(store, sessions.NewCookieStore([]byte("test")))
}

// newContext builds an echo context around a JSON request. Returns the
// context and the recorder holding the response.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asUser stamps the identity the auth middleware would have resolved
func asUser(c echo.Context, userID uint, role string) {
	c.Set("user_id", userID)
	c.Set("username", "user@test.com")
	c.Set("role", role)
}

func setParam(c echo.Context, name, value string) {
	names := append(c.ParamNames(), name)
	values := append(c.ParamValues(), value)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
}
