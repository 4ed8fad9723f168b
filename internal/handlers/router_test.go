// internal/handlers/router_test.go
package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/handlers"
	"github.com/ammerola/roadie-bag/internal/pkg/logger"
	"github.com/ammerola/roadie-bag/test/helpers"
	"github.com/ammerola/roadie-bag/test/mocks"
)

type routerMocks struct {
	items *mocks.MockItemService
	draws *mocks.MockDrawService
	auth  *mocks.MockAuthService
}

func newRouter(t *testing.T) (http.Handler, *routerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &routerMocks{
		items: mocks.NewMockItemService(ctrl),
		draws: mocks.NewMockDrawService(ctrl),
		auth:  mocks.NewMockAuthService(ctrl),
	}
	log := helpers.TestLogger()

	router := handlers.NewRouter(handlers.RouterConfig{
		Items:       handlers.NewItemHandler(m.items, m.draws, 0, log),
		Draws:       handlers.NewDrawHandler(m.draws, log),
		Auth:        handlers.NewAuthHandler(m.auth, log),
		AuthService: m.auth,
		Logger:      logger.NewLogger(&logger.LogConfig{Level: "error", Writer: io.Discard}),
	})
	return router, m
}

func TestRouter_AnonymousWritesAreRejected(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		setup  func(*routerMocks)
	}{
		{
			name:   "create_item",
			method: http.MethodPost,
			path:   "/api/v1/items",
			body:   `{"name":"Tent","quantity":1,"size":"Large"}`,
			setup: func(m *routerMocks) {
				m.items.EXPECT().Create(gomock.Any(), domain.Guest(), gomock.Any()).Return(nil, domain.ErrUnauthorized())
			},
		},
		{
			name:   "delete_item",
			method: http.MethodDelete,
			path:   "/api/v1/items/3",
			setup: func(m *routerMocks) {
				m.items.EXPECT().Delete(gomock.Any(), domain.Guest(), int64(3)).Return(domain.ErrUnauthorized())
			},
		},
		{
			name:   "draw",
			method: http.MethodPost,
			path:   "/api/v1/draws",
			setup: func(m *routerMocks) {
				m.draws.EXPECT().Draw(gomock.Any(), domain.Guest()).Return(nil, domain.ErrUnauthorized())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newRouter(t)
			tt.setup(m)

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "User is unauthorized", decodeError(t, w.Body.Bytes()).Error)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_BearerTokenReachesHandlers(t *testing.T) {
	router, m := newRouter(t)
	user := helpers.TestUser()

	m.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(user, nil)
	m.draws.EXPECT().Draw(gomock.Any(), user).Return(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/draws", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		setup          func(*routerMocks)
		expectedStatus int
	}{
		{
			name:   "item_history",
			method: http.MethodGet,
			path:   "/api/v1/items/7/draws",
			setup: func(m *routerMocks) {
				m.draws.EXPECT().ForItem(gomock.Any(), int64(7)).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "last_draw",
			method: http.MethodGet,
			path:   "/api/v1/draws/last",
			setup: func(m *routerMocks) {
				m.draws.EXPECT().Last(gomock.Any()).Return(nil, nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "me_as_guest",
			method:         http.MethodGet,
			path:           "/api/v1/auth/me",
			setup:          func(*routerMocks) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong_method",
			method:         http.MethodPatch,
			path:           "/api/v1/items",
			setup:          func(*routerMocks) {},
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "exports_not_mounted",
			method:         http.MethodPost,
			path:           "/api/v1/exports",
			setup:          func(*routerMocks) {},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newRouter(t)
			tt.setup(m)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
