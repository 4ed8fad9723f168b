// internal/handlers/draws_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/roadie-bag/internal/core/domain"
	"github.com/ammerola/roadie-bag/internal/handlers"
	"github.com/ammerola/roadie-bag/test/helpers"
	"github.com/ammerola/roadie-bag/test/mocks"
)

func newDrawHandler(t *testing.T) (*handlers.DrawHandler, *mocks.MockDrawService) {
	t.Helper()
	svc := mocks.NewMockDrawService(gomock.NewController(t))
	return handlers.NewDrawHandler(svc, helpers.TestLogger()), svc
}

func TestDrawHandler_Draw(t *testing.T) {
	item := helpers.CreateTestItem()

	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockDrawService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "draws_an_item",
			setupMocks: func(m *mocks.MockDrawService) {
				m.EXPECT().Draw(gomock.Any(), helpers.TestUser()).Return(helpers.CreateTestTaken(item), nil)
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body []byte) {
				var taken domain.TakenItem
				require.NoError(t, json.Unmarshal(body, &taken))
				assert.Equal(t, item.ID, taken.ItemID)
				require.NotNil(t, taken.Item)
				assert.Equal(t, item.Name, taken.Item.Name)
			},
		},
		{
			name: "empty_bag",
			setupMocks: func(m *mocks.MockDrawService) {
				m.EXPECT().Draw(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			expectedStatus: http.StatusNoContent,
			validateBody: func(t *testing.T, body []byte) {
				assert.Empty(t, body)
			},
		},
		{
			name: "inconsistent_store",
			setupMocks: func(m *mocks.MockDrawService) {
				m.EXPECT().Draw(gomock.Any(), gomock.Any()).
					Return(nil, domain.InvariantViolation("eligible item vanished during draw"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "Internal server error", decodeError(t, body).Error)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, svc := newDrawHandler(t)
			tt.setupMocks(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/draws", nil)
			w := httptest.NewRecorder()

			handler.Draw(w, signedIn(req))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestDrawHandler_Last(t *testing.T) {
	t.Run("pending_draw", func(t *testing.T) {
		handler, svc := newDrawHandler(t)
		svc.EXPECT().Last(gomock.Any()).Return(helpers.CreateTestTaken(helpers.CreateTestItem()), nil)

		w := httptest.NewRecorder()
		handler.Last(w, httptest.NewRequest(http.MethodGet, "/api/v1/draws/last", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("nothing_pending", func(t *testing.T) {
		handler, svc := newDrawHandler(t)
		svc.EXPECT().Last(gomock.Any()).Return(nil, nil)

		w := httptest.NewRecorder()
		handler.Last(w, httptest.NewRequest(http.MethodGet, "/api/v1/draws/last", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestDrawHandler_UpdateTaken(t *testing.T) {
	extracted := time.Date(2024, 6, 1, 21, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		id             string
		body           string
		setupMocks     func(*mocks.MockDrawService)
		expectedStatus int
	}{
		{
			name: "overwrites_record",
			id:   "4",
			body: `{"item_id":2,"extraction_time":"2024-06-01T21:30:00Z","rounds":5,"done":true}`,
			setupMocks: func(m *mocks.MockDrawService) {
				m.EXPECT().
					UpdateTaken(gomock.Any(), helpers.TestUser(), &domain.TakenItem{
						ID:             4,
						ItemID:         2,
						ExtractionTime: extracted,
						Rounds:         5,
						Done:           true,
					}).
					DoAndReturn(func(_ context.Context, _ domain.User, taken *domain.TakenItem) (*domain.TakenItem, error) {
						return taken, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "rounds_out_of_range",
			id:   "4",
			body: `{"item_id":2,"rounds":9}`,
			setupMocks: func(m *mocks.MockDrawService) {
				m.EXPECT().
					UpdateTaken(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ domain.User, taken *domain.TakenItem) (*domain.TakenItem, error) {
						return nil, taken.Validate()
					})
			},
			expectedStatus: http.StatusExpectationFailed,
		},
		{
			name:           "bad_id",
			id:             "-1",
			body:           `{}`,
			setupMocks:     func(m *mocks.MockDrawService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, svc := newDrawHandler(t)
			tt.setupMocks(svc)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/draws/"+tt.id, bytes.NewBufferString(tt.body))
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.UpdateTaken(w, signedIn(req))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestDrawHandler_MarkDone(t *testing.T) {
	tests := []struct {
		name           string
		ret            *domain.TakenItem
		err            error
		expectedStatus int
	}{
		{
			name:           "marks_done",
			ret:            helpers.CreateTestTaken(helpers.CreateTestItem(), func(ti *domain.TakenItem) { ti.Done = true }),
			expectedStatus: http.StatusOK,
		},
		{name: "missing_record", err: domain.NotFound("taken item", 8), expectedStatus: http.StatusNotFound},
		{name: "anonymous", err: domain.ErrUnauthorized(), expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, svc := newDrawHandler(t)
			svc.EXPECT().MarkDone(gomock.Any(), gomock.Any(), int64(8)).Return(tt.ret, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/draws/8/done", nil)
			req.SetPathValue("id", "8")
			w := httptest.NewRecorder()

			handler.MarkDone(w, signedIn(req))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
