// internal/handlers/exports_test.go
package handlers_test

import (
	"encoding/json"
	"errors"
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

func TestExportHandler_RequestExport(t *testing.T) {
	tests := []struct {
		name           string
		ret            *domain.ExportStatus
		err            error
		expectedStatus int
		location       string
	}{
		{
			name: "queued",
			ret: &domain.ExportStatus{
				ID:          "6f1c",
				State:       domain.ExportQueued,
				RequestedBy: 1,
				RequestedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			},
			expectedStatus: http.StatusAccepted,
			location:       "/api/v1/exports/6f1c",
		},
		{name: "anonymous", err: domain.ErrUnauthorized(), expectedStatus: http.StatusUnauthorized},
		{name: "queue_down", err: domain.Storage("enqueue export", errors.New("redis down")), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockExportService(gomock.NewController(t))
			handler := handlers.NewExportHandler(svc, helpers.TestLogger())
			svc.EXPECT().Request(gomock.Any(), helpers.TestUser()).Return(tt.ret, tt.err)

			w := httptest.NewRecorder()
			handler.RequestExport(w, signedIn(httptest.NewRequest(http.MethodPost, "/api/v1/exports", nil)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}

func TestExportHandler_ExportStatus(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		svc := mocks.NewMockExportService(gomock.NewController(t))
		handler := handlers.NewExportHandler(svc, helpers.TestLogger())
		svc.EXPECT().Status(gomock.Any(), "abc").Return(&domain.ExportStatus{
			ID:    "abc",
			State: domain.ExportCompleted,
			URL:   "https://example.test/abc.xlsx",
			Items: 4,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/abc", nil)
		req.SetPathValue("id", "abc")
		w := httptest.NewRecorder()

		handler.ExportStatus(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var status domain.ExportStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, domain.ExportCompleted, status.State)
		assert.Equal(t, 4, status.Items)
	})

	t.Run("unknown_export", func(t *testing.T) {
		svc := mocks.NewMockExportService(gomock.NewController(t))
		handler := handlers.NewExportHandler(svc, helpers.TestLogger())
		svc.EXPECT().Status(gomock.Any(), "nope").Return(nil, domain.NotFound("export", "nope"))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/nope", nil)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		handler.ExportStatus(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
