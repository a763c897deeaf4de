package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"vision_backend/internal/feature/history/domain/entity"
	"vision_backend/internal/feature/history/transport/handler"
)

type mockHistoryUsecase struct {
	ListRecentFunc func(ctx context.Context, limit int) ([]entity.DetectionRecord, error)
}

var _ handler.HistoryUsecase = (*mockHistoryUsecase)(nil)

func (m *mockHistoryUsecase) ListRecent(ctx context.Context, limit int) ([]entity.DetectionRecord, error) {
	return m.ListRecentFunc(ctx, limit)
}

func TestHistoryHandler_ListHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	createdAt := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		target         string
		mockFunc       func(ctx context.Context, limit int) ([]entity.DetectionRecord, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success: records returned",
			target: "/v1/history?limit=5",
			mockFunc: func(ctx context.Context, limit int) ([]entity.DetectionRecord, error) {
				assert.Equal(t, 5, limit)
				return []entity.DetectionRecord{
					{ID: 2, Kind: "LOGO_DETECTION", ImageDigest: "abc", MaxResults: 3, ResultCount: 1, CreatedAt: createdAt},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":2,"kind":"LOGO_DETECTION","image_digest":"abc","max_results":3,"result_count":1,"created_at":"2026-10-01T09:30:00Z"}]`,
		},
		{
			name:   "success: limit omitted",
			target: "/v1/history",
			mockFunc: func(ctx context.Context, limit int) ([]entity.DetectionRecord, error) {
				assert.Equal(t, 0, limit)
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "error: limit not an integer",
			target:         "/v1/history?limit=ten",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"limitは整数で指定してください"}`,
		},
		{
			name:   "error: repository failure",
			target: "/v1/history",
			mockFunc: func(ctx context.Context, limit int) ([]entity.DetectionRecord, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"検出履歴の取得に失敗しました"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHistoryHandler(&mockHistoryUsecase{ListRecentFunc: tt.mockFunc})

			router := gin.New()
			router.GET("/v1/history", h.ListHistory)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
