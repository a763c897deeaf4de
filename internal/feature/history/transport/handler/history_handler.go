// Package handler はhistoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"vision_backend/internal/api"
	"vision_backend/internal/feature/history/domain/entity"
)

// HistoryUsecase は検出履歴参照のユースケースインターフェースを定義します。
type HistoryUsecase interface {
	ListRecent(ctx context.Context, limit int) ([]entity.DetectionRecord, error)
}

// HistoryHandler は検出履歴のHTTPリクエストを処理します。
type HistoryHandler struct {
	uc HistoryUsecase
}

// NewHistoryHandler はHistoryHandlerの新しいインスタンスを生成します。
func NewHistoryHandler(uc HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// ListHistory は新しい順に検出履歴を返します。
//
// エンドポイント例:
// GET /v1/history?limit=20
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	var limit int
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.Request.URL.Query(), &limit); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "limitは整数で指定してください"})
		return
	}

	records, err := h.uc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		slog.Error("検出履歴の取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "検出履歴の取得に失敗しました"})
		return
	}

	out := make([]api.DetectionRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, api.DetectionRecordResponse{
			ID:          r.ID,
			Kind:        r.Kind,
			ImageDigest: r.ImageDigest,
			MaxResults:  r.MaxResults,
			ResultCount: r.ResultCount,
			CreatedAt:   r.CreatedAt.UTC(),
		})
	}
	c.JSON(http.StatusOK, out)
}
