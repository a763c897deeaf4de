// Package handler はimageanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"vision_backend/internal/api"
	"vision_backend/internal/feature/imageanalysis/domain"
	"vision_backend/internal/feature/imageanalysis/domain/entity"
	"vision_backend/internal/feature/imageanalysis/usecase"
)

// AnalysisUsecase は画像解析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	DetectLabels(ctx context.Context, imageData []byte, maxResults int) ([]entity.EntityAnnotation, error)
	DetectText(ctx context.Context, imageData []byte) ([]entity.EntityAnnotation, error)
	DetectLogos(ctx context.Context, imageData []byte, maxResults int) ([]entity.EntityAnnotation, error)
	SafeSearch(ctx context.Context, imageData []byte) (*entity.SafeSearchAnnotation, error)
	AnalyzeCompany(ctx context.Context, companyName string) (*entity.CompanyAnalysis, error)
}

// ImageAnalysisHandler は画像解析のHTTPリクエストを処理します。
type ImageAnalysisHandler struct {
	uc AnalysisUsecase
}

// NewImageAnalysisHandler はImageAnalysisHandlerの新しいインスタンスを生成します。
func NewImageAnalysisHandler(uc AnalysisUsecase) *ImageAnalysisHandler {
	return &ImageAnalysisHandler{uc: uc}
}

// DetectLabels は画像のラベルを検出します。
//
// エンドポイント: POST /v1/images/labels?max_results=N
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *ImageAnalysisHandler) DetectLabels(c *gin.Context) {
	maxResults, ok := bindMaxResults(c)
	if !ok {
		return
	}
	imageData, ok := readImage(c)
	if !ok {
		return
	}

	labels, err := h.uc.DetectLabels(c.Request.Context(), imageData, maxResults)
	if err != nil {
		writeDetectError(c, err, "ラベル検出")
		return
	}
	c.JSON(http.StatusOK, toAnnotationResponses(labels))
}

// DetectText は画像内のテキストを検出します。
//
// エンドポイント: POST /v1/images/text
func (h *ImageAnalysisHandler) DetectText(c *gin.Context) {
	imageData, ok := readImage(c)
	if !ok {
		return
	}

	texts, err := h.uc.DetectText(c.Request.Context(), imageData)
	if err != nil {
		writeDetectError(c, err, "テキスト検出")
		return
	}
	c.JSON(http.StatusOK, toAnnotationResponses(texts))
}

// DetectLogos は画像内のロゴを検出します。
//
// エンドポイント: POST /v1/images/logos?max_results=N
func (h *ImageAnalysisHandler) DetectLogos(c *gin.Context) {
	maxResults, ok := bindMaxResults(c)
	if !ok {
		return
	}
	imageData, ok := readImage(c)
	if !ok {
		return
	}

	logos, err := h.uc.DetectLogos(c.Request.Context(), imageData, maxResults)
	if err != nil {
		writeDetectError(c, err, "ロゴ検出")
		return
	}
	c.JSON(http.StatusOK, toAnnotationResponses(logos))
}

// SafeSearch は画像のセーフサーチ判定を返します。
//
// エンドポイント: POST /v1/images/safe-search
func (h *ImageAnalysisHandler) SafeSearch(c *gin.Context) {
	imageData, ok := readImage(c)
	if !ok {
		return
	}

	result, err := h.uc.SafeSearch(c.Request.Context(), imageData)
	if err == nil && result == nil {
		err = fmt.Errorf("%w: safeSearchAnnotation", domain.ErrAnnotationNotFound)
	}
	if err != nil {
		writeDetectError(c, err, "セーフサーチ判定")
		return
	}
	c.JSON(http.StatusOK, api.SafeSearchResponse{
		Adult:    string(result.Adult),
		Spoof:    string(result.Spoof),
		Medical:  string(result.Medical),
		Violence: string(result.Violence),
		Racy:     string(result.Racy),
	})
}

// AnalyzeCompany は検出したロゴの企業分析サマリーを生成します。
//
// エンドポイント: POST /v1/logo/analyze
// Content-Type: application/json
func (h *ImageAnalysisHandler) AnalyzeCompany(c *gin.Context) {
	var req api.CompanyAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("企業分析リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "企業名が必要です"})
		return
	}

	analysis, err := h.uc.AnalyzeCompany(c.Request.Context(), req.CompanyName)
	if errors.Is(err, domain.ErrInvalidCompanyName) {
		slog.Warn("企業名が不正", "error", err, "company", req.CompanyName)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "企業名が不正です"})
		return
	}
	if err != nil {
		slog.Error("企業分析に失敗", "error", err, "company", req.CompanyName)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "企業分析に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, api.CompanyAnalysisResponse{
		CompanyName: analysis.CompanyName,
		Summary:     analysis.Summary,
	})
}

// bindMaxResults はクエリパラメータ max_results を読み取ります。未指定の場合は0を返します。
func bindMaxResults(c *gin.Context) (int, bool) {
	var maxResults int
	if err := runtime.BindQueryParameter("form", true, false, "max_results", c.Request.URL.Query(), &maxResults); err != nil {
		slog.Warn("max_resultsの解析に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "max_resultsは整数で指定してください"})
		return 0, false
	}
	return maxResults, true
}

// maxUploadBytes はリクエストボディ全体の上限です（画像上限＋マルチパートのヘッダー分）。
const maxUploadBytes = usecase.MaxImageSize + 1<<20

// readImage はマルチパートの image フィールドから画像データを読み取ります。
// 読み取りは MaxImageSize+1 バイトで打ち切り、サイズ超過の判定はusecaseに任せます。
func readImage(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, err := c.FormFile("image")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		slog.Warn("リクエストボディが上限を超過", "limit", tooLarge.Limit, "remote_addr", c.ClientIP())
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "画像サイズが上限を超えています"})
		return nil, false
	}
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像ファイルが必要です"})
		return nil, false
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return nil, false
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	imageData, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageSize+1))
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return nil, false
	}
	return imageData, true
}

// writeDetectError はユースケースのエラーをHTTPステータスに変換して返します。
func writeDetectError(c *gin.Context, err error, operation string) {
	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrInvalidImage):
		slog.Warn(operation+"の入力が不正", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像が不正です"})
	case errors.Is(err, domain.ErrAnnotationNotFound):
		slog.Info(operation+"の結果なし", "error", err)
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "検出結果がありません"})
	case errors.As(err, &apiErr):
		slog.Warn(operation+"で画像エラー", "code", apiErr.Code, "message", apiErr.Message)
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: apiErr.Message})
	default:
		slog.Error(operation+"に失敗", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: operation + "に失敗しました"})
	}
}

func toAnnotationResponses(in []entity.EntityAnnotation) []api.AnnotationResponse {
	out := make([]api.AnnotationResponse, 0, len(in))
	for _, a := range in {
		out = append(out, api.AnnotationResponse{
			Mid:         a.Mid,
			Description: a.Description,
			Locale:      a.Locale,
			Score:       a.Score,
		})
	}
	return out
}
