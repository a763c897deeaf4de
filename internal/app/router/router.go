// Package router はginのルーティングを組み立てます。
package router

import (
	"github.com/gin-gonic/gin"

	historyhandler "vision_backend/internal/feature/history/transport/handler"
	analysishandler "vision_backend/internal/feature/imageanalysis/transport/handler"
	"vision_backend/internal/feature/imageanalysis/usecase"
	"vision_backend/internal/platform/http/handler"
	jwtmw "vision_backend/internal/platform/jwt"
)

// NewRouter はAPIのルーティングを設定したgin.Engineを返します。
func NewRouter(jwtCfg jwtmw.Config, analysis *analysishandler.ImageAnalysisHandler,
	history *historyhandler.HistoryHandler, readiness map[string]handler.Checker) *gin.Engine {
	r := gin.Default()
	// マルチパートはメモリ上限を超えると一時ファイルに退避される
	r.MaxMultipartMemory = usecase.MaxImageSize

	// 認証不要
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(readiness))

	// 認証必須のルート（visionスコープが必要）
	v1 := r.Group("/v1")
	v1.Use(jwtmw.AuthRequired(jwtCfg, jwtmw.ScopeVision))
	{
		v1.POST("/images/labels", analysis.DetectLabels)
		v1.POST("/images/text", analysis.DetectText)
		v1.POST("/images/logos", analysis.DetectLogos)
		v1.POST("/images/safe-search", analysis.SafeSearch)
		v1.POST("/logo/analyze", analysis.AnalyzeCompany)
		v1.GET("/history", history.ListHistory)
	}

	return r
}
