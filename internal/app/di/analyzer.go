package di

import (
	"context"
	"log/slog"

	"vision_backend/internal/feature/imageanalysis/adapters/gemini"
	"vision_backend/internal/feature/imageanalysis/usecase"
)

// unavailableAnalyzer はGeminiクライアントを生成できなかった場合の代替です。
type unavailableAnalyzer struct {
	err error
}

func (u unavailableAnalyzer) Analyze(context.Context, string) (string, error) {
	return "", u.err
}

// NewCompanyAnalyzer はGeminiを使用したCompanyAnalyzerを生成します。
// 生成に失敗した場合も起動は継続し、企業分析リクエストのみがエラーになります。
func NewCompanyAnalyzer(ctx context.Context) usecase.CompanyAnalyzer {
	a, err := gemini.NewGeminiAnalyzer(ctx, gemini.LoadConfig())
	if err != nil {
		slog.Warn("Gemini analyzer unavailable", "error", err)
		return unavailableAnalyzer{err: err}
	}
	return a
}
