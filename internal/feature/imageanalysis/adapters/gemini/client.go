// Package gemini はGoogle Gemini APIを使用した、検出ロゴの企業分析クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"vision_backend/internal/feature/imageanalysis/usecase"
)

// DefaultModel はGemini APIのデフォルトモデルです。
const DefaultModel = "gemini-2.5-flash"

// Config はGeminiクライアントの設定です。
type Config struct {
	Model string
}

// LoadConfig は環境変数 GEMINI_MODEL からモデル名を読み込みます。
func LoadConfig() Config {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = DefaultModel
	}
	return Config{Model: model}
}

// GeminiAnalyzer はGoogle Gemini APIを使用して企業分析を生成します。
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

// GeminiAnalyzerがCompanyAnalyzerを実装していることをコンパイル時に検証します。
var _ usecase.CompanyAnalyzer = (*GeminiAnalyzer)(nil)

// NewGeminiAnalyzer はADCを使用してGeminiAnalyzerの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiAnalyzer(ctx context.Context, cfg Config) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newGeminiAnalyzer(client, cfg), nil
}

func newGeminiAnalyzer(client *genai.Client, cfg Config) *GeminiAnalyzer {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &GeminiAnalyzer{client: client, model: cfg.Model}
}

// Analyze はプロンプトを使用して分析サマリーを生成します。
func (g *GeminiAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
