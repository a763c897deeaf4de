package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"unicode/utf8"

	"vision_backend/internal/feature/imageanalysis/domain"
	"vision_backend/internal/feature/imageanalysis/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// MaxResultsLimit は1回の検出で要求できる最大件数です。
	MaxResultsLimit = 100
	// AnalysisPromptTemplate は企業分析のプロンプトテンプレートです。
	AnalysisPromptTemplate = "日本語で、企業分析の観点から%sの強みを3つ挙げて。"
	// MaxCompanyNameLength は企業名の最大文字数（rune数）です。
	MaxCompanyNameLength = 100
)

// validCompanyName は企業名に許可される文字パターンです（英数字・日本語・スペース・中黒）。
var validCompanyName = regexp.MustCompile(`^[\p{L}\p{N}\s・\-\.&,]+$`)

// Detector は4種類の画像検出を提供するインターフェースです。visionUsecaseが実装します。
type Detector interface {
	Label(ctx context.Context, image io.ReadSeeker, maxResults int) ([]entity.EntityAnnotation, error)
	DetectText(ctx context.Context, image io.ReadSeeker) ([]entity.EntityAnnotation, error)
	DetectLogo(ctx context.Context, image io.ReadSeeker, maxResults int) ([]entity.EntityAnnotation, error)
	SafeSearch(ctx context.Context, image io.ReadSeeker) (*entity.SafeSearchAnnotation, error)
}

// HistoryRecorder は検出履歴を記録するインターフェースです。
type HistoryRecorder interface {
	Record(ctx context.Context, kind, imageDigest string, maxResults, resultCount int) error
}

// CompanyAnalyzer は企業分析を生成するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CompanyAnalyzer interface {
	// Analyze はプロンプトから分析サマリーを生成します。
	Analyze(ctx context.Context, prompt string) (string, error)
}

var _ Detector = (*visionUsecase)(nil)

// analysisUsecase はHTTPから受け取った画像の検証・検出・履歴記録をまとめます。
type analysisUsecase struct {
	detector        Detector
	history         HistoryRecorder
	companyAnalyzer CompanyAnalyzer
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
// historyがnilの場合、履歴は記録しません。
func NewAnalysisUsecase(d Detector, h HistoryRecorder, ca CompanyAnalyzer) *analysisUsecase {
	return &analysisUsecase{detector: d, history: h, companyAnalyzer: ca}
}

// DetectLabels は画像データからラベルを検出します。
func (u *analysisUsecase) DetectLabels(ctx context.Context, imageData []byte, maxResults int) ([]entity.EntityAnnotation, error) {
	if err := validateImage(imageData); err != nil {
		return nil, err
	}
	maxResults = clampMaxResults(maxResults)
	labels, err := u.detector.Label(ctx, bytes.NewReader(imageData), maxResults)
	if err != nil {
		return nil, err
	}
	u.record(ctx, entity.LabelDetection, imageData, maxResults, len(labels))
	return labels, nil
}

// DetectText は画像データからテキストを検出します。
func (u *analysisUsecase) DetectText(ctx context.Context, imageData []byte) ([]entity.EntityAnnotation, error) {
	if err := validateImage(imageData); err != nil {
		return nil, err
	}
	texts, err := u.detector.DetectText(ctx, bytes.NewReader(imageData))
	if err != nil {
		return nil, err
	}
	u.record(ctx, entity.TextDetection, imageData, entity.DefaultMaxResults, len(texts))
	return texts, nil
}

// DetectLogos は画像データからロゴを検出します。
func (u *analysisUsecase) DetectLogos(ctx context.Context, imageData []byte, maxResults int) ([]entity.EntityAnnotation, error) {
	if err := validateImage(imageData); err != nil {
		return nil, err
	}
	maxResults = clampMaxResults(maxResults)
	logos, err := u.detector.DetectLogo(ctx, bytes.NewReader(imageData), maxResults)
	if err != nil {
		return nil, err
	}
	u.record(ctx, entity.LogoDetection, imageData, maxResults, len(logos))
	return logos, nil
}

// SafeSearch は画像データのセーフサーチ判定を取得します。
func (u *analysisUsecase) SafeSearch(ctx context.Context, imageData []byte) (*entity.SafeSearchAnnotation, error) {
	if err := validateImage(imageData); err != nil {
		return nil, err
	}
	result, err := u.detector.SafeSearch(ctx, bytes.NewReader(imageData))
	if err != nil {
		return nil, err
	}
	u.record(ctx, entity.SafeSearchDetection, imageData, entity.DefaultMaxResults, 1)
	return result, nil
}

// AnalyzeCompany は企業名から分析サマリーを生成します。
func (u *analysisUsecase) AnalyzeCompany(ctx context.Context, companyName string) (*entity.CompanyAnalysis, error) {
	if companyName == "" {
		return nil, fmt.Errorf("%w: company name is required", domain.ErrInvalidCompanyName)
	}
	if utf8.RuneCountInString(companyName) > MaxCompanyNameLength {
		return nil, fmt.Errorf("%w: company name exceeds maximum length of %d characters", domain.ErrInvalidCompanyName, MaxCompanyNameLength)
	}
	if !validCompanyName.MatchString(companyName) {
		return nil, fmt.Errorf("%w: company name contains invalid characters", domain.ErrInvalidCompanyName)
	}
	prompt := fmt.Sprintf(AnalysisPromptTemplate, companyName)
	summary, err := u.companyAnalyzer.Analyze(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("company analyzer failed for %q: %w", companyName, err)
	}
	return &entity.CompanyAnalysis{
		CompanyName: companyName,
		Summary:     summary,
	}, nil
}

// record は検出履歴を記録します。失敗しても検出結果は返します。
func (u *analysisUsecase) record(ctx context.Context, kind entity.DetectionKind, imageData []byte, maxResults, count int) {
	if u.history == nil {
		return
	}
	if err := u.history.Record(ctx, kind.String(), entity.Digest(imageData), maxResults, count); err != nil {
		slog.Warn("検出履歴の記録に失敗", "error", err, "kind", kind)
	}
}

func validateImage(imageData []byte) error {
	if len(imageData) == 0 {
		return fmt.Errorf("%w: image data is empty", domain.ErrInvalidImage)
	}
	if len(imageData) > MaxImageSize {
		return fmt.Errorf("%w: image size exceeds maximum of %d bytes", domain.ErrInvalidImage, MaxImageSize)
	}
	return nil
}

func clampMaxResults(n int) int {
	if n <= 0 {
		return entity.DefaultMaxResults
	}
	if n > MaxResultsLimit {
		return MaxResultsLimit
	}
	return n
}
