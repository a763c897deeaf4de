// Package usecase はVision APIによる画像解析のビジネスロジックを実装します。
package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"vision_backend/internal/feature/imageanalysis/domain"
	"vision_backend/internal/feature/imageanalysis/domain/entity"
)

// ImageAnnotator はVision APIの images:annotate を呼び出すポートです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ImageAnnotator interface {
	// Annotate はリクエストエンベロープを送信し、レスポンスエンベロープを返します。
	Annotate(ctx context.Context, req *entity.BatchAnnotateRequest) (*entity.BatchAnnotateResponse, error)
}

// visionUsecase はラベル・テキスト・ロゴ・セーフサーチの4種類の検出を提供します。
// annotatorは起動時に一度だけ生成し、すべての操作で共有します。
type visionUsecase struct {
	annotator ImageAnnotator
}

// NewVisionUsecase はvisionUsecaseの新しいインスタンスを生成します。
func NewVisionUsecase(annotator ImageAnnotator) *visionUsecase {
	return &visionUsecase{annotator: annotator}
}

// Label は画像のラベルを検出します。
func (u *visionUsecase) Label(ctx context.Context, image io.ReadSeeker, maxResults int) ([]entity.EntityAnnotation, error) {
	return detect[[]entity.EntityAnnotation](ctx, u.annotator, image, entity.LabelDetection, maxResults)
}

// DetectText は画像内のテキストを検出します。
func (u *visionUsecase) DetectText(ctx context.Context, image io.ReadSeeker) ([]entity.EntityAnnotation, error) {
	return detect[[]entity.EntityAnnotation](ctx, u.annotator, image, entity.TextDetection, entity.DefaultMaxResults)
}

// DetectLogo は画像内のロゴを検出します。
func (u *visionUsecase) DetectLogo(ctx context.Context, image io.ReadSeeker, maxResults int) ([]entity.EntityAnnotation, error) {
	return detect[[]entity.EntityAnnotation](ctx, u.annotator, image, entity.LogoDetection, maxResults)
}

// SafeSearch は画像のセーフサーチ判定を取得します。
func (u *visionUsecase) SafeSearch(ctx context.Context, image io.ReadSeeker) (*entity.SafeSearchAnnotation, error) {
	return detect[*entity.SafeSearchAnnotation](ctx, u.annotator, image, entity.SafeSearchDetection, entity.DefaultMaxResults)
}

func detect[T any](ctx context.Context, annotator ImageAnnotator, image io.ReadSeeker, kind entity.DetectionKind, maxResults int) (T, error) {
	var zero T

	req, err := BuildRequest(image, kind, maxResults)
	if err != nil {
		return zero, err
	}

	resp, err := annotator.Annotate(ctx, req)
	if err != nil {
		return zero, fmt.Errorf("annotate %s: %w", kind, err)
	}

	return extract[T](resp, kind)
}

// extract はレスポンスの先頭要素から検出種別に対応するフィールドを取り出します。
func extract[T any](resp *entity.BatchAnnotateResponse, kind entity.DetectionKind) (T, error) {
	var out T

	if resp == nil || len(resp.Responses) == 0 {
		return out, domain.ErrEmptyResponse
	}
	first := resp.Responses[0]
	if st := first.Status(); st != nil {
		return out, &domain.APIError{Code: st.Code, Message: st.Message}
	}

	field := kind.AnnotationField()
	raw, ok := first.Field(field)
	if !ok || len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return out, fmt.Errorf("%w: %s", domain.ErrAnnotationNotFound, field)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", field, err)
	}
	return out, nil
}
