package visionrest

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"

	"vision_backend/internal/feature/imageanalysis/domain/entity"
	"vision_backend/internal/feature/imageanalysis/usecase"
	infrahttp "vision_backend/internal/platform/http"
)

// RESTAnnotator はVision REST APIの images:annotate を呼び出します。
type RESTAnnotator struct {
	svc *vision.Service
}

// RESTAnnotatorがImageAnnotatorを実装していることをコンパイル時に検証します。
var _ usecase.ImageAnnotator = (*RESTAnnotator)(nil)

// NewRESTAnnotator はRESTAnnotatorの新しいインスタンスを生成します。
// tsがnilの場合は認証なしで接続します（エミュレータやテスト用）。
// optsは設定から組み立てたオプションの後に適用されます。
func NewRESTAnnotator(ctx context.Context, cfg Config, ts oauth2.TokenSource, opts ...option.ClientOption) (*RESTAnnotator, error) {
	httpClient := infrahttp.NewAuthorizedHTTPClient(cfg.Timeout, ts)

	clientOpts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := vision.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision REST service: %w", err)
	}
	return &RESTAnnotator{svc: svc}, nil
}

// Annotate はリクエストエンベロープを送信し、レスポンスをエンベロープに変換して返します。
func (a *RESTAnnotator) Annotate(ctx context.Context, req *entity.BatchAnnotateRequest) (*entity.BatchAnnotateResponse, error) {
	resp, err := a.svc.Images.Annotate(toAPIRequest(req)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}
	return fromAPIResponse(resp)
}

func toAPIRequest(req *entity.BatchAnnotateRequest) *vision.BatchAnnotateImagesRequest {
	out := &vision.BatchAnnotateImagesRequest{
		Requests: make([]*vision.AnnotateImageRequest, 0, len(req.Requests)),
	}
	for _, r := range req.Requests {
		features := make([]*vision.Feature, 0, len(r.Features))
		for _, f := range r.Features {
			features = append(features, &vision.Feature{
				Type:       f.Type.String(),
				MaxResults: int64(f.MaxResults),
			})
		}
		out.Requests = append(out.Requests, &vision.AnnotateImageRequest{
			Features: features,
			Image:    &vision.Image{Content: r.Image.Content},
		})
	}
	return out
}

// fromAPIResponse は各結果をJSON経由でエンベロープに変換します。
// 検出結果のないフィールドはJSON上に現れないため、そのまま「フィールドなし」として扱われます。
func fromAPIResponse(resp *vision.BatchAnnotateImagesResponse) (*entity.BatchAnnotateResponse, error) {
	out := &entity.BatchAnnotateResponse{
		Responses: make([]entity.AnnotateImageResponse, 0, len(resp.Responses)),
	}
	for _, r := range resp.Responses {
		if r == nil {
			out.Responses = append(out.Responses, entity.AnnotateImageResponse{})
			continue
		}
		b, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encode vision response: %w", err)
		}
		var item entity.AnnotateImageResponse
		if err := json.Unmarshal(b, &item); err != nil {
			return nil, fmt.Errorf("decode vision response: %w", err)
		}
		out.Responses = append(out.Responses, item)
	}
	return out, nil
}
