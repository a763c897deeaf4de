// Package visiongrpc はCloud Vision gRPCクライアント（cloud.google.com/go/vision/v2）を使用した
// ImageAnnotator実装を提供します。
package visiongrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/encoding/protojson"

	"vision_backend/internal/feature/imageanalysis/domain/entity"
	"vision_backend/internal/feature/imageanalysis/usecase"
)

// Config はVision gRPCクライアントの設定です。
type Config struct {
	Endpoint string // host:port（空の場合はデフォルトのvision.googleapis.com:443）
}

// LoadConfig は環境変数からVision gRPCクライアントの設定を読み込みます。
func LoadConfig() Config {
	return Config{Endpoint: os.Getenv("VISION_GRPC_ENDPOINT")}
}

// GRPCAnnotator はVision gRPC APIの BatchAnnotateImages を呼び出します。
type GRPCAnnotator struct {
	client *gvision.ImageAnnotatorClient
}

// GRPCAnnotatorがImageAnnotatorを実装していることをコンパイル時に検証します。
var _ usecase.ImageAnnotator = (*GRPCAnnotator)(nil)

// NewGRPCAnnotator はGRPCAnnotatorの新しいインスタンスを生成します。
// tsがnilの場合、クライアントライブラリ既定の認証情報解決に任せます。
func NewGRPCAnnotator(ctx context.Context, cfg Config, ts oauth2.TokenSource, opts ...option.ClientOption) (*GRPCAnnotator, error) {
	var clientOpts []option.ClientOption
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	if ts != nil {
		clientOpts = append(clientOpts, option.WithTokenSource(ts))
	}
	clientOpts = append(clientOpts, opts...)

	client, err := gvision.NewImageAnnotatorClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &GRPCAnnotator{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (g *GRPCAnnotator) Close() error {
	return g.client.Close()
}

// Annotate はエンベロープをprotoに変換して送信し、結果をエンベロープに戻して返します。
func (g *GRPCAnnotator) Annotate(ctx context.Context, req *entity.BatchAnnotateRequest) (*entity.BatchAnnotateResponse, error) {
	pbReq, err := toProto(req)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.BatchAnnotateImages(ctx, pbReq)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}
	return fromProto(resp)
}

// toProto はJSONエンベロープをprotojsonで読み込みます。
// bytes型のcontentはprotojson上base64文字列なので、エンコード済みの値をそのまま渡せます。
func toProto(req *entity.BatchAnnotateRequest) (*visionpb.BatchAnnotateImagesRequest, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode vision request: %w", err)
	}
	var pbReq visionpb.BatchAnnotateImagesRequest
	if err := protojson.Unmarshal(b, &pbReq); err != nil {
		return nil, fmt.Errorf("convert vision request: %w", err)
	}
	return &pbReq, nil
}

func fromProto(resp *visionpb.BatchAnnotateImagesResponse) (*entity.BatchAnnotateResponse, error) {
	out := &entity.BatchAnnotateResponse{
		Responses: make([]entity.AnnotateImageResponse, 0, len(resp.GetResponses())),
	}
	for _, r := range resp.GetResponses() {
		b, err := protojson.Marshal(r)
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
