package usecase

import (
	"encoding/base64"
	"fmt"
	"io"

	"vision_backend/internal/feature/imageanalysis/domain"
	"vision_backend/internal/feature/imageanalysis/domain/entity"
)

// BuildRequest は画像を読み取りbase64エンコードして、1画像・1解析のリクエストを組み立てます。
// 読み取り後、呼び出し元が同じハンドルを再利用できるよう読み取り位置を先頭に戻します。
// maxResultsが0以下の場合はentity.DefaultMaxResultsを使用します。
func BuildRequest(image io.ReadSeeker, kind entity.DetectionKind, maxResults int) (*entity.BatchAnnotateRequest, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}
	if maxResults <= 0 {
		maxResults = entity.DefaultMaxResults
	}

	data, err := io.ReadAll(image)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if _, err := image.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind image: %w", err)
	}

	return &entity.BatchAnnotateRequest{
		Requests: []entity.AnnotateImageRequest{
			{
				Features: []entity.Feature{{Type: kind, MaxResults: maxResults}},
				Image:    entity.Image{Content: base64.StdEncoding.EncodeToString(data)},
			},
		},
	}, nil
}
