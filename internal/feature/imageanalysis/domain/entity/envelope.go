package entity

import "encoding/json"

// BatchAnnotateRequest は images:annotate に送るリクエストエンベロープです。
type BatchAnnotateRequest struct {
	Requests []AnnotateImageRequest `json:"requests"`
}

// AnnotateImageRequest は1枚の画像と要求する解析の組です。
type AnnotateImageRequest struct {
	Features []Feature `json:"features"`
	Image    Image     `json:"image"`
}

// Feature は解析の種類と最大検出件数です。
type Feature struct {
	Type       DetectionKind `json:"type"`
	MaxResults int           `json:"maxResults"`
}

// Image はbase64エンコード済みの画像データです。
type Image struct {
	Content string `json:"content"`
}

// BatchAnnotateResponse は images:annotate のレスポンスエンベロープです。
type BatchAnnotateResponse struct {
	Responses []AnnotateImageResponse `json:"responses"`
}

// AnnotateImageResponse は1枚の画像に対する結果です。
// フィールド名で参照するため、値はデコードせずに保持します。
type AnnotateImageResponse map[string]json.RawMessage

// Field は指定されたフィールドの生のJSONを返します。
func (r AnnotateImageResponse) Field(name string) (json.RawMessage, bool) {
	v, ok := r[name]
	return v, ok
}

// Status は画像単位のエラー情報です。
type Status struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// Status はレスポンスにエラーが含まれていればそれを返します。
func (r AnnotateImageResponse) Status() *Status {
	raw, ok := r["error"]
	if !ok {
		return nil
	}
	var st Status
	if err := json.Unmarshal(raw, &st); err != nil {
		return &Status{Message: string(raw)}
	}
	if st.Code == 0 && st.Message == "" {
		return nil
	}
	return &st
}
