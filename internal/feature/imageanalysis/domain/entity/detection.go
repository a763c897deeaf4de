// Package entity はimageanalysisフィーチャーのドメインモデルを定義します。
package entity

// DetectionKind はVision APIに要求する解析の種類です。
type DetectionKind string

const (
	LabelDetection      DetectionKind = "LABEL_DETECTION"
	TextDetection       DetectionKind = "TEXT_DETECTION"
	LogoDetection       DetectionKind = "LOGO_DETECTION"
	SafeSearchDetection DetectionKind = "SAFE_SEARCH_DETECTION"
)

// DefaultMaxResults は最大検出件数が未指定の場合の値です。
const DefaultMaxResults = 1

// annotationFields は検出種別ごとのレスポンスフィールド名です。
var annotationFields = map[DetectionKind]string{
	LabelDetection:      "labelAnnotations",
	TextDetection:       "textAnnotations",
	LogoDetection:       "logoAnnotations",
	SafeSearchDetection: "safeSearchAnnotation",
}

// Valid は既知の検出種別かどうかを返します。
func (k DetectionKind) Valid() bool {
	_, ok := annotationFields[k]
	return ok
}

// AnnotationField は検出結果が格納されるレスポンスのフィールド名を返します。
func (k DetectionKind) AnnotationField() string {
	return annotationFields[k]
}

func (k DetectionKind) String() string { return string(k) }
