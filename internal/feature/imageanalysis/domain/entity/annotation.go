package entity

// EntityAnnotation はラベル・テキスト・ロゴの検出結果を表します。
type EntityAnnotation struct {
	Mid          string        `json:"mid,omitempty"`
	Locale       string        `json:"locale,omitempty"`
	Description  string        `json:"description,omitempty"`
	Score        float32       `json:"score,omitempty"`
	Confidence   float32       `json:"confidence,omitempty"`
	Topicality   float32       `json:"topicality,omitempty"`
	BoundingPoly *BoundingPoly `json:"boundingPoly,omitempty"`
}

// BoundingPoly は検出領域の多角形です。
type BoundingPoly struct {
	Vertices []Vertex `json:"vertices,omitempty"`
}

// Vertex は画像上のピクセル座標です。
type Vertex struct {
	X int32 `json:"x,omitempty"`
	Y int32 `json:"y,omitempty"`
}

// Likelihood はセーフサーチの判定段階です（VERY_UNLIKELY〜VERY_LIKELY）。
type Likelihood string

// SafeSearchAnnotation はセーフサーチの判定結果です。
type SafeSearchAnnotation struct {
	Adult    Likelihood `json:"adult,omitempty"`
	Spoof    Likelihood `json:"spoof,omitempty"`
	Medical  Likelihood `json:"medical,omitempty"`
	Violence Likelihood `json:"violence,omitempty"`
	Racy     Likelihood `json:"racy,omitempty"`
}
