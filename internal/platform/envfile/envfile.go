// Package envfile は .env ファイルから環境変数を読み込みます。
package envfile

import (
	"log"

	"github.com/joho/godotenv"
)

// Load はfiles（未指定の場合は .env）を読み込みます。
// ファイルがない環境（Cloud Runなど）では環境変数をそのまま使うため、失敗はログのみでfalseを返します。
func Load(files ...string) bool {
	if err := godotenv.Load(files...); err != nil {
		log.Println("[INFO] .env not loaded:", err)
		return false
	}
	return true
}
