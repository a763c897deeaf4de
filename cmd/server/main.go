package main

import (
	"context"
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"vision_backend/internal/app/di"
	"vision_backend/internal/app/router"
	historyadapters "vision_backend/internal/feature/history/adapters"
	historyentity "vision_backend/internal/feature/history/domain/entity"
	historyhandler "vision_backend/internal/feature/history/transport/handler"
	historyusecase "vision_backend/internal/feature/history/usecase"
	analysishandler "vision_backend/internal/feature/imageanalysis/transport/handler"
	analysisusecase "vision_backend/internal/feature/imageanalysis/usecase"
	infradb "vision_backend/internal/platform/db"
	"vision_backend/internal/platform/envfile"
	"vision_backend/internal/platform/http/handler"
	jwtmw "vision_backend/internal/platform/jwt"
	infraredis "vision_backend/internal/platform/redis"
)

func main() {
	envfile.Load()

	ctx := context.Background()

	// db
	db := infradb.OpenDB(&historyentity.DetectionRecord{})
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	readiness := map[string]handler.Checker{"db": sqlDB.PingContext}

	// Redis
	var rdb *redisv9.Client
	if redisCfg := infraredis.LoadConfig(); !redisCfg.Enabled() {
		log.Println("[WARN] REDIS_HOST is not set. Running without cache.")
	} else if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Vision API クライアント（Redisキャッシュでラップ）
	annotatorCfg, err := di.LoadAnnotatorConfig()
	if err != nil {
		log.Fatal(err)
	}
	annotator, err := di.NewAnnotator(ctx, annotatorCfg, rdb)
	if err != nil {
		log.Fatalf("failed to create vision annotator: %v", err)
	}
	defer func() {
		if err := annotator.Close(); err != nil {
			log.Println("[ERROR] Failed to close vision client:", err)
		}
	}()

	// Usecase
	historyUC := historyusecase.NewHistoryUsecase(historyadapters.NewHistoryRepository(db))
	visionUC := analysisusecase.NewVisionUsecase(annotator)
	analysisUC := analysisusecase.NewAnalysisUsecase(visionUC, historyUC, di.NewCompanyAnalyzer(ctx))

	// Handler
	analysisH := analysishandler.NewImageAnalysisHandler(analysisUC)
	historyH := historyhandler.NewHistoryHandler(historyUC)

	jwtCfg := jwtmw.LoadConfig()
	if jwtCfg.Secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Every /v1 request will be rejected.")
	}

	// ルータ生成
	r := router.NewRouter(jwtCfg, analysisH, historyH, readiness)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
