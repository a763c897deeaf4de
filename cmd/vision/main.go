// vision は画像ファイル1枚に対して検出を1回実行し、結果をJSONで出力するCLIです。
//
//	vision -kind label|text|logo|safe-search [-max N] <image>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"vision_backend/internal/app/di"
	"vision_backend/internal/feature/imageanalysis/usecase"
	"vision_backend/internal/platform/envfile"
)

// annotatorFactory はImageAnnotatorとその解放処理を返します。
type annotatorFactory func(ctx context.Context) (usecase.ImageAnnotator, func() error, error)

var errUsage = errors.New("usage: vision -kind label|text|logo|safe-search [-max N] <image>")

func main() {
	envfile.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, newAnnotator); err != nil {
		log.Fatal(err)
	}
}

func newAnnotator(ctx context.Context) (usecase.ImageAnnotator, func() error, error) {
	cfg, err := di.LoadAnnotatorConfig()
	if err != nil {
		return nil, nil, err
	}
	a, err := di.NewAnnotator(ctx, cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	return a, a.Close, nil
}

func run(ctx context.Context, args []string, out io.Writer, factory annotatorFactory) error {
	fs := flag.NewFlagSet("vision", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	kind := fs.String("kind", "label", "label | text | logo | safe-search")
	maxResults := fs.Int("max", 0, "max results for label/logo (0 = default)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	detect, err := detectorFor(*kind, *maxResults)
	if err != nil {
		return err
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	annotator, closeFn, err := factory(ctx)
	if err != nil {
		return fmt.Errorf("create annotator: %w", err)
	}
	defer func() {
		if err := closeFn(); err != nil {
			log.Println("[ERROR] Failed to close vision client:", err)
		}
	}()

	result, err := detect(ctx, usecase.NewVisionUsecase(annotator), f)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

type detectFunc func(ctx context.Context, v usecase.Detector, image io.ReadSeeker) (any, error)

func detectorFor(kind string, maxResults int) (detectFunc, error) {
	switch kind {
	case "label":
		return func(ctx context.Context, v usecase.Detector, image io.ReadSeeker) (any, error) {
			return v.Label(ctx, image, maxResults)
		}, nil
	case "text":
		return func(ctx context.Context, v usecase.Detector, image io.ReadSeeker) (any, error) {
			return v.DetectText(ctx, image)
		}, nil
	case "logo":
		return func(ctx context.Context, v usecase.Detector, image io.ReadSeeker) (any, error) {
			return v.DetectLogo(ctx, image, maxResults)
		}, nil
	case "safe-search":
		return func(ctx context.Context, v usecase.Detector, image io.ReadSeeker) (any, error) {
			return v.SafeSearch(ctx, image)
		}, nil
	default:
		return nil, fmt.Errorf("unknown kind %q: %w", kind, errUsage)
	}
}
