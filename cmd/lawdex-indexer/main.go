// Command lawdex-indexer builds the dense case index offline: it reads the
// case detail table, embeds each case, and writes the vectors plus the
// parallel ids/metadata arrays the API server loads at startup.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/jeonselab/lawdex/internal/domain"
	"github.com/jeonselab/lawdex/internal/index/dense"
	logpkg "github.com/jeonselab/lawdex/internal/logger"
	"github.com/jeonselab/lawdex/internal/repository/casemeta"
	openaiEmb "github.com/jeonselab/lawdex/internal/transport/openai"
)

const defaultBatchSize = 64

func main() {
	var (
		detailsPath = flag.String("details", "", "case detail parquet file (required)")
		outDir      = flag.String("out", "", "output index directory (required)")
		model       = flag.String("model", "jhgan/ko-sroberta-multitask", "embedding model name")
		baseURL     = flag.String("base-url", "", "embedding API base URL")
		dimensions  = flag.Int("dimensions", 0, "requested embedding dimensions (0 = provider default)")
		batchSize   = flag.Int("batch", defaultBatchSize, "texts per embedding request")
		timeout     = flag.Duration("timeout", 30*time.Minute, "overall build timeout")
	)
	flag.Parse()

	logger, err := logpkg.NewLogger("local", "")
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if *detailsPath == "" || *outDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     os.Getenv("LAWDEX_EMBEDDING_API_KEY"),
		BaseURL:    *baseURL,
		Model:      *model,
		Dimensions: *dimensions,
		Provider:   "openai",
		Logger:     logger,
	})

	if err := build(ctx, *detailsPath, *outDir, *model, *batchSize, embedder, logger); err != nil {
		logger.Fatal("Index build failed", zap.Error(err))
	}
}

func build(
	ctx context.Context,
	detailsPath, outDir, model string,
	batchSize int,
	embedder domain.Embedder,
	logger *zap.Logger,
) error {
	rows, err := parquet.ReadFile[domain.CaseDetail](detailsPath)
	if err != nil {
		return fmt.Errorf("read case details %s: %w", detailsPath, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("case detail table %s is empty", detailsPath)
	}
	logger.Info("Case details loaded", zap.Int("rows", len(rows)))

	ids := make([]int64, len(rows))
	metas := make([]domain.CaseMeta, len(rows))
	texts := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.SerialNo
		metas[i] = domain.CaseMeta{
			CaseName:     row.CaseName,
			Court:        row.Court,
			DecisionDate: row.DecisionDate,
			CaseNo:       row.CaseNo,
		}
		texts[i] = embedText(row)
	}

	vectors, err := embedAll(ctx, embedder, texts, batchSize, logger)
	if err != nil {
		return err
	}

	index, err := dense.New(vectors)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := index.Save(filepath.Join(outDir, "vectors.bin")); err != nil {
		return err
	}
	if err := casemeta.Save(outDir, ids, metas); err != nil {
		return err
	}
	if err := casemeta.SaveModelName(outDir, model); err != nil {
		return err
	}

	logger.Info("Index written",
		zap.String("dir", outDir),
		zap.Int("documents", index.Len()),
		zap.Int("dimensions", index.Dim()),
	)
	return nil
}

// embedText picks the richest available text for a case. The body carries
// the most signal; an empty body falls back to the structured fields.
func embedText(row domain.CaseDetail) string {
	for _, text := range []string{row.Body, row.Holding, row.Issues} {
		if strings.TrimSpace(text) != "" {
			return text
		}
	}
	return strings.TrimSpace(row.CaseName + " " + row.CaseNo)
}

func embedAll(
	ctx context.Context,
	embedder domain.Embedder,
	texts []string,
	batchSize int,
	logger *zap.Logger,
) ([][]float32, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		res, err := embedBatch(ctx, embedder, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed rows %d-%d: %w", start, end-1, err)
		}
		vectors = append(vectors, res.Embeddings...)

		logger.Info("Batch embedded",
			zap.Int("done", end),
			zap.Int("total", len(texts)),
			zap.Int("tokens", res.TotalTokens),
		)
	}
	return vectors, nil
}

func embedBatch(ctx context.Context, embedder domain.Embedder, texts []string) (domain.BatchEmbeddingResult, error) {
	if batcher, ok := embedder.(domain.BatchEmbedder); ok {
		return batcher.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, embedder, texts)
}
