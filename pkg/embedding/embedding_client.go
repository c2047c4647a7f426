package embedding

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"recipe-pipeline/entities"
)

type (
	// Client calls the external embedding service. Missing credentials,
	// transport errors and timeouts all degrade to non-OK results; the
	// service being down must never fail a pipeline run.
	Client interface {
		Embed(ctx context.Context, text string) Result
		EmbedBatch(ctx context.Context, texts []string) []Result
	}

	Config struct {
		BaseURL      string
		APISecret    string
		Timeout      time.Duration // single requests
		BatchTimeout time.Duration // batch requests carry more payload
	}

	client struct {
		http  *resty.Client
		cfg   Config
		cache Cache
		log   *zap.Logger
	}

	embedRequest struct {
		Text      string `json:"text"`
		Normalize bool   `json:"normalize"`
	}

	embedResponse struct {
		Embedding []float32 `json:"embedding"`
	}

	embedBatchRequest struct {
		Texts     []string `json:"texts"`
		Normalize bool     `json:"normalize"`
	}

	embedBatchResponse struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
)

// NewClient creates an embedding client. cache may be nil.
func NewClient(cfg Config, cache Cache, log *zap.Logger) Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("X-API-Key", cfg.APISecret).
		SetHeader("Content-Type", "application/json")

	return &client{
		http:  httpClient,
		cfg:   cfg,
		cache: cache,
		log:   log,
	}
}

func (c *client) Embed(ctx context.Context, text string) Result {
	if c.cfg.APISecret == "" {
		c.log.Warn("embedding API secret not configured, skipping embedding call")
		return unavailable()
	}

	if c.cache != nil {
		if vector, hit := c.cache.Get(ctx, text); hit {
			return ok(vector)
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	var body embedResponse
	resp, err := c.http.R().
		SetContext(reqCtx).
		SetBody(embedRequest{Text: text, Normalize: true}).
		SetResult(&body).
		Post("/embed")
	if err != nil {
		return c.degraded("single", err)
	}
	if resp.IsError() {
		c.log.Error("embedding service returned error status",
			zap.Int("status", resp.StatusCode()))
		return unavailable()
	}

	if err := checkDimension(body.Embedding); err != nil {
		c.log.Error("embedding response rejected", zap.Error(err))
		return unavailable()
	}

	c.log.Info("embedding generated",
		zap.Int("dimension", len(body.Embedding)),
		zap.Duration("duration", time.Since(start)))

	if c.cache != nil {
		c.cache.Set(ctx, text, body.Embedding)
	}
	return ok(body.Embedding)
}

// EmbedBatch returns one result slot per input, order preserved. A failed
// service call degrades every non-cached slot at once; there is no partial
// poisoning within a single transport failure.
func (c *client) EmbedBatch(ctx context.Context, texts []string) []Result {
	results := make([]Result, len(texts))
	if len(texts) == 0 {
		return results
	}

	if c.cfg.APISecret == "" {
		c.log.Warn("embedding API secret not configured, skipping batch embedding call")
		for i := range results {
			results[i] = unavailable()
		}
		return results
	}

	missing := make([]int, 0, len(texts))
	for i, text := range texts {
		if c.cache != nil {
			if vector, hit := c.cache.Get(ctx, text); hit {
				results[i] = ok(vector)
				continue
			}
		}
		missing = append(missing, i)
	}
	if len(missing) == 0 {
		return results
	}

	missingTexts := make([]string, len(missing))
	for i, idx := range missing {
		missingTexts[i] = texts[idx]
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.BatchTimeout)
	defer cancel()

	start := time.Now()
	c.log.Info("generating batch embeddings", zap.Int("count", len(missingTexts)))

	var body embedBatchResponse
	resp, err := c.http.R().
		SetContext(reqCtx).
		SetBody(embedBatchRequest{Texts: missingTexts, Normalize: true}).
		SetResult(&body).
		Post("/embed/batch")
	if err != nil {
		degradedResult := c.degraded("batch", err)
		for _, idx := range missing {
			results[idx] = degradedResult
		}
		return results
	}
	if resp.IsError() || len(body.Embeddings) != len(missingTexts) {
		c.log.Error("batch embedding response rejected",
			zap.Int("status", resp.StatusCode()),
			zap.Int("expected", len(missingTexts)),
			zap.Int("received", len(body.Embeddings)))
		for _, idx := range missing {
			results[idx] = unavailable()
		}
		return results
	}

	for i, idx := range missing {
		vector := body.Embeddings[i]
		if err := checkDimension(vector); err != nil {
			c.log.Error("batch embedding slot rejected",
				zap.Int("slot", i), zap.Error(err))
			results[idx] = unavailable()
			continue
		}
		results[idx] = ok(vector)
		if c.cache != nil {
			c.cache.Set(ctx, texts[idx], vector)
		}
	}

	c.log.Info("batch embeddings generated",
		zap.Int("count", len(missingTexts)),
		zap.Duration("duration", time.Since(start)))
	return results
}

func (c *client) degraded(kind string, err error) Result {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		c.log.Error("embedding request timed out", zap.String("kind", kind), zap.Error(err))
		return timedOut()
	}
	c.log.Error("embedding request failed", zap.String("kind", kind), zap.Error(err))
	return unavailable()
}

func checkDimension(vector []float32) error {
	if len(vector) != entities.EmbeddingDimension {
		return fmt.Errorf("unexpected embedding dimension %d, want %d",
			len(vector), entities.EmbeddingDimension)
	}
	return nil
}
