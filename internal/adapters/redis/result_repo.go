package redisrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/larriantoniy/ocrspace/internal/domain"
	"github.com/larriantoniy/ocrspace/internal/ports"
	"github.com/redis/go-redis/v9"
)

var _ ports.ResultRepo = (*ResultRepo)(nil)

const (
	keyPrefix = "ocr_result:"
	indexName = "idx:ocr_results"
)

// ResultRepo stores recognitions as RedisJSON documents indexed by RediSearch.
type ResultRepo struct {
	client *redis.Client
	logger *slog.Logger
}

func NewResultRepo(addr, password string, db int, logger *slog.Logger) *ResultRepo {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		// FT.SEARCH replies are parsed in their RESP2 array form.
		Protocol: 2,
	})
	return &ResultRepo{
		client: rdb,
		logger: logger,
	}
}

// EnsureIndex creates the search index unless it already exists.
func (r *ResultRepo) EnsureIndex(ctx context.Context) error {
	args := []interface{}{
		"FT.CREATE", indexName, "ON", "JSON", "PREFIX", "1", keyPrefix,
		"SCHEMA", "$.Text", "AS", "text", "TEXT", "$.Source", "AS", "source", "TEXT",
	}
	if err := r.client.Do(ctx, args...).Err(); err != nil {
		if strings.Contains(err.Error(), "Index already exists") {
			return nil
		}
		r.logger.Error("Redis FT.CREATE failed", "index", indexName, "err", err)
		return fmt.Errorf("create index %s: %w", indexName, err)
	}
	r.logger.Info("Redis index created", "index", indexName)
	return nil
}

// Close releases the underlying connection pool.
func (r *ResultRepo) Close() error {
	return r.client.Close()
}

func (r *ResultRepo) Save(ctx context.Context, rec *domain.Recognition) error {
	key := keyPrefix + rec.ID
	data, err := json.Marshal(rec)
	if err != nil {
		r.logger.Error("Redis marshaling error", "key", key, "err", err)
		return err
	}
	res, err := r.client.Do(ctx, "JSON.SET", key, "$", string(data)).Result()
	if err != nil {
		r.logger.Error("Redis JSON.SET failed", "key", key, "err", err)
		return err
	}
	r.logger.Info("Redis set succeeded", "key", key, "res", res)
	return nil
}

func (r *ResultRepo) FindByText(ctx context.Context, query string) ([]domain.Recognition, error) {
	args := []interface{}{"FT.SEARCH", indexName, query, "LIMIT", "0", "100"}
	res, err := r.client.Do(ctx, args...).Result()
	if err != nil {
		r.logger.Error("Redis FT.SEARCH failed", "query", query, "err", err)
		return nil, err
	}
	return parseSearchResult(res)
}

func (r *ResultRepo) GetAll(ctx context.Context) ([]domain.Recognition, error) {
	args := []interface{}{"FT.SEARCH", indexName, "*", "LIMIT", "0", "1000"}
	res, err := r.client.Do(ctx, args...).Result()
	if err != nil {
		r.logger.Error("Redis GET ALL recognitions failed", "err", err)
		return nil, err
	}
	recs, err := parseSearchResult(res)
	if err != nil {
		r.logger.Error("FT.SEARCH returned unexpected reply", "type", fmt.Sprintf("%T", res), "err", err)
		return nil, err
	}
	return recs, nil
}

// parseSearchResult reads a RESP2 FT.SEARCH reply:
// [total, key1, ["$", json1], key2, ["$", json2], ...]
func parseSearchResult(res interface{}) ([]domain.Recognition, error) {
	arr, ok := res.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result type: %T", res)
	}

	recs := make([]domain.Recognition, 0, len(arr)/2)

	// arr[0] is the total number of matches
	for i := 1; i+1 < len(arr); i += 2 {
		docFields, ok := arr[i+1].([]interface{})
		if !ok || len(docFields) != 2 {
			return recs, fmt.Errorf("unexpected document format at index %d: %T", i+1, arr[i+1])
		}

		jsonStr, ok := docFields[1].(string)
		if !ok {
			return recs, fmt.Errorf("unexpected json payload type: %T", docFields[1])
		}

		var rec domain.Recognition
		if err := json.Unmarshal([]byte(jsonStr), &rec); err != nil {
			return recs, fmt.Errorf("failed to unmarshal recognition JSON: %w", err)
		}

		recs = append(recs, rec)
	}

	return recs, nil
}
