package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/entity"
)

const resultListKey = "results"

// ResultRepository archives finished matches. It is write-mostly: the server
// only appends summaries and bumps per-mark win counters; nothing in the
// game flow ever reads them back.
type ResultRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	Recent(ctx context.Context, limit int64) ([]*entity.GameResult, error)
	Wins(ctx context.Context, mark string) (int64, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.GameResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	if err = that.client.LPush(ctx, resultListKey, resultJSON).Err(); err != nil {
		return fmt.Errorf("failed to push result: %w", err)
	}

	winsKey := "wins:" + result.Winner
	if err = that.client.Incr(ctx, winsKey).Err(); err != nil {
		return fmt.Errorf("failed to increment wins: %w", err)
	}

	return nil
}

func (that *dbResult) Recent(ctx context.Context, limit int64) ([]*entity.GameResult, error) {
	rows, err := that.client.LRange(ctx, resultListKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}

	results := make([]*entity.GameResult, 0, len(rows))
	for _, row := range rows {
		var result entity.GameResult
		if err = json.Unmarshal([]byte(row), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		results = append(results, &result)
	}

	return results, nil
}

func (that *dbResult) Wins(ctx context.Context, mark string) (int64, error) {
	count, err := that.client.Get(ctx, "wins:"+mark).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to read wins: %w", err)
	}

	return count, nil
}
