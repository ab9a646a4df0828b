package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jaekwang-park/taskboard/internal/model"
)

// CachedTaskRepository keeps each user's task list in Redis. Reads fall back
// to the base repository on any cache failure and writes evict the user's key.
//
// Every eviction bumps a per-user generation. A read only fills the cache if
// the generation it saw before reading the base store is still current, so a
// list read before a write never lands after that write's eviction.
type CachedTaskRepository struct {
	base  TaskRepository
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedTask(base TaskRepository, client *redis.Client, ttl time.Duration) *CachedTaskRepository {
	if base == nil {
		panic("repository.NewCachedTask: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &CachedTaskRepository{base: base, redis: client, ttl: ttl}
}

func (c *CachedTaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	if tasks, ok := c.load(ctx, userID); ok {
		return tasks, nil
	}

	gen, fill := c.generation(ctx, userID)
	tasks, err := c.base.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if fill {
		c.store(ctx, userID, gen, tasks)
	}
	return tasks, nil
}

func (c *CachedTaskRepository) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	return c.base.GetByID(ctx, userID, taskID)
}

func (c *CachedTaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	created, err := c.base.Create(ctx, task)
	if err != nil {
		return model.Task{}, err
	}
	c.evict(ctx, task.UserID)
	return created, nil
}

func (c *CachedTaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	updated, err := c.base.Update(ctx, task)
	if err != nil {
		return model.Task{}, err
	}
	c.evict(ctx, task.UserID)
	return updated, nil
}

func (c *CachedTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	if err := c.base.Delete(ctx, userID, taskID); err != nil {
		return err
	}
	c.evict(ctx, userID)
	return nil
}

func (c *CachedTaskRepository) load(ctx context.Context, userID string) ([]model.Task, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, tasksCacheKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			_ = c.redis.Del(ctx, tasksCacheKey(userID)).Err()
		}
		return nil, false
	}
	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		_ = c.redis.Del(ctx, tasksCacheKey(userID)).Err()
		return nil, false
	}
	return tasks, true
}

// generation reports the user's current cache generation. false means the
// generation could not be read and the result must not be cached.
func (c *CachedTaskRepository) generation(ctx context.Context, userID string) (int64, bool) {
	if c.redis == nil || c.ttl == 0 {
		return 0, false
	}
	gen, err := c.redis.Get(ctx, tasksGenKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, false
	}
	return gen, true
}

// store writes tasks only while the generation still equals gen. A concurrent
// eviction aborts the transaction and the entry is skipped.
func (c *CachedTaskRepository) store(ctx context.Context, userID string, gen int64, tasks []model.Task) {
	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}

	genKey := tasksGenKey(userID)
	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, tasksCacheKey(userID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if err != nil && !errors.Is(err, errStaleFill) && !errors.Is(err, redis.TxFailedErr) {
		slog.Debug("task cache fill failed", "user_id", userID, "error", err)
	}
}

func (c *CachedTaskRepository) evict(ctx context.Context, userID string) {
	if c.redis == nil {
		return
	}
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, tasksGenKey(userID))
		pipe.Del(ctx, tasksCacheKey(userID))
		return nil
	})
	if err != nil {
		slog.Warn("task cache eviction failed", "user_id", userID, "error", err)
	}
}

var errStaleFill = errors.New("task cache generation changed")

func tasksCacheKey(userID string) string {
	return "tasks:" + userID
}

func tasksGenKey(userID string) string {
	return "tasks:gen:" + userID
}

var _ TaskRepository = (*CachedTaskRepository)(nil)
