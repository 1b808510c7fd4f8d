package redisqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/mailq"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultQueueName coincide con la cola que consume el servicio de mailing.
const DefaultQueueName = "emailQueue"

// Queue implementa mailq.Queue sobre una lista de Redis (LPUSH; el
// consumidor externo hace BRPOP). At-least-once: si el consumidor falla
// re-encola, acá solo se publica.
type Queue struct {
	log  logger.Logger
	rdb  *goredis.Client
	name string
}

// NewFromEnv conecta usando REDIS_ADDR (obligatorio) y EMAIL_QUEUE_NAME
// (default emailQueue). Hace ping para fallar temprano.
func NewFromEnv(log logger.Logger) (*Queue, error) {
	if log == nil {
		log = logger.NewFromEnv()
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	name := strings.TrimSpace(os.Getenv("EMAIL_QUEUE_NAME"))
	if name == "" {
		name = DefaultQueueName
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Queue{
		log:  log.With(map[string]any{"adapter": "redisqueue", "queue": name}),
		rdb:  rdb,
		name: name,
	}, nil
}

func (q *Queue) Enqueue(ctx context.Context, job mailq.Job) error {
	if q == nil || q.rdb == nil {
		return fmt.Errorf("redis queue not initialized")
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := q.rdb.LPush(ctx, q.name, raw).Err(); err != nil {
		return fmt.Errorf("redis lpush: %w", err)
	}
	q.log.Debug("email job enqueued", map[string]any{
		"to_user_id": job.ToUserID, "template": job.Template,
	})
	return nil
}

func (q *Queue) Close() error {
	if q == nil || q.rdb == nil {
		return nil
	}
	return q.rdb.Close()
}
