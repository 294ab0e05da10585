// Package redis stores questions as JSON documents in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"question-service/internal/domain"
	"question-service/internal/port/question_port"
	apperrors "question-service/internal/utils/errors"

	"github.com/redis/go-redis/v9"
)

// addScript stores a question only if its key is free, appends it to the insertion
// order and moves the id counter past it, all in one step.
//
// KEYS: question key, order zset, sequence counter, id counter
// ARGV: document, id
var addScript = redis.NewScript(`
if not redis.call('SET', KEYS[1], ARGV[1], 'NX') then
	return 0
end
local seq = redis.call('INCR', KEYS[3])
redis.call('ZADD', KEYS[2], seq, ARGV[2])
local current = tonumber(redis.call('GET', KEYS[4]) or '0')
if tonumber(ARGV[2]) > current then
	redis.call('SET', KEYS[4], ARGV[2])
end
return 1
`)

type questionRepository struct {
	client redis.UniversalClient
	prefix string
}

var (
	_ question_port.QuestionPort  = (*questionRepository)(nil)
	_ question_port.HealthChecker = (*questionRepository)(nil)
)

// NewQuestionRepository creates a QuestionPort whose keys live under prefix.
func NewQuestionRepository(client redis.UniversalClient, prefix string) question_port.QuestionPort {
	if prefix == "" {
		prefix = "questions"
	}
	return &questionRepository{client: client, prefix: prefix}
}

func (r *questionRepository) questionKey(id domain.QuestionID) string {
	return r.prefix + ":question:" + id.String()
}

func (r *questionRepository) orderKey() string  { return r.prefix + ":order" }
func (r *questionRepository) seqKey() string    { return r.prefix + ":seq" }
func (r *questionRepository) nextIDKey() string { return r.prefix + ":next_id" }

func (r *questionRepository) Get(ctx context.Context, id domain.QuestionID) (*domain.Question, error) {
	raw, err := r.client.Get(ctx, r.questionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storageError("failed to fetch question", err, id)
	}

	q, err := decode(raw)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	members, err := r.client.ZRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, storageError("failed to list question ids", err, 0)
	}

	questions := make([]domain.Question, 0, len(members))
	if len(members) == 0 {
		return questions, nil
	}

	keys := make([]string, len(members))
	for i, member := range members {
		keys[i] = r.prefix + ":question:" + member
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storageError("failed to load questions", err, 0)
	}

	for _, value := range values {
		s, ok := value.(string)
		if !ok {
			// Deleted between ZRANGE and MGET.
			continue
		}
		q, err := decode([]byte(s))
		if err != nil {
			return nil, err
		}
		if filter.Matches(q) {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

func (r *questionRepository) Add(ctx context.Context, question domain.Question) (domain.QuestionID, error) {
	explicit := !question.ID.IsZero()
	if explicit {
		if _, err := question.ID.Int32(); err != nil {
			return 0, err
		}
	}

	for {
		if !explicit {
			next, err := r.client.Incr(ctx, r.nextIDKey()).Result()
			if err != nil {
				return 0, storageError("failed to allocate question id", err, 0)
			}
			if next > math.MaxInt32 {
				return 0, apperrors.InternalError("question id space exhausted", nil, map[string]interface{}{
					"next_id": next,
				})
			}
			question.ID = domain.QuestionID(next)
		}

		doc, err := json.Marshal(question)
		if err != nil {
			return 0, apperrors.InternalError("failed to encode question", err, nil)
		}

		keys := []string{r.questionKey(question.ID), r.orderKey(), r.seqKey(), r.nextIDKey()}
		stored, err := addScript.Run(ctx, r.client, keys, doc, question.ID.String()).Int()
		if err != nil {
			return 0, storageError("failed to insert question", err, question.ID)
		}
		if stored == 1 {
			return question.ID, nil
		}
		if explicit {
			return 0, apperrors.InternalError("question already exists", nil, map[string]interface{}{
				"id": question.ID.String(),
			})
		}
		// A caller-supplied id took this slot; draw the next one.
	}
}

func (r *questionRepository) Update(ctx context.Context, question domain.Question) error {
	doc, err := json.Marshal(question)
	if err != nil {
		return apperrors.InternalError("failed to encode question", err, nil)
	}

	err = r.client.SetArgs(ctx, r.questionKey(question.ID), doc, redis.SetArgs{Mode: "XX"}).Err()
	if errors.Is(err, redis.Nil) {
		return notFound(question.ID)
	}
	if err != nil {
		return storageError("failed to update question", err, question.ID)
	}
	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id domain.QuestionID) error {
	var deleted *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, r.questionKey(id))
		pipe.ZRem(ctx, r.orderKey(), id.String())
		return nil
	})
	if err != nil {
		return storageError("failed to delete question", err, id)
	}
	if deleted.Val() == 0 {
		return notFound(id)
	}
	return nil
}

func (r *questionRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return apperrors.IOError("redis is unreachable", err, nil)
	}
	return nil
}

func decode(raw []byte) (domain.Question, error) {
	var q domain.Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return domain.Question{}, apperrors.InternalError("failed to decode stored question", err, map[string]interface{}{
			"backend": "redis",
		})
	}
	return q, nil
}

func notFound(id domain.QuestionID) error {
	return apperrors.NotFoundError("question not found", map[string]interface{}{
		"id": id.String(),
	})
}

func storageError(msg string, err error, id domain.QuestionID) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.IOError(msg, err, nil)
	}
	ctx := map[string]interface{}{"backend": "redis"}
	if !id.IsZero() {
		ctx["id"] = strconv.FormatInt(int64(id), 10)
	}
	return apperrors.InternalError(msg, err, ctx)
}
