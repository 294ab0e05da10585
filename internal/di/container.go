package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"question-service/internal/adapter/answer_client"
	"question-service/internal/adapter/repository"
	"question-service/internal/adapter/repository/memory"
	pgrepo "question-service/internal/adapter/repository/postgres"
	redisrepo "question-service/internal/adapter/repository/redis"
	"question-service/internal/adapter/rest"
	"question-service/internal/infra/config"
	"question-service/internal/infra/postgres"
	"question-service/internal/port/question_port"
	"question-service/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	// Storage backend selected by db.backend, wrapped with metrics
	Questions question_port.QuestionPort
	Backend   string

	// Outbound RPC
	AnswerClient *answer_client.Client

	// Usecases
	AnswerQuestionUsecase usecase.AnswerQuestionUsecase

	// HTTP
	Handler *rest.Handler

	closers []func() error
}

// NewApplicationComponents wires all dependencies from cfg. The storage backend is
// chosen once here and never changes for the lifetime of the process.
func NewApplicationComponents(ctx context.Context, cfg *config.Config, log *slog.Logger) (*ApplicationComponents, error) {
	if log == nil {
		log = slog.Default()
	}
	components := &ApplicationComponents{Backend: cfg.DB.Backend}

	store, err := components.newQuestionStore(ctx, cfg, log)
	if err != nil {
		_ = components.Close()
		return nil, err
	}
	components.Questions = repository.NewInstrumented(store, cfg.DB.Backend, log)

	answerClient, err := answer_client.New(answer_client.Config{
		Endpoint:       cfg.Answer.Endpoint,
		Protocol:       cfg.Answer.Protocol,
		ConnectTimeout: cfg.Answer.ConnectTimeout,
		RequestTimeout: cfg.Answer.RequestTimeout,
	}, log)
	if err != nil {
		_ = components.Close()
		return nil, fmt.Errorf("answer client: %w", err)
	}
	components.AnswerClient = answerClient
	components.closers = append(components.closers, func() error {
		answerClient.Close()
		return nil
	})

	components.AnswerQuestionUsecase = usecase.NewAnswerQuestionUsecase(components.Questions, answerClient, log)
	components.Handler = rest.NewHandler(components.Questions, components.AnswerQuestionUsecase, log)

	log.Info("application components initialized",
		"backend", cfg.DB.Backend,
		"answer_endpoint", cfg.Answer.Endpoint,
		"answer_protocol", cfg.Answer.Protocol,
	)
	return components, nil
}

func (a *ApplicationComponents) newQuestionStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (question_port.QuestionPort, error) {
	switch cfg.DB.Backend {
	case config.BackendInMemory:
		return memory.NewQuestionRepository(), nil

	case config.BackendPostgres:
		if cfg.DB.PG.Migrate {
			if err := postgres.MigrateUp(cfg.DB.PG.URL, log); err != nil {
				return nil, fmt.Errorf("postgres migrations: %w", err)
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB.PG.URL, postgres.PoolConfig{MaxConns: cfg.DB.PG.MaxSize})
		if err != nil {
			return nil, fmt.Errorf("postgres pool: %w", err)
		}
		a.closers = append(a.closers, func() error {
			pool.Close()
			return nil
		})
		return pgrepo.NewQuestionRepository(pool), nil

	case config.BackendRedis:
		opts, err := goredis.ParseURL(cfg.DB.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		client := goredis.NewClient(opts)
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return redisrepo.NewQuestionRepository(client, cfg.DB.Redis.Prefix), nil

	default:
		return nil, fmt.Errorf("unsupported db backend: %s", cfg.DB.Backend)
	}
}

// Close releases backend connections in reverse order of acquisition.
func (a *ApplicationComponents) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
