package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"question-service/internal/domain"
	"question-service/internal/port/question_port"
	apperrors "question-service/internal/utils/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PgxPool is the subset of *pgxpool.Pool used by the repository.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
}

type questionRepository struct {
	pool PgxPool
	now  func() time.Time
}

var (
	_ question_port.QuestionPort  = (*questionRepository)(nil)
	_ question_port.HealthChecker = (*questionRepository)(nil)
)

// NewQuestionRepository creates a QuestionPort backed by the questions table.
func NewQuestionRepository(pool PgxPool) question_port.QuestionPort {
	return &questionRepository{
		pool: pool,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *questionRepository) Get(ctx context.Context, id domain.QuestionID) (*domain.Question, error) {
	dbID, err := id.Int32()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, content, tags, created_on
		FROM questions
		WHERE id = $1
	`
	var row questionRow
	err = r.pool.QueryRow(ctx, query, dbID).Scan(&row.ID, &row.Title, &row.Content, &row.Tags, &row.CreatedOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storageError("failed to fetch question", err, id)
	}

	q := row.toDomain()
	return &q, nil
}

func (r *questionRepository) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	query := `
		SELECT id, title, content, tags, created_on
		FROM questions
		WHERE ($1::text = '' OR $1::text = ANY(tags))
		  AND ($2::text = '' OR title ILIKE '%' || $2::text || '%')
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, filter.Tag, escapeLike(filter.Title))
	if err != nil {
		return nil, storageError("failed to list questions", err, 0)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		var row questionRow
		if err := rows.Scan(&row.ID, &row.Title, &row.Content, &row.Tags, &row.CreatedOn); err != nil {
			return nil, storageError("failed to scan question", err, 0)
		}
		questions = append(questions, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to iterate questions", err, 0)
	}
	return questions, nil
}

func (r *questionRepository) Add(ctx context.Context, question domain.Question) (domain.QuestionID, error) {
	if question.ID.IsZero() {
		row := newQuestionRow(question, 0, r.now())
		query := `
			INSERT INTO questions (title, content, tags, created_on)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		var id int32
		if err := r.pool.QueryRow(ctx, query, row.Title, row.Content, row.Tags, row.CreatedOn).Scan(&id); err != nil {
			return 0, insertError(err, question.ID)
		}
		return domain.QuestionID(id), nil
	}

	return r.addWithID(ctx, question)
}

// addWithID inserts a caller-supplied id and syncs the serial sequence in one
// transaction, so a failed sync leaves no row behind.
func (r *questionRepository) addWithID(ctx context.Context, question domain.Question) (_ domain.QuestionID, err error) {
	dbID, err := question.ID.Int32()
	if err != nil {
		return 0, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, storageError("failed to begin transaction", err, question.ID)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := newQuestionRow(question, dbID, r.now())
	query := `
		INSERT INTO questions (id, title, content, tags, created_on)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err = tx.Exec(ctx, query, row.ID, row.Title, row.Content, row.Tags, row.CreatedOn); err != nil {
		return 0, insertError(err, question.ID)
	}

	// Keep the identity sequence ahead of explicit ids so generated ids never collide.
	syncQuery := `
		SELECT setval(pg_get_serial_sequence('questions', 'id'), GREATEST((SELECT MAX(id) FROM questions), 1))
	`
	if _, err = tx.Exec(ctx, syncQuery); err != nil {
		return 0, storageError("failed to advance question id sequence", err, question.ID)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, storageError("failed to commit question", err, question.ID)
	}
	return question.ID, nil
}

func (r *questionRepository) Update(ctx context.Context, question domain.Question) error {
	dbID, err := question.ID.Int32()
	if err != nil {
		return err
	}

	query := `
		UPDATE questions
		SET title = $1, content = $2, tags = $3
		WHERE id = $4
	`
	tag, err := r.pool.Exec(ctx, query, question.Title, question.Content, wrapTags(question.Tags), dbID)
	if err != nil {
		return storageError("failed to update question", err, question.ID)
	}
	if tag.RowsAffected() == 0 {
		return notFound(question.ID)
	}
	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id domain.QuestionID) error {
	dbID, err := id.Int32()
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, dbID)
	if err != nil {
		return storageError("failed to delete question", err, id)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func (r *questionRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return apperrors.IOError("postgres is unreachable", err, nil)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func notFound(id domain.QuestionID) error {
	return apperrors.NotFoundError("question not found", map[string]interface{}{
		"id": id.String(),
	})
}

func insertError(err error, id domain.QuestionID) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.InternalError("question already exists", err, map[string]interface{}{
			"id": id.String(),
		})
	}
	return storageError("failed to insert question", err, id)
}

func storageError(msg string, err error, id domain.QuestionID) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.IOError(msg, err, nil)
	}
	ctx := map[string]interface{}{"backend": "postgres"}
	if !id.IsZero() {
		ctx["id"] = id.String()
	}
	return apperrors.InternalError(msg, err, ctx)
}
