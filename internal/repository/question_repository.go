package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusq/survey-backend/internal/model"
)

// QuestionRepository handles question and option data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListBySurvey retrieves all questions for a survey, ordered by order_num,
// with each choice question's options attached in option order.
func (r *QuestionRepository) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, survey_id, question_text, question_type, required, order_num
		 FROM questions WHERE survey_id = $1
		 ORDER BY order_num`, surveyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	index := make(map[int]int) // question id → slice position
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.SurveyID, &q.QuestionText, &q.QuestionType, &q.Required, &q.OrderNum); err != nil {
			return nil, err
		}
		index[q.ID] = len(questions)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return questions, nil
	}

	optRows, err := r.pool.Query(ctx,
		`SELECT o.id, o.question_id, o.text, o.order_num
		 FROM question_options o
		 JOIN questions q ON o.question_id = q.id
		 WHERE q.survey_id = $1
		 ORDER BY o.question_id, o.order_num`, surveyID,
	)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var opt model.Option
		var questionID int
		if err := optRows.Scan(&opt.ID, &questionID, &opt.Text, &opt.OrderNum); err != nil {
			return nil, err
		}
		if pos, ok := index[questionID]; ok {
			questions[pos].Options = append(questions[pos].Options, opt)
		}
	}
	return questions, optRows.Err()
}

// ReplaceAll atomically replaces a survey's full question list. Option-less
// questions of choice types are rejected before any write happens.
func (r *QuestionRepository) ReplaceAll(ctx context.Context, surveyID uuid.UUID, questions []model.AddQuestionRequest) error {
	for _, q := range questions {
		if model.QuestionType(q.QuestionType).HasOptions() && len(q.Options) < 2 {
			return fmt.Errorf("question %q: %s questions need at least 2 options", q.QuestionText, q.QuestionType)
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE survey_id = $1`, surveyID); err != nil {
		return err
	}

	for _, q := range questions {
		var questionID int
		err := tx.QueryRow(ctx,
			`INSERT INTO questions (survey_id, question_text, question_type, required, order_num)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			surveyID, q.QuestionText, q.QuestionType, q.Required, q.OrderNum,
		).Scan(&questionID)
		if err != nil {
			return err
		}

		if !model.QuestionType(q.QuestionType).HasOptions() {
			continue
		}
		for _, opt := range q.Options {
			if _, err := tx.Exec(ctx,
				`INSERT INTO question_options (question_id, text, order_num)
				 VALUES ($1, $2, $3)`,
				questionID, opt.Text, opt.OrderNum,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}
