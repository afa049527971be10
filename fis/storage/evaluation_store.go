package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis/types"
	"github.com/teranos/mamdani/logger"
)

// Evaluation is one recorded inference
type Evaluation struct {
	ID        string            `json:"id"`
	RuleBase  string            `json:"rulebase"`
	Evaluator string            `json:"evaluator"`
	Inputs    []float64         `json:"inputs"`
	Outputs   types.Aggregation `json:"outputs"`
	CreatedAt time.Time         `json:"created_at"`
}

// EvaluationStore records inference history
type EvaluationStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewEvaluationStore creates an evaluation store. l may be nil.
func NewEvaluationStore(db *sql.DB, l *zap.SugaredLogger) *EvaluationStore {
	return &EvaluationStore{
		db:     db,
		logger: logger.AddDBSymbol(l),
	}
}

// Record stores one evaluation and returns its id
func (es *EvaluationStore) Record(ctx context.Context, rulebase, evaluator string, inputs []float64, outputs types.Aggregation) (string, error) {
	if rulebase == "" {
		return "", errors.NewInvalidRequestError("rule base name cannot be empty")
	}

	in, err := json.Marshal(inputs)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal inputs")
	}
	if outputs == nil {
		outputs = types.Aggregation{}
	}
	out, err := json.Marshal(outputs)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal outputs")
	}

	id := uuid.New().String()
	_, err = es.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, rulebase, evaluator, inputs, outputs, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, rulebase, evaluator, string(in), string(out), time.Now().UTC())
	if err != nil {
		return "", errors.Wrapf(err, "failed to record evaluation of %q", rulebase)
	}

	es.logger.Debugw("Recorded evaluation",
		logger.FieldEvaluationID, id,
		logger.FieldRuleBase, rulebase,
		logger.FieldEvaluator, evaluator)
	return id, nil
}

// Recent returns up to limit evaluations of rulebase, newest first
func (es *EvaluationStore) Recent(ctx context.Context, rulebase string, limit int) ([]Evaluation, error) {
	if limit <= 0 {
		return nil, errors.NewInvalidRequestError("limit must be positive, got %d", limit)
	}

	rows, err := es.db.QueryContext(ctx, `
		SELECT id, rulebase, evaluator, inputs, outputs, created_at
		FROM evaluations
		WHERE rulebase = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, rulebase, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load evaluations of %q", rulebase)
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		var (
			ev          Evaluation
			inputs, agg string
		)
		if err := rows.Scan(&ev.ID, &ev.RuleBase, &ev.Evaluator, &inputs, &agg, &ev.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan evaluation")
		}
		if err := json.Unmarshal([]byte(inputs), &ev.Inputs); err != nil {
			return nil, errors.Wrapf(err, "failed to decode inputs of evaluation %s", ev.ID)
		}
		if err := json.Unmarshal([]byte(agg), &ev.Outputs); err != nil {
			return nil, errors.Wrapf(err, "failed to decode outputs of evaluation %s", ev.ID)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
