package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis"
	"github.com/teranos/mamdani/fis/membership"
	"github.com/teranos/mamdani/fis/parser"
	"github.com/teranos/mamdani/fis/rulebase"
	"github.com/teranos/mamdani/fis/types"
	"github.com/teranos/mamdani/logger"
)

// RuleBaseStore saves named rule bases with their compiled rules
type RuleBaseStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewRuleBaseStore creates a rule base store. l may be nil.
func NewRuleBaseStore(db *sql.DB, l *zap.SugaredLogger) *RuleBaseStore {
	return &RuleBaseStore{
		db:     db,
		logger: logger.AddDBSymbol(l),
	}
}

// StoredRuleBase is a rule base as loaded from the database
type StoredRuleBase struct {
	Definition  *rulebase.Definition
	Store       *membership.Store
	Rules       []types.CompiledRule
	Fingerprint string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Recompiled is set when the stored tokens did not match the layout
	Recompiled bool
}

// Engine builds an engine from the stored compiled rules
func (s *StoredRuleBase) Engine(opts ...fis.Option) (*fis.Engine, error) {
	return fis.NewCompiled(s.Store, s.Rules, opts...)
}

// Summary is one row of List
type Summary struct {
	Name          string    `json:"name"`
	SchemaVersion string    `json:"schema_version"`
	Description   string    `json:"description,omitempty"`
	Fingerprint   string    `json:"fingerprint"`
	Rules         int       `json:"rules"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Save inserts or replaces the rule base called name. compiled must hold
// one rule per definition rule, in order; nil compiles them here.
func (rs *RuleBaseStore) Save(ctx context.Context, name string, def *rulebase.Definition, compiled []types.CompiledRule) error {
	if name == "" {
		return errors.NewInvalidRequestError("rule base name cannot be empty")
	}
	if def == nil {
		return errors.NewInvalidRequestError("rule base %q has no definition", name)
	}

	store, err := def.Store()
	if err != nil {
		return errors.Wrapf(err, "rule base %q", name)
	}
	if compiled == nil {
		if compiled, err = parser.CompileAll(store, def.Rules); err != nil {
			return errors.Wrapf(err, "rule base %q", name)
		}
	}
	if len(compiled) != len(def.Rules) {
		return errors.NewInvalidRequestError("rule base %q has %d rules but %d compiled rules", name, len(def.Rules), len(compiled))
	}

	stored := *def
	stored.Name = name
	definition, err := json.Marshal(&stored)
	if err != nil {
		return errors.Wrap(err, "failed to marshal definition")
	}

	tx, err := rs.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO rulebases (name, schema_version, description, fingerprint, definition, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			schema_version = excluded.schema_version,
			description = excluded.description,
			fingerprint = excluded.fingerprint,
			definition = excluded.definition,
			updated_at = excluded.updated_at`,
		name, stored.SchemaVersion, stored.Description, store.Fingerprint(), string(definition), now, now)
	if err != nil {
		return errors.Wrapf(err, "failed to save rule base %q", name)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM compiled_rules WHERE rulebase = ?`, name); err != nil {
		return errors.Wrapf(err, "failed to clear compiled rules of %q", name)
	}

	for i, r := range compiled {
		tokens, err := json.Marshal(r.Ints())
		if err != nil {
			return errors.Wrapf(err, "failed to marshal rule %d", i)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO compiled_rules (rulebase, position, source, tokens)
			VALUES (?, ?, ?, ?)`,
			name, i, r.Source, string(tokens))
		if err != nil {
			return errors.Wrapf(err, "failed to save rule %d of %q", i, name)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	rs.logger.Infow("Saved rule base",
		logger.FieldRuleBase, name,
		logger.FieldFingerprint, store.Fingerprint(),
		logger.FieldRules, len(compiled))
	return nil
}

// Get loads the rule base called name
func (rs *RuleBaseStore) Get(ctx context.Context, name string) (*StoredRuleBase, error) {
	var (
		definition string
		out        StoredRuleBase
	)
	err := rs.db.QueryRowContext(ctx, `
		SELECT definition, fingerprint, created_at, updated_at
		FROM rulebases
		WHERE name = ?`, name).
		Scan(&definition, &out.Fingerprint, &out.CreatedAt, &out.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("rule base %q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load rule base %q", name)
	}

	var def rulebase.Definition
	if err := json.Unmarshal([]byte(definition), &def); err != nil {
		return nil, errors.Wrapf(err, "failed to decode stored definition of %q", name)
	}
	out.Definition = &def

	if out.Store, err = def.Store(); err != nil {
		return nil, errors.Wrapf(err, "stored rule base %q", name)
	}

	if out.Rules, err = rs.compiledRules(ctx, name); err != nil {
		return nil, err
	}

	if fp := out.Store.Fingerprint(); fp != out.Fingerprint || len(out.Rules) != len(def.Rules) {
		rs.logger.Warnw("Stored tokens do not match layout, recompiling",
			logger.FieldRuleBase, name,
			logger.FieldFingerprint, fp,
			"stored_fingerprint", out.Fingerprint)
		if out.Rules, err = parser.CompileAll(out.Store, def.Rules); err != nil {
			return nil, errors.Wrapf(err, "failed to recompile rule base %q", name)
		}
		out.Fingerprint = fp
		out.Recompiled = true
	}

	return &out, nil
}

func (rs *RuleBaseStore) compiledRules(ctx context.Context, name string) ([]types.CompiledRule, error) {
	rows, err := rs.db.QueryContext(ctx, `
		SELECT source, tokens
		FROM compiled_rules
		WHERE rulebase = ?
		ORDER BY position`, name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load compiled rules of %q", name)
	}
	defer rows.Close()

	var rules []types.CompiledRule
	for rows.Next() {
		var source, tokens string
		if err := rows.Scan(&source, &tokens); err != nil {
			return nil, errors.Wrap(err, "failed to scan compiled rule")
		}
		var ints []int
		if err := json.Unmarshal([]byte(tokens), &ints); err != nil {
			return nil, errors.Wrapf(err, "failed to decode tokens of %q", source)
		}
		rules = append(rules, types.CompiledRule{Source: source, Tokens: types.TokensFromInts(ints)})
	}
	return rules, rows.Err()
}

// List returns every stored rule base ordered by name
func (rs *RuleBaseStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := rs.db.QueryContext(ctx, `
		SELECT r.name, r.schema_version, r.description, r.fingerprint, r.updated_at,
			(SELECT COUNT(*) FROM compiled_rules c WHERE c.rulebase = r.name)
		FROM rulebases r
		ORDER BY r.name`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rule bases")
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Name, &s.SchemaVersion, &s.Description, &s.Fingerprint, &s.UpdatedAt, &s.Rules); err != nil {
			return nil, errors.Wrap(err, "failed to scan rule base")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes the rule base and its compiled rules
func (rs *RuleBaseStore) Delete(ctx context.Context, name string) error {
	res, err := rs.db.ExecContext(ctx, `DELETE FROM rulebases WHERE name = ?`, name)
	if err != nil {
		return errors.Wrapf(err, "failed to delete rule base %q", name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return errors.NewNotFoundError("rule base %q", name)
	}

	rs.logger.Infow("Deleted rule base", logger.FieldRuleBase, name)
	return nil
}
