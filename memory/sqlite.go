package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/rlmem/gating-rl/types"
	_ "modernc.org/sqlite"
)

// SQLiteKnowledgeSource is an embedded KnowledgeSource over a local SQLite
// database of (entity, attribute, value) facts. It stands in for a remote
// knowledge endpoint in tests and demos; values are stored in their canonical
// Key encoding.
type SQLiteKnowledgeSource struct {
	db   *sql.DB
	path string
}

var _ KnowledgeSource = &SQLiteKnowledgeSource{}

// OpenSQLiteKnowledgeSource opens (or creates) the database at path and
// ensures the facts schema exists. Use ":memory:" for an in-memory store.
func OpenSQLiteKnowledgeSource(ctx context.Context, path string) (*SQLiteKnowledgeSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &LookupError{Source: path, Err: fmt.Errorf("open database: %w", err)}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &LookupError{Source: path, Err: fmt.Errorf("ping database: %w", err)}
	}
	schema := `
		CREATE TABLE IF NOT EXISTS facts (
			entity    TEXT NOT NULL,
			attribute TEXT NOT NULL,
			value     TEXT NOT NULL,
			PRIMARY KEY (entity, attribute)
		);
		CREATE INDEX IF NOT EXISTS idx_facts_attr_value ON facts(attribute, value);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, &LookupError{Source: path, Err: fmt.Errorf("initialize schema: %w", err)}
	}
	return &SQLiteKnowledgeSource{db: db, path: path}, nil
}

// Add stores the attributes of an entity, overwriting existing values.
func (s *SQLiteKnowledgeSource) Add(ctx context.Context, entity string, attrs map[string]types.Value) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &LookupError{Source: s.path, Err: fmt.Errorf("begin transaction: %w", err)}
	}
	for name, v := range attrs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO facts (entity, attribute, value) VALUES (?, ?, ?)
			 ON CONFLICT (entity, attribute) DO UPDATE SET value = excluded.value`,
			entity, name, v.Key())
		if err != nil {
			tx.Rollback()
			return &LookupError{Source: s.path, Err: fmt.Errorf("insert fact %s.%s: %w", entity, name, err)}
		}
	}
	if err := tx.Commit(); err != nil {
		return &LookupError{Source: s.path, Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

// Query answers an exact-match lookup. Results are ordered by entity for
// determinism; Distinct and Limit apply after the optional Select projection.
func (s *SQLiteKnowledgeSource) Query(ctx context.Context, q Query) ([]Binding, error) {
	entities, err := s.matchEntities(ctx, q.Match)
	if err != nil {
		return nil, err
	}

	results := make([]Binding, 0, len(entities))
	seen := make(map[string]bool)
	for _, entity := range entities {
		binding, err := s.entityBinding(ctx, entity, q.Select)
		if err != nil {
			return nil, err
		}
		if len(binding) == 0 {
			continue
		}
		if q.Distinct {
			key := bindingKey(binding)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		results = append(results, binding)
		if q.Limit > 0 && len(results) == q.Limit {
			break
		}
	}
	return results, nil
}

func (s *SQLiteKnowledgeSource) Close() error {
	return s.db.Close()
}

// matchEntities returns the entities holding every Match pair, sorted.
func (s *SQLiteKnowledgeSource) matchEntities(ctx context.Context, match map[string]types.Value) ([]string, error) {
	var query strings.Builder
	args := make([]any, 0, 2*len(match))
	if len(match) == 0 {
		query.WriteString(`SELECT DISTINCT entity FROM facts`)
	} else {
		for i := 0; i < len(match); i++ {
			if i > 0 {
				query.WriteString(" INTERSECT ")
			}
			query.WriteString(`SELECT entity FROM facts WHERE attribute = ? AND value = ?`)
		}
		// Deterministic argument order.
		names := make([]string, 0, len(match))
		for name := range match {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			args = append(args, name, match[name].Key())
		}
	}
	query.WriteString(` ORDER BY entity`)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, &LookupError{Source: s.path, Err: fmt.Errorf("match query: %w", err)}
	}
	defer rows.Close()

	var entities []string
	for rows.Next() {
		var entity string
		if err := rows.Scan(&entity); err != nil {
			return nil, &LookupError{Source: s.path, Err: fmt.Errorf("scan entity: %w", err)}
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, &LookupError{Source: s.path, Err: fmt.Errorf("iterate entities: %w", err)}
	}
	return entities, nil
}

func (s *SQLiteKnowledgeSource) entityBinding(ctx context.Context, entity string, selected []string) (Binding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT attribute, value FROM facts WHERE entity = ? ORDER BY attribute`, entity)
	if err != nil {
		return nil, &LookupError{Source: s.path, Err: fmt.Errorf("binding query: %w", err)}
	}
	defer rows.Close()

	wanted := make(map[string]bool, len(selected))
	for _, name := range selected {
		wanted[name] = true
	}

	binding := make(Binding)
	for rows.Next() {
		var attribute, encoded string
		if err := rows.Scan(&attribute, &encoded); err != nil {
			return nil, &LookupError{Source: s.path, Err: fmt.Errorf("scan fact: %w", err)}
		}
		if len(selected) > 0 && !wanted[attribute] {
			continue
		}
		v, err := types.ParseValue(encoded)
		if err != nil {
			return nil, &LookupError{Source: s.path, Err: fmt.Errorf("decode fact %s.%s: %w", entity, attribute, err)}
		}
		binding[attribute] = v
	}
	if err := rows.Err(); err != nil {
		return nil, &LookupError{Source: s.path, Err: fmt.Errorf("iterate facts: %w", err)}
	}
	return binding, nil
}

func bindingKey(b Binding) string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	var key strings.Builder
	for _, name := range names {
		key.WriteString(name)
		key.WriteByte('=')
		key.WriteString(b[name].Key())
		key.WriteByte(';')
	}
	return key.String()
}
