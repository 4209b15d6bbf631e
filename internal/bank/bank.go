// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/quizcards-tui/internal/api"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed        = errors.New("question bank is closed")
	ErrEmptyBank     = errors.New("question bank is empty")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS questions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	remote_id TEXT NOT NULL DEFAULT '',
	topic TEXT NOT NULL DEFAULT '',
	source_text TEXT NOT NULL,
	question TEXT NOT NULL,
	options TEXT NOT NULL,
	correct_answer TEXT NOT NULL,
	saved_at INTEGER NOT NULL,
	UNIQUE(question, correct_answer)
);

CREATE INDEX IF NOT EXISTS idx_questions_topic ON questions(topic);
CREATE INDEX IF NOT EXISTS idx_questions_saved_at ON questions(saved_at);
`

// =============================================================================
// QUESTION BANK
// =============================================================================

// StoredQuestion is one question row as read back from the bank.
type StoredQuestion struct {
	ID            int64
	RemoteID      string
	Topic         string
	SourceText    string
	Question      string
	Options       []string
	CorrectAnswer string
	SavedAt       time.Time
}

// Bank is a local question store backed by a single SQLite file.
type Bank struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the bank database at the given path.
func Open(path string) (*Bank, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create bank directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Bank{db: db, path: path}, nil
}

// Close closes the underlying database.
func (b *Bank) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// Path returns the database file path.
func (b *Bank) Path() string {
	return b.path
}

// =============================================================================
// WRITES
// =============================================================================

// SaveQuestions stores a question set under the given topic and returns
// how many rows were newly inserted. Questions already present (same
// question text and correct answer) are skipped.
func (b *Bank) SaveQuestions(ctx context.Context, topic string, questions []api.Question) (int, error) {
	if b.db == nil {
		return 0, ErrClosed
	}
	if len(questions) == 0 {
		return 0, nil
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	inserted := 0
	now := time.Now().Unix()
	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return 0, fmt.Errorf("failed to encode options: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO questions
				(remote_id, topic, source_text, question, options, correct_answer, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, q.ID, strings.TrimSpace(topic), q.Text, q.Question, string(options), q.CorrectAnswer, now)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return inserted, nil
}

// Sync mirrors the user's server-side questions into the bank. Rows
// already present are skipped, so repeated syncs converge.
func (b *Bank) Sync(ctx context.Context, questions []api.Question) (int, error) {
	return b.SaveQuestions(ctx, "", questions)
}

// =============================================================================
// READS
// =============================================================================

// List returns stored questions, newest first. A non-empty topic
// restricts the result to that topic.
func (b *Bank) List(ctx context.Context, topic string) ([]StoredQuestion, error) {
	if b.db == nil {
		return nil, ErrClosed
	}

	query := `
		SELECT id, remote_id, topic, source_text, question, options, correct_answer, saved_at
		FROM questions
	`
	args := []any{}
	if topic != "" {
		query += " WHERE topic = ?"
		args = append(args, topic)
	}
	query += " ORDER BY saved_at DESC, id DESC"

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []StoredQuestion
	for rows.Next() {
		var (
			q       StoredQuestion
			options string
			savedAt int64
		)
		if err := rows.Scan(&q.ID, &q.RemoteID, &q.Topic, &q.SourceText, &q.Question, &options, &q.CorrectAnswer, &savedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			// A corrupt options column should not hide the row.
			q.Options = nil
		}
		q.SavedAt = time.Unix(savedAt, 0)
		out = append(out, q)
	}
	return out, rows.Err()
}

// Count returns the number of stored questions.
func (b *Bank) Count(ctx context.Context) (int, error) {
	if b.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := b.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}

// Topics returns the distinct non-empty topics in the bank.
func (b *Bank) Topics(ctx context.Context) ([]string, error) {
	if b.db == nil {
		return nil, ErrClosed
	}
	rows, err := b.db.QueryContext(ctx,
		"SELECT DISTINCT topic FROM questions WHERE topic != '' ORDER BY topic")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// =============================================================================
// EXPORT
// =============================================================================

// ExportMarkdown writes the whole bank as a Markdown document and
// returns the number of exported questions.
func (b *Bank) ExportMarkdown(ctx context.Context, path string) (int, error) {
	questions, err := b.List(ctx, "")
	if err != nil {
		return 0, err
	}
	if len(questions) == 0 {
		return 0, ErrEmptyBank
	}

	var sb strings.Builder
	sb.WriteString("# Banco de preguntas\n\n")
	sb.WriteString(fmt.Sprintf("Exportado: %s\n\n", time.Now().Format("2006-01-02 15:04")))

	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("## Pregunta %d\n\n", i+1))
		if q.Topic != "" {
			sb.WriteString(fmt.Sprintf("Tema: %s\n\n", q.Topic))
		}
		sb.WriteString(q.Question + "\n\n")
		for _, opt := range q.Options {
			marker := " "
			if opt == q.CorrectAnswer {
				marker = "x"
			}
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", marker, opt))
		}
		sb.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return 0, fmt.Errorf("failed to write export: %w", err)
	}
	return len(questions), nil
}
