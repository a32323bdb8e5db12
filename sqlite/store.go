package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akarpinski/prosecheck"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ prosecheck.ResultStore = (*ResultStore)(nil)

// ResultStore implements prosecheck.ResultStore using SQLite. Rows are
// keyed by a content hash of the sentence text, so lookups stay cheap for
// long sentences.
type ResultStore struct {
	db *DB
}

// NewResultStore creates a new ResultStore.
func NewResultStore(db *DB) *ResultStore {
	return &ResultStore{db: db}
}

// hashSentence computes xxHash of the sentence text and returns a hex string.
func hashSentence(sentence string) string {
	h := xxhash.Sum64String(sentence)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// Get retrieves the stored result for the exact sentence text.
// Returns ENOTFOUND if the sentence has never been stored.
func (s *ResultStore) Get(ctx context.Context, sentence string) (*prosecheck.SentenceResult, error) {
	var stored string
	var language string
	var problemsJSON string

	err := s.db.sql.QueryRowContext(ctx, `
		SELECT sentence, language, problems
		FROM check_results
		WHERE sentence_hash = ?
	`, hashSentence(sentence)).Scan(&stored, &language, &problemsJSON)

	if err == sql.ErrNoRows {
		return nil, prosecheck.Errorf(prosecheck.ENOTFOUND, "no stored result for sentence")
	}
	if err != nil {
		return nil, err
	}

	// Hash collisions are astronomically unlikely but cheap to detect.
	if stored != sentence {
		return nil, prosecheck.Errorf(prosecheck.ENOTFOUND, "no stored result for sentence")
	}

	var problems []prosecheck.Problem
	if err := json.Unmarshal([]byte(problemsJSON), &problems); err != nil {
		return nil, fmt.Errorf("failed to decode stored problems: %w", err)
	}

	return &prosecheck.SentenceResult{
		Sentence: stored,
		Language: prosecheck.Language(language),
		Problems: problems,
	}, nil
}

// Sentences returns the sentence text of every stored result. Used to
// seed a seen filter at startup so persisted results survive restarts.
func (s *ResultStore) Sentences(ctx context.Context) ([]string, error) {
	rows, err := s.db.sql.QueryContext(ctx, `SELECT sentence FROM check_results`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sentences []string
	for rows.Next() {
		var sentence string
		if err := rows.Scan(&sentence); err != nil {
			return nil, err
		}
		sentences = append(sentences, sentence)
	}
	return sentences, rows.Err()
}

// Put stores the result for the exact sentence text, replacing any
// previous result for the same text.
func (s *ResultStore) Put(ctx context.Context, sentence string, result prosecheck.SentenceResult) error {
	problemsJSON, err := json.Marshal(result.Problems)
	if err != nil {
		return fmt.Errorf("failed to encode problems: %w", err)
	}

	_, err = s.db.sql.ExecContext(ctx, `
		INSERT INTO check_results (id, sentence_hash, sentence, language, problems, checked_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(sentence_hash) DO UPDATE SET
			sentence = excluded.sentence,
			language = excluded.language,
			problems = excluded.problems,
			checked_at = excluded.checked_at
	`, uuid.New().String(), hashSentence(sentence), sentence, string(result.Language),
		string(problemsJSON), time.Now().UTC().Format(time.RFC3339))

	return err
}
