// Package logstore persists interview sessions: an append-only record of
// turns per session, plus the candidate profile and the final feedback.
package logstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"intervo/internal/schema"
)

// ParticipantName is the fixed interviewer display name stamped on every
// session record.
const ParticipantName = "Technical Interviewer"

// TurnRecord is one persisted turn.
type TurnRecord struct {
	TurnID           int
	CandidateMessage string
	AgentMessage     string
	InternalNotes    string
	CreatedAt        int64
}

// SessionLog is the full persisted record for one session.
type SessionLog struct {
	SessionID       string
	ParticipantName string
	Profile         *schema.CandidateProfile
	Turns           []TurnRecord
	FinalFeedback   *schema.FinalFeedback
}

// Store provides session log operations over sqlite.
type Store struct {
	db *sql.DB
}

// Open creates a store at dbPath and initializes the schema.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	// WAL mode allows a reader alongside the single writer.
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS sessions (
		session_id       TEXT PRIMARY KEY,
		participant_name TEXT NOT NULL,
		profile_json     TEXT,
		feedback_json    TEXT,
		created_at       INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS turns (
		session_id     TEXT NOT NULL,
		turn_id        INTEGER NOT NULL,
		candidate_msg  TEXT NOT NULL,
		agent_msg      TEXT NOT NULL,
		internal_notes TEXT NOT NULL,
		created_at     INTEGER NOT NULL,
		PRIMARY KEY (session_id, turn_id),
		FOREIGN KEY (session_id) REFERENCES sessions(session_id)
	);
	`
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Init creates the session record if missing. Idempotent: an existing
// record only has its participant name normalized.
func (s *Store) Init(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET participant_name = ? WHERE session_id = ?`,
		ParticipantName, sessionID)
	if err != nil {
		return fmt.Errorf("failed to normalize session: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, participant_name, created_at) VALUES (?, ?, ?)`,
		sessionID, ParticipantName, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// AppendTurn records one turn. The turn id must exceed the last recorded
// turn id for the session, and internal notes must be non-empty.
func (s *Store) AppendTurn(ctx context.Context, sessionID string, turn TurnRecord) error {
	if strings.TrimSpace(turn.InternalNotes) == "" {
		return fmt.Errorf("internal notes must be non-empty")
	}

	var last sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(turn_id) FROM turns WHERE session_id = ?`, sessionID).Scan(&last)
	if err != nil {
		return fmt.Errorf("failed to read last turn id: %w", err)
	}
	if last.Valid && turn.TurnID <= int(last.Int64) {
		return fmt.Errorf("turn id %d is not after last recorded turn %d", turn.TurnID, last.Int64)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO turns (session_id, turn_id, candidate_msg, agent_msg, internal_notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, turn.TurnID, turn.CandidateMessage, turn.AgentMessage, turn.InternalNotes, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// SetProfile attaches the extracted candidate profile to the session.
func (s *Store) SetProfile(ctx context.Context, sessionID string, profile *schema.CandidateProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET profile_json = ? WHERE session_id = ?`, string(data), sessionID)
	if err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s not initialized", sessionID)
	}
	return nil
}

// SetFinalFeedback attaches the final feedback record to the session.
func (s *Store) SetFinalFeedback(ctx context.Context, sessionID string, feedback *schema.FinalFeedback) error {
	data, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET feedback_json = ? WHERE session_id = ?`, string(data), sessionID)
	if err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s not initialized", sessionID)
	}
	return nil
}

// Load returns the full persisted log for one session.
func (s *Store) Load(ctx context.Context, sessionID string) (*SessionLog, error) {
	var (
		participant  string
		profileJSON  sql.NullString
		feedbackJSON sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT participant_name, profile_json, feedback_json FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&participant, &profileJSON, &feedbackJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	log := &SessionLog{SessionID: sessionID, ParticipantName: participant}
	if profileJSON.Valid {
		var p schema.CandidateProfile
		if err := json.Unmarshal([]byte(profileJSON.String), &p); err != nil {
			return nil, fmt.Errorf("failed to decode stored profile: %w", err)
		}
		log.Profile = &p
	}
	if feedbackJSON.Valid {
		var f schema.FinalFeedback
		if err := json.Unmarshal([]byte(feedbackJSON.String), &f); err != nil {
			return nil, fmt.Errorf("failed to decode stored feedback: %w", err)
		}
		log.FinalFeedback = &f
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT turn_id, candidate_msg, agent_msg, internal_notes, created_at
		 FROM turns WHERE session_id = ? ORDER BY turn_id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t TurnRecord
		if err := rows.Scan(&t.TurnID, &t.CandidateMessage, &t.AgentMessage, &t.InternalNotes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		log.Turns = append(log.Turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate turns: %w", err)
	}
	return log, nil
}
