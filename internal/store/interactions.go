package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
	"github.com/meera/sahay/internal/plan"
)

// InteractionStore is the append-only interaction log: one row per request
// plus one row per step outcome. The core only ever writes here; nothing is
// read back during a run.
type InteractionStore struct {
	DB *sql.DB
}

func NewInteractionStore(dbPath string) (*InteractionStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Create tables if not exist
	queries := []string{
		`CREATE TABLE IF NOT EXISTS interactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id TEXT,
			utterance TEXT,
			plan_json TEXT,
			response TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS steps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			interaction_id INTEGER,
			step_index INTEGER,
			capability TEXT,
			status TEXT,
			value TEXT,
			error TEXT
		);`,
	}
	for _, q := range queries {
		_, err = db.Exec(q)
		if err != nil {
			return nil, err
		}
	}

	return &InteractionStore{DB: db}, nil
}

// LogInteraction appends one completed request: the raw utterance, the
// resolved plan, every step outcome, and the composed response.
func (s *InteractionStore) LogInteraction(chatID, utterance string, p *plan.Plan, outcomes []plan.StepOutcome, response string) error {
	planJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode plan: %v", err)
	}

	res, err := s.DB.Exec(
		`INSERT INTO interactions (chat_id, utterance, plan_json, response) VALUES (?, ?, ?, ?)`,
		chatID, utterance, string(planJSON), response,
	)
	if err != nil {
		return err
	}
	interactionID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	capabilities := make(map[int]string, len(p.Steps))
	for _, step := range p.Steps {
		capabilities[step.Index] = string(step.Capability)
	}

	for _, o := range outcomes {
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		_, err := s.DB.Exec(
			`INSERT INTO steps (interaction_id, step_index, capability, status, value, error) VALUES (?, ?, ?, ?, ?, ?)`,
			interactionID, o.Index, capabilities[o.Index], string(o.Status), o.Value, errText,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *InteractionStore) Close() error {
	return s.DB.Close()
}
