package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/engage/internal/behavior"
)

// SnapshotVersion is the current persisted-payload schema version.
// Bump it together with snapshotSchema when the layout changes.
const SnapshotVersion = 1

// snapshotKeep is how many historical snapshots survive pruning.
const snapshotKeep = 20

// ErrInvalidSnapshot marks a persisted payload that failed schema
// validation or carries a version this build doesn't understand.
var ErrInvalidSnapshot = errors.New("invalid behavior snapshot")

// snapshotRecord is the persisted payload: the behavior state plus an
// explicit schema version.
type snapshotRecord struct {
	Version int `json:"version"`
	behavior.State
}

// snapshotSchema validates persisted payloads before they are trusted.
const snapshotSchema = `{
	"type": "object",
	"required": ["version", "clicks", "timeSpentSeconds", "streak", "level", "xp", "credits"],
	"properties": {
		"version": {"type": "integer", "minimum": 1},
		"clicks": {"type": "integer", "minimum": 0},
		"timeSpentSeconds": {"type": "integer", "minimum": 0},
		"pagesVisited": {"type": "array", "items": {"type": "string"}},
		"actionsCompleted": {"type": "array", "items": {"type": "string"}},
		"streak": {"type": "integer", "minimum": 1},
		"level": {"type": "integer", "minimum": 1},
		"xp": {"type": "integer", "minimum": 0},
		"credits": {"type": "integer", "minimum": 0},
		"achievements": {"type": "array", "items": {"type": "string"}},
		"milestones": {"type": "array", "items": {"type": "string"}}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiledSnapshotSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(snapshotSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse snapshot schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("behavior-snapshot.json", doc); err != nil {
			schemaErr = fmt.Errorf("add snapshot schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("behavior-snapshot.json")
	})
	return compiledSchema, schemaErr
}

// BehaviorRepo persists behavior snapshots and the credit audit log.
type BehaviorRepo struct {
	db   *sql.DB
	keep int
}

// SetSnapshotKeep overrides the pruning retention window.
func (r *BehaviorRepo) SetSnapshotKeep(keep int) {
	if keep > 0 {
		r.keep = keep
	}
}

// SaveSnapshot appends the state as a new versioned snapshot row and
// prunes history beyond the retention window.
func (r *BehaviorRepo) SaveSnapshot(ctx context.Context, st behavior.State) error {
	payload, err := json.Marshal(snapshotRecord{Version: SnapshotVersion, State: st})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO behavior_snapshots (sequence, timestamp, data)
		VALUES ((SELECT COALESCE(MAX(sequence), 0) + 1 FROM behavior_snapshots), ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), string(payload))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	return r.Prune(ctx, r.keep)
}

// LatestSnapshot returns the most recent valid snapshot, or nil when
// none exist. Payloads that fail schema validation or carry an unknown
// version return ErrInvalidSnapshot; the caller falls back to defaults.
func (r *BehaviorRepo) LatestSnapshot(ctx context.Context) (*behavior.State, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `
		SELECT data FROM behavior_snapshots ORDER BY sequence DESC LIMIT 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	schema, err := compiledSnapshotSchema()
	if err != nil {
		return nil, err
	}

	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	var rec snapshotRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if rec.Version > SnapshotVersion {
		return nil, fmt.Errorf("%w: version %d is newer than supported %d",
			ErrInvalidSnapshot, rec.Version, SnapshotVersion)
	}

	st := rec.State
	return &st, nil
}

// Prune deletes all but the keep most recent snapshots.
func (r *BehaviorRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM behavior_snapshots
		WHERE sequence <= (
			SELECT COALESCE(MAX(sequence), 0) FROM behavior_snapshots
		) - ?`, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
