package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gamevault-app/gamevault/internal/client/codec"
	"github.com/gamevault-app/gamevault/internal/client/repositories/prefs"
	"github.com/gamevault-app/gamevault/internal/client/storekeys"
	"github.com/gamevault-app/gamevault/internal/common"
)

// Comment mutations touch two feed keys and the prefs store has no
// transactions. The journal is a single-slot write-ahead record: the
// intended operation is written before the feed writes and cleared after,
// so a crash between the two writes leaves an entry that Recover can replay.
// Replays are safe because applying an operation is idempotent (records are
// matched by id, or by field tuple for pre-id records).

const (
	opAdd    = "add"
	opUpdate = "update"
	opDelete = "delete"
)

// pendingOp describes one journaled dual-feed mutation. Target identifies
// the record: by id when one is set, by field tuple otherwise. For opAdd,
// Target is the full new record; for opUpdate, NewTitle/NewContent hold the
// replacement fields.
type pendingOp struct {
	Kind       string       `json:"kind"`
	Email      string       `json:"email"`
	AnimeID    int          `json:"anime_id"`
	Target     codec.Record `json:"target"`
	NewTitle   string       `json:"new_title,omitempty"`
	NewContent string       `json:"new_content,omitempty"`
}

type journal struct {
	prefs prefs.Repository
}

func (j *journal) begin(ctx context.Context, op *pendingOp) error {
	b, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("failed to encode journal entry: %w", err)
	}
	if err := j.prefs.Set(ctx, storekeys.PendingOp, string(b)); err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}
	return nil
}

func (j *journal) clear(ctx context.Context) error {
	if err := j.prefs.Delete(ctx, storekeys.PendingOp); err != nil {
		return fmt.Errorf("failed to clear journal entry: %w", err)
	}
	return nil
}

// pending returns the journaled operation, or nil when the slot is empty.
// An unparsable slot is reported as common.ErrMalformedRecord.
func (j *journal) pending(ctx context.Context) (*pendingOp, error) {
	raw, err := j.prefs.Get(ctx, storekeys.PendingOp)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read journal entry: %w", err)
	}

	var op pendingOp
	if err := json.Unmarshal([]byte(raw), &op); err != nil {
		return nil, fmt.Errorf("%w: journal entry: %v", common.ErrMalformedRecord, err)
	}
	return &op, nil
}
