package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gamevault-app/gamevault/internal/client/codec"
	"github.com/gamevault-app/gamevault/internal/client/models"
	"github.com/gamevault-app/gamevault/internal/client/repositories/prefs"
	"github.com/gamevault-app/gamevault/internal/client/session"
	"github.com/gamevault-app/gamevault/internal/client/storekeys"
	"github.com/gamevault-app/gamevault/internal/common"
	"github.com/gamevault-app/gamevault/internal/logging"
)

// CommentService manages the two parallel comment indexes: a global feed
// per catalog item and a personal feed per (account, item).
//
// Contract:
//   - Add appends to both feeds; common.ErrNoActiveSession without a session.
//   - Update/Delete address a record by its title/content tuple (the
//     original app's contract) and resolve it to a record id internally;
//     a missing target is a silent no-op, not an error.
//   - UpdateByID/DeleteByID are the id-keyed primitives.
type CommentService interface {
	Add(ctx context.Context, sess *session.Session, animeID int, title, content string) (*models.Comment, error)
	GlobalFeed(ctx context.Context, animeID int) ([]models.Comment, error)
	OwnFeed(ctx context.Context, sess *session.Session, animeID int) ([]models.Comment, error)
	AllByAccount(ctx context.Context, email string) ([]models.Comment, error)
	Update(ctx context.Context, email string, animeID int, oldTitle, oldContent, newTitle, newContent string) error
	UpdateByID(ctx context.Context, email string, animeID int, id, newTitle, newContent string) error
	Delete(ctx context.Context, email string, animeID int, title, content string) error
	DeleteByID(ctx context.Context, email string, animeID int, id string) error
}

// Comments is the local CommentService over the prefs store.
type Comments struct {
	prefs    prefs.Repository
	accounts *Accounts
	journal  *journal
	log      logging.Logger
}

func NewComments(p prefs.Repository, accounts *Accounts, log logging.Logger) *Comments {
	return &Comments{
		prefs:    p,
		accounts: accounts,
		journal:  &journal{prefs: p},
		log:      log.With("service", "comments"),
	}
}

func (c *Comments) Add(ctx context.Context, sess *session.Session, animeID int, title, content string) (*models.Comment, error) {
	if sess == nil {
		return nil, common.ErrNoActiveSession
	}

	username := sess.Username
	if username == "" {
		username = sess.Email
	}

	op := &pendingOp{
		Kind:    opAdd,
		Email:   sess.Email,
		AnimeID: animeID,
		Target:  codec.Record{ID: uuid.NewString(), Title: title, Content: content, Username: username},
	}

	if err := c.applyJournaled(ctx, op); err != nil {
		return nil, err
	}

	c.log.Debug(ctx, "comment added", "anime_id", animeID, "id", op.Target.ID)
	return &models.Comment{
		ID:       op.Target.ID,
		AnimeID:  animeID,
		Title:    title,
		Content:  content,
		Username: username,
	}, nil
}

func (c *Comments) GlobalFeed(ctx context.Context, animeID int) ([]models.Comment, error) {
	return c.loadFeed(ctx, storekeys.GlobalFeed(animeID), animeID)
}

func (c *Comments) OwnFeed(ctx context.Context, sess *session.Session, animeID int) ([]models.Comment, error) {
	if sess == nil {
		return nil, common.ErrNoActiveSession
	}
	return c.loadFeed(ctx, storekeys.PersonalFeed(sess.Email, animeID), animeID)
}

// AllByAccount flattens every personal feed belonging to email. This is the
// one operation that scans the whole key space; the store is small and
// single-user, so the O(keys) cost is acceptable.
func (c *Comments) AllByAccount(ctx context.Context, email string) ([]models.Comment, error) {
	entries, err := c.prefs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate store: %w", err)
	}

	result := make([]models.Comment, 0)
	for key, value := range entries {
		animeID, ok := storekeys.ParsePersonalFeed(key, email)
		if !ok {
			continue
		}
		for _, r := range codec.DecodeAny(value) {
			result = append(result, recordToComment(r, animeID))
		}
	}
	return result, nil
}

func (c *Comments) Update(ctx context.Context, email string, animeID int, oldTitle, oldContent, newTitle, newContent string) error {
	target, err := c.resolveTarget(ctx, email, animeID, oldTitle, oldContent)
	if err != nil {
		return err
	}

	return c.applyJournaled(ctx, &pendingOp{
		Kind:       opUpdate,
		Email:      email,
		AnimeID:    animeID,
		Target:     target,
		NewTitle:   newTitle,
		NewContent: newContent,
	})
}

func (c *Comments) UpdateByID(ctx context.Context, email string, animeID int, id, newTitle, newContent string) error {
	return c.applyJournaled(ctx, &pendingOp{
		Kind:       opUpdate,
		Email:      email,
		AnimeID:    animeID,
		Target:     codec.Record{ID: id},
		NewTitle:   newTitle,
		NewContent: newContent,
	})
}

func (c *Comments) Delete(ctx context.Context, email string, animeID int, title, content string) error {
	target, err := c.resolveTarget(ctx, email, animeID, title, content)
	if err != nil {
		return err
	}

	return c.applyJournaled(ctx, &pendingOp{
		Kind:    opDelete,
		Email:   email,
		AnimeID: animeID,
		Target:  target,
	})
}

func (c *Comments) DeleteByID(ctx context.Context, email string, animeID int, id string) error {
	return c.applyJournaled(ctx, &pendingOp{
		Kind:    opDelete,
		Email:   email,
		AnimeID: animeID,
		Target:  codec.Record{ID: id},
	})
}

// Recover replays a journal entry left behind by a crash between the two
// feed writes. Call once at startup, before serving operations.
func (c *Comments) Recover(ctx context.Context) error {
	op, err := c.journal.pending(ctx)
	if err != nil {
		if errors.Is(err, common.ErrMalformedRecord) {
			// The slot is unreadable; nothing can be replayed from it.
			c.log.Warn(ctx, "discarding unreadable journal entry", "error", err)
			return c.journal.clear(ctx)
		}
		return err
	}
	if op == nil {
		return nil
	}

	c.log.Info(ctx, "replaying journal entry", "kind", op.Kind, "anime_id", op.AnimeID)
	return c.applyJournaled(ctx, op)
}

// resolveTarget finds the record addressed by the title/content tuple in the
// personal feed and returns it (with its id when it has one). When nothing
// matches, the returned tuple target makes the apply step a per-feed no-op.
func (c *Comments) resolveTarget(ctx context.Context, email string, animeID int, title, content string) (codec.Record, error) {
	username, err := c.accounts.UsernameFor(ctx, email)
	if err != nil {
		return codec.Record{}, err
	}

	target := codec.Record{Title: title, Content: content, Username: username}

	value, err := c.prefs.Get(ctx, storekeys.PersonalFeed(email, animeID))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return target, nil
		}
		return codec.Record{}, fmt.Errorf("failed to read personal feed: %w", err)
	}

	for _, r := range codec.DecodeAny(value) {
		if r.Title == title && r.Content == content && r.Username == username {
			if r.ID != "" {
				target.ID = r.ID
			}
			break
		}
	}
	return target, nil
}

// applyJournaled writes the journal entry, applies op to both feeds, and
// clears the entry. A failure between the feed writes leaves the entry in
// place for Recover.
func (c *Comments) applyJournaled(ctx context.Context, op *pendingOp) error {
	if err := c.journal.begin(ctx, op); err != nil {
		return err
	}

	keys := []string{
		storekeys.GlobalFeed(op.AnimeID),
		storekeys.PersonalFeed(op.Email, op.AnimeID),
	}
	for _, key := range keys {
		if err := c.applyToFeed(ctx, key, op); err != nil {
			return fmt.Errorf("failed to apply %s to %s: %w", op.Kind, key, err)
		}
	}

	return c.journal.clear(ctx)
}

// applyToFeed rewrites one feed value under op. The rewrite decodes with
// format sniffing and re-encodes tagged, so legacy values migrate on their
// first mutation.
func (c *Comments) applyToFeed(ctx context.Context, key string, op *pendingOp) error {
	value, err := c.prefs.Get(ctx, key)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}
	records := codec.DecodeAny(value)

	switch op.Kind {
	case opAdd:
		// Idempotent: a replayed add must not duplicate the record.
		for _, r := range records {
			if r.ID == op.Target.ID {
				return nil
			}
		}
		records = append(records, op.Target)

	case opUpdate:
		for i, r := range records {
			if matchesTarget(r, op.Target) {
				records[i].Title = op.NewTitle
				records[i].Content = op.NewContent
			}
		}

	case opDelete:
		kept := records[:0]
		for _, r := range records {
			if !matchesTarget(r, op.Target) {
				kept = append(kept, r)
			}
		}
		records = kept

	default:
		return fmt.Errorf("%w: unknown journal op %q", common.ErrMalformedRecord, op.Kind)
	}

	encoded, err := codec.EncodeAll(records)
	if err != nil {
		return err
	}
	return c.prefs.Set(ctx, key, encoded)
}

// matchesTarget matches by id when both sides carry one, and by field tuple
// otherwise (records written before ids existed).
func matchesTarget(r, target codec.Record) bool {
	if target.ID != "" && r.ID != "" {
		return r.ID == target.ID
	}
	return r.Title == target.Title && r.Content == target.Content && r.Username == target.Username
}

func (c *Comments) loadFeed(ctx context.Context, key string, animeID int) ([]models.Comment, error) {
	value, err := c.prefs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return []models.Comment{}, nil
		}
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	records := codec.DecodeAny(value)
	result := make([]models.Comment, 0, len(records))
	for _, r := range records {
		result = append(result, recordToComment(r, animeID))
	}
	return result, nil
}

func recordToComment(r codec.Record, animeID int) models.Comment {
	return models.Comment{
		ID:       r.ID,
		AnimeID:  animeID,
		Title:    r.Title,
		Content:  r.Content,
		Username: r.Username,
	}
}
