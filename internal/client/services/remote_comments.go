package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gamevault-app/gamevault/internal/client/models"
	"github.com/gamevault-app/gamevault/internal/client/remote"
	"github.com/gamevault-app/gamevault/internal/client/session"
	"github.com/gamevault-app/gamevault/internal/common"
	"github.com/gamevault-app/gamevault/internal/logging"
)

// RemoteComments is the CommentService over the hosted backend. The backend
// assigns integer record ids, so the tuple-addressed operations resolve ids
// through the account's comment listing before delegating.
type RemoteComments struct {
	client remote.Client
	log    logging.Logger
}

func NewRemoteComments(client remote.Client, log logging.Logger) *RemoteComments {
	return &RemoteComments{client: client, log: log.With("service", "comments", "backend", "remote")}
}

func (c *RemoteComments) Add(ctx context.Context, sess *session.Session, animeID int, title, content string) (*models.Comment, error) {
	if sess == nil {
		return nil, common.ErrNoActiveSession
	}

	username := sess.Username
	if username == "" {
		username = sess.Email
	}

	comment := models.Comment{AnimeID: animeID, Title: title, Content: content, Username: username}
	if err := c.client.SaveComment(ctx, comment, sess.Email); err != nil {
		return nil, fmt.Errorf("remote comment save failed: %w", err)
	}

	c.log.Debug(ctx, "comment added", "anime_id", animeID)
	return &comment, nil
}

func (c *RemoteComments) GlobalFeed(ctx context.Context, animeID int) ([]models.Comment, error) {
	return c.client.CommentsByAnime(ctx, animeID)
}

func (c *RemoteComments) OwnFeed(ctx context.Context, sess *session.Session, animeID int) ([]models.Comment, error) {
	if sess == nil {
		return nil, common.ErrNoActiveSession
	}

	all, err := c.client.CommentsByUser(ctx, sess.Email)
	if err != nil {
		return nil, err
	}

	own := make([]models.Comment, 0, len(all))
	for _, cm := range all {
		if cm.AnimeID == animeID {
			own = append(own, cm)
		}
	}
	return own, nil
}

func (c *RemoteComments) AllByAccount(ctx context.Context, email string) ([]models.Comment, error) {
	return c.client.CommentsByUser(ctx, email)
}

func (c *RemoteComments) Update(ctx context.Context, email string, animeID int, oldTitle, oldContent, newTitle, newContent string) error {
	id, ok, err := c.resolveID(ctx, email, animeID, oldTitle, oldContent)
	if err != nil {
		return err
	}
	if !ok {
		// Missing target is a no-op, matching the local store's contract.
		return nil
	}
	return c.client.UpdateComment(ctx, id, newTitle, newContent)
}

func (c *RemoteComments) UpdateByID(ctx context.Context, email string, animeID int, id, newTitle, newContent string) error {
	numeric, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("%w: remote comment id %q", common.ErrMalformedRecord, id)
	}
	return c.client.UpdateComment(ctx, numeric, newTitle, newContent)
}

func (c *RemoteComments) Delete(ctx context.Context, email string, animeID int, title, content string) error {
	id, ok, err := c.resolveID(ctx, email, animeID, title, content)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return c.client.DeleteComment(ctx, id)
}

func (c *RemoteComments) DeleteByID(ctx context.Context, email string, animeID int, id string) error {
	numeric, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("%w: remote comment id %q", common.ErrMalformedRecord, id)
	}
	return c.client.DeleteComment(ctx, numeric)
}

func (c *RemoteComments) resolveID(ctx context.Context, email string, animeID int, title, content string) (int, bool, error) {
	all, err := c.client.CommentsByUser(ctx, email)
	if err != nil {
		return 0, false, err
	}

	for _, cm := range all {
		if cm.AnimeID == animeID && cm.Title == title && cm.Content == content && cm.ID != "" {
			id, err := strconv.Atoi(cm.ID)
			if err != nil {
				continue
			}
			return id, true, nil
		}
	}
	return 0, false, nil
}
