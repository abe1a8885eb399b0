package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gamevault-app/gamevault/internal/client/repositories/prefs"
	"github.com/gamevault-app/gamevault/internal/client/session"
	"github.com/gamevault-app/gamevault/internal/client/storekeys"
	"github.com/gamevault-app/gamevault/internal/common"
	"github.com/gamevault-app/gamevault/internal/logging"
)

// Profile stores one opaque profile-image blob per account, base64-encoded
// under the account's profile key. Saving overwrites any prior value.
type Profile struct {
	prefs prefs.Repository
	log   logging.Logger
}

func NewProfile(p prefs.Repository, log logging.Logger) *Profile {
	return &Profile{prefs: p, log: log.With("service", "profile")}
}

// SaveImage stores data as the session account's profile image.
func (p *Profile) SaveImage(ctx context.Context, sess *session.Session, data []byte) error {
	if sess == nil {
		return common.ErrNoActiveSession
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	if err := p.prefs.Set(ctx, storekeys.ProfileImage(sess.Email), encoded); err != nil {
		return fmt.Errorf("failed to store profile image: %w", err)
	}

	p.log.Debug(ctx, "profile image saved", "email", sess.Email, "bytes", len(data))
	return nil
}

// LoadImage returns the session account's profile image, common.ErrNotFound
// when none is stored, or common.ErrCorruptBlob when the stored value does
// not decode.
func (p *Profile) LoadImage(ctx context.Context, sess *session.Session) ([]byte, error) {
	if sess == nil {
		return nil, common.ErrNoActiveSession
	}

	encoded, err := p.prefs.Get(ctx, storekeys.ProfileImage(sess.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read profile image: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: profile image: %v", common.ErrCorruptBlob, err)
	}
	return data, nil
}
