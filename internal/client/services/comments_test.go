package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gamevault-app/gamevault/internal/client/codec"
	"github.com/gamevault-app/gamevault/internal/client/models"
	"github.com/gamevault-app/gamevault/internal/client/repositories/prefs"
	"github.com/gamevault-app/gamevault/internal/client/session"
	"github.com/gamevault-app/gamevault/internal/client/storekeys"
	"github.com/gamevault-app/gamevault/internal/common"
	"github.com/gamevault-app/gamevault/internal/logging"
)

type commentsFixture struct {
	store    *prefs.Memory
	accounts *Accounts
	comments *Comments
}

func newCommentsFixture(t *testing.T) *commentsFixture {
	t.Helper()
	store := prefs.NewMemory()
	sm := session.NewManager(store)
	accounts := NewAccounts(store, sm, logging.NewNop())
	return &commentsFixture{
		store:    store,
		accounts: accounts,
		comments: NewComments(store, accounts, logging.NewNop()),
	}
}

func (f *commentsFixture) login(t *testing.T, ctx context.Context, email, username string) *session.Session {
	t.Helper()
	require.NoError(t, f.accounts.Register(ctx, email, "pw", username))
	sess, err := f.accounts.Login(ctx, email, "pw")
	require.NoError(t, err)
	return sess
}

func titlesAndContents(comments []models.Comment) [][2]string {
	out := make([][2]string, 0, len(comments))
	for _, c := range comments {
		out = append(out, [2]string{c.Title, c.Content})
	}
	return out
}

func TestComments_AddRequiresSession(t *testing.T) {
	ctx := context.Background()
	f := newCommentsFixture(t)

	_, err := f.comments.Add(ctx, nil, 42, "T", "C")
	require.ErrorIs(t, err, common.ErrNoActiveSession)

	_, err = f.comments.OwnFeed(ctx, nil, 42)
	require.ErrorIs(t, err, common.ErrNoActiveSession)
}

func TestComments_AddVisibleInBothFeeds(t *testing.T) {
	ctx := context.Background()
	f := newCommentsFixture(t)
	sess := f.login(t, ctx, "a@gmail.com", "alice")

	c1, err := f.comments.Add(ctx, sess, 42, "T1", "C1")
	require.NoError(t, err)
	require.NotEmpty(t, c1.ID)

	c2, err := f.comments.Add(ctx, sess, 42, "T2", "C2")
	require.NoError(t, err)
	require.NotEqual(t, c1.ID, c2.ID)

	global, err := f.comments.GlobalFeed(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T1", "C1"}, {"T2", "C2"}}, titlesAndContents(global))
	require.Equal(t, "alice", global[0].Username)

	own, err := f.comments.OwnFeed(ctx, sess, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T1", "C1"}, {"T2", "C2"}}, titlesAndContents(own))
}

func TestComments_EmptyFeeds(t *testing.T) {
	ctx := context.Background()
	f := newCommentsFixture(t)
	sess := f.login(t, ctx, "a@gmail.com", "alice")

	global, err := f.comments.GlobalFeed(ctx, 7)
	require.NoError(t, err)
	require.Empty(t, global)

	own, err := f.comments.OwnFeed(ctx, sess, 7)
	require.NoError(t, err)
	require.Empty(t, own)
}

func TestComments_DeleteRemovesFromBothFeeds(t *testing.T) {
	ctx := context.Background()
	f := newCommentsFixture(t)
	sess := f.login(t, ctx, "a@gmail.com", "alice")

	_, err := f.comments.Add(ctx, sess, 42, "T1", "C1")
	require.NoError(t, err)
	_, err = f.comments.Add(ctx, sess, 42, "T2", "C2")
	require.NoError(t, err)

	require.NoError(t, f.comments.Delete(ctx, "a@gmail.com", 42, "T1", "C1"))

	global, err := f.comments.GlobalFeed(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T2", "C2"}}, titlesAndContents(global))

	own, err := f.comments.OwnFeed(ctx, sess, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T2", "C2"}}, titlesAndContents(own))

	// A second delete with the same arguments is a no-op.
	require.NoError(t, f.comments.Delete(ctx, "a@gmail.com", 42, "T1", "C1"))
	own, err = f.comments.OwnFeed(ctx, sess, 42)
	require.NoError(t, err)
	require.Len(t, own, 1)
}

func TestComments_UpdateLeavesOtherAccountsUntouched(t *testing.T) {
	ctx := context.Background()
	f := newCommentsFixture(t)

	alice := f.login(t, ctx, "a@gmail.com", "alice")
	_, err := f.comments.Add(ctx, alice, 42, "T1", "C1")
	require.NoError(t, err)

	bob := f.login(t, ctx, "b@gmail.com", "bob")
	_, err = f.comments.Add(ctx, bob, 42, "T1", "C1")
	require.NoError(t, err)

	require.NoError(t, f.comments.Update(ctx, "a@gmail.com", 42, "T1", "C1", "T2", "C2"))

	aliceOwn, err := f.comments.OwnFeed(ctx, alice, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T2", "C2"}}, titlesAndContents(aliceOwn))

	bobOwn, err := f.comments.OwnFeed(ctx, bob, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T1", "C1"}}, titlesAndContents(bobOwn))

	// The global feed reflects alice's edit and keeps bob's entry.
	global, err := f.comments.GlobalFeed(ctx, 42)
	require.NoError(t, err)
	require.ElementsMatch(t, [][2]string{{"T2", "C2"}, {"T1", "C1"}}, titlesAndContents(global))
}

func TestComments_UpdateMissingTargetIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newCommentsFixture(t)
	sess := f.login(t, ctx, "a@gmail.com", "alice")

	_, err := f.comments.Add(ctx, sess, 42, "T1", "C1")
	require.NoError(t, err)

	require.NoError(t, f.comments.Update(ctx, "a@gmail.com", 42, "stale", "stale", "T9", "C9"))

	own, err := f.comments.OwnFeed(ctx, sess, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T1", "C1"}}, titlesAndContents(own))
}

func TestComments_ByIDOperations(t *testing.T) {
	ctx := context.Background()
	f := newCommentsFixture(t)
	sess := f.login(t, ctx, "a@gmail.com", "alice")

	// Two comments with identical text: ids keep them apart.
	c1, err := f.comments.Add(ctx, sess, 42, "T", "C")
	require.NoError(t, err)
	c2, err := f.comments.Add(ctx, sess, 42, "T", "C")
	require.NoError(t, err)

	require.NoError(t, f.comments.UpdateByID(ctx, "a@gmail.com", 42, c1.ID, "T'", "C'"))

	own, err := f.comments.OwnFeed(ctx, sess, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T'", "C'"}, {"T", "C"}}, titlesAndContents(own))

	require.NoError(t, f.comments.DeleteByID(ctx, "a@gmail.com", 42, c2.ID))
	own, err = f.comments.OwnFeed(ctx, sess, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T'", "C'"}}, titlesAndContents(own))
}

func TestComments_AllByAccount(t *testing.T) {
	ctx := context.Background()
	f := newCommentsFixture(t)
	sess := f.login(t, ctx, "a@gmail.com", "alice")

	_, err := f.comments.Add(ctx, sess, 1, "T1", "C1")
	require.NoError(t, err)
	_, err = f.comments.Add(ctx, sess, 2, "T2", "C2")
	require.NoError(t, err)

	// Another account's comments must not show up.
	bob := f.login(t, ctx, "b@gmail.com", "bob")
	_, err = f.comments.Add(ctx, bob, 1, "TB", "CB")
	require.NoError(t, err)

	all, err := f.comments.AllByAccount(ctx, "a@gmail.com")
	require.NoError(t, err)
	require.Len(t, all, 2)

	byAnime := map[int][2]string{}
	for _, c := range all {
		byAnime[c.AnimeID] = [2]string{c.Title, c.Content}
	}
	require.Equal(t, map[int][2]string{1: {"T1", "C1"}, 2: {"T2", "C2"}}, byAnime)
}

func TestComments_LegacyValuesDecodeAndMigrate(t *testing.T) {
	ctx := context.Background()
	f := newCommentsFixture(t)

	// A store written by the old app: legacy credential, legacy feed values.
	require.NoError(t, f.store.Set(ctx, storekeys.Credential("a@gmail.com"), "pw"))
	require.NoError(t, f.store.Set(ctx, storekeys.Username("a@gmail.com"), "alice"))
	require.NoError(t, f.store.Set(ctx, storekeys.GlobalFeed(42), "T1%%C1%%alice;;"))
	require.NoError(t, f.store.Set(ctx, storekeys.PersonalFeed("a@gmail.com", 42), "T1%%C1%%alice;;"))

	global, err := f.comments.GlobalFeed(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T1", "C1"}}, titlesAndContents(global))

	// Tuple-addressed update finds the id-less record and rewrites it.
	require.NoError(t, f.comments.Update(ctx, "a@gmail.com", 42, "T1", "C1", "T2", "C2"))

	global, err = f.comments.GlobalFeed(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T2", "C2"}}, titlesAndContents(global))

	// The mutated value is now in the tagged format.
	raw, err := f.store.Get(ctx, storekeys.GlobalFeed(42))
	require.NoError(t, err)
	require.True(t, codec.IsTagged(raw))
}

// The end-to-end walkthrough: register, duplicate register, login, comment,
// read, update, delete.
func TestComments_FullScenario(t *testing.T) {
	ctx := context.Background()
	f := newCommentsFixture(t)

	require.NoError(t, f.accounts.Register(ctx, "a@gmail.com", "pw", "alice"))
	require.ErrorIs(t, f.accounts.Register(ctx, "a@gmail.com", "pw", "alice"), common.ErrEmailTaken)

	sess, err := f.accounts.Login(ctx, "a@gmail.com", "pw")
	require.NoError(t, err)

	_, err = f.comments.Add(ctx, sess, 42, "T1", "C1")
	require.NoError(t, err)

	global, err := f.comments.GlobalFeed(ctx, 42)
	require.NoError(t, err)
	require.Len(t, global, 1)
	require.Equal(t, "T1", global[0].Title)
	require.Equal(t, "C1", global[0].Content)
	require.Equal(t, "alice", global[0].Username)

	require.NoError(t, f.comments.Update(ctx, "a@gmail.com", 42, "T1", "C1", "T2", "C2"))

	own, err := f.comments.OwnFeed(ctx, sess, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"T2", "C2"}}, titlesAndContents(own))

	require.NoError(t, f.comments.Delete(ctx, "a@gmail.com", 42, "T2", "C2"))

	own, err = f.comments.OwnFeed(ctx, sess, 42)
	require.NoError(t, err)
	require.Empty(t, own)
}

func TestComments_DelimitersInFieldsAreSafe(t *testing.T) {
	ctx := context.Background()
	f := newCommentsFixture(t)
	sess := f.login(t, ctx, "a@gmail.com", "alice")

	_, err := f.comments.Add(ctx, sess, 42, "a%%b", "x;;y")
	require.NoError(t, err)

	global, err := f.comments.GlobalFeed(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"a%%b", "x;;y"}}, titlesAndContents(global))
}
