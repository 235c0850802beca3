package user

import (
	"context"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/stretchr/testify/require"

	"social-service/internal/shared/apperr"
)

// fakeRunner replays canned results and captures the last query.
type fakeRunner struct {
	result *neo4j.EagerResult
	err    error

	lastQuery  string
	lastParams map[string]any
}

func (f *fakeRunner) Run(_ context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	f.lastQuery = query
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func userNode(uid, username string) dbtype.Node {
	return dbtype.Node{Props: map[string]any{
		"user_id":       uid,
		"email":         username + "@example.com",
		"username":      username,
		"full_name":     "Full " + username,
		"bio":           "bio",
		"password_hash": "$2a$10$hash",
		"created_at":    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}}
}

func profileRecord(uid, username string, followers, following int64) *db.Record {
	return &db.Record{
		Keys:   []string{"u", "follower_count", "following_count"},
		Values: []any{userNode(uid, username), followers, following},
	}
}

func eager(records ...*db.Record) *neo4j.EagerResult {
	return &neo4j.EagerResult{Records: records}
}

func TestGetProfile(t *testing.T) {
	t.Run("projects node and counts", func(t *testing.T) {
		runner := &fakeRunner{result: eager(profileRecord("u-1", "alice", 3, 2))}
		repo := NewRepository(runner)

		profile, err := repo.GetProfile(context.Background(), "u-1")
		require.NoError(t, err)
		require.Equal(t, "u-1", profile.UserID)
		require.Equal(t, "alice", profile.Username)
		require.Equal(t, int64(3), profile.FollowerCount)
		require.Equal(t, int64(2), profile.FollowingCount)
		require.Equal(t, "u-1", runner.lastParams["user_id"])
	})

	t.Run("absent user is nil, not an error", func(t *testing.T) {
		repo := NewRepository(&fakeRunner{result: eager()})
		profile, err := repo.GetProfile(context.Background(), "nobody")
		require.NoError(t, err)
		require.Nil(t, profile)
	})

	t.Run("missing count field fails fast", func(t *testing.T) {
		broken := &db.Record{Keys: []string{"u"}, Values: []any{userNode("u-1", "alice")}}
		repo := NewRepository(&fakeRunner{result: eager(broken)})
		_, err := repo.GetProfile(context.Background(), "u-1")
		require.ErrorIs(t, err, apperr.ErrStore)
	})
}

func TestGetByEmail(t *testing.T) {
	t.Run("maps the full record", func(t *testing.T) {
		rec := &db.Record{Keys: []string{"u"}, Values: []any{userNode("u-2", "bob")}}
		repo := NewRepository(&fakeRunner{result: eager(rec)})

		u, err := repo.GetByEmail(context.Background(), "bob@example.com")
		require.NoError(t, err)
		require.Equal(t, "u-2", u.UserID)
		require.Equal(t, "$2a$10$hash", u.PasswordHash)
	})

	t.Run("no match is nil, nil", func(t *testing.T) {
		repo := NewRepository(&fakeRunner{result: eager()})
		u, err := repo.GetByEmail(context.Background(), "ghost@example.com")
		require.NoError(t, err)
		require.Nil(t, u)
	})
}

func TestCreate(t *testing.T) {
	newUser := &User{
		UserID:       "u-3",
		Email:        "carol@example.com",
		Username:     "carol",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC(),
	}

	t.Run("passes all properties as parameters", func(t *testing.T) {
		rec := &db.Record{Keys: []string{"u"}, Values: []any{userNode("u-3", "carol")}}
		runner := &fakeRunner{result: eager(rec)}
		repo := NewRepository(runner)

		require.NoError(t, repo.Create(context.Background(), newUser))
		require.Equal(t, "carol", runner.lastParams["username"])
		require.Equal(t, "carol@example.com", runner.lastParams["email"])
		require.NotContains(t, runner.lastQuery, "carol", "values must never be spliced into the query text")
	})

	t.Run("constraint violation becomes conflict", func(t *testing.T) {
		violation := apperr.Store(&db.Neo4jError{Code: "Neo.ClientError.Schema.ConstraintValidationFailed", Msg: "exists"})
		repo := NewRepository(&fakeRunner{err: violation})
		err := repo.Create(context.Background(), newUser)
		require.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("other store errors pass through", func(t *testing.T) {
		repo := NewRepository(&fakeRunner{err: apperr.Store(&db.Neo4jError{Code: "Neo.TransientError.General.OutOfMemory"})})
		err := repo.Create(context.Background(), newUser)
		require.ErrorIs(t, err, apperr.ErrStore)
		require.NotErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestSearch(t *testing.T) {
	runner := &fakeRunner{result: eager(
		profileRecord("u-1", "alice", 10, 1),
		profileRecord("u-2", "alicia", 4, 7),
	)}
	repo := NewRepository(runner)

	users, err := repo.Search(context.Background(), "ali", 20)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "alice", users[0].Username)
	require.Equal(t, int64(10), users[0].FollowerCount)
	require.Equal(t, "ali", runner.lastParams["query"])
	require.Equal(t, 20, runner.lastParams["limit"])
}

func TestEmailOrUsernameTaken(t *testing.T) {
	rec := &db.Record{
		Keys:   []string{"email_taken", "username_taken"},
		Values: []any{true, false},
	}
	repo := NewRepository(&fakeRunner{result: eager(rec)})

	emailTaken, usernameTaken, err := repo.EmailOrUsernameTaken(context.Background(), "a@b.c", "ab")
	require.NoError(t, err)
	require.True(t, emailTaken)
	require.False(t, usernameTaken)
}
