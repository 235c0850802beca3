package graph

import (
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/stretchr/testify/require"

	"social-service/internal/shared/apperr"
)

func record(keys []string, values []any) *db.Record {
	return &db.Record{Keys: keys, Values: values}
}

func TestSingle(t *testing.T) {
	t.Run("nil result", func(t *testing.T) {
		_, ok := Single(nil)
		require.False(t, ok)
	})

	t.Run("empty result", func(t *testing.T) {
		_, ok := Single(&neo4j.EagerResult{})
		require.False(t, ok)
	})

	t.Run("first record returned", func(t *testing.T) {
		want := record([]string{"n"}, []any{int64(1)})
		rec, ok := Single(&neo4j.EagerResult{Records: []*db.Record{want}})
		require.True(t, ok)
		require.Same(t, want, rec)
	})
}

func TestRecordProjection(t *testing.T) {
	node := dbtype.Node{Props: map[string]any{"user_id": "u-1"}}
	rec := record(
		[]string{"u", "follower_count", "is_liked", "name"},
		[]any{node, int64(4), true, "alice"},
	)

	n, err := RecordNode(rec, "u")
	require.NoError(t, err)
	require.Equal(t, "u-1", n.Props["user_id"])

	count, err := RecordInt(rec, "follower_count")
	require.NoError(t, err)
	require.Equal(t, int64(4), count)

	liked, err := RecordBool(rec, "is_liked")
	require.NoError(t, err)
	require.True(t, liked)

	name, err := RecordString(rec, "name")
	require.NoError(t, err)
	require.Equal(t, "alice", name)
}

func TestRecordProjectionFailsFast(t *testing.T) {
	rec := record([]string{"count"}, []any{"not-an-int"})

	t.Run("missing key is a store error", func(t *testing.T) {
		_, err := RecordInt(rec, "absent")
		require.ErrorIs(t, err, apperr.ErrStore)
	})

	t.Run("wrong type is a store error", func(t *testing.T) {
		_, err := RecordInt(rec, "count")
		require.ErrorIs(t, err, apperr.ErrStore)
	})

	t.Run("non-node value is a store error", func(t *testing.T) {
		_, err := RecordNode(rec, "count")
		require.ErrorIs(t, err, apperr.ErrStore)
	})
}

func TestPropProjection(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	node := dbtype.Node{Props: map[string]any{
		"username":     "bob",
		"created_at":   now,
		"iso_stamp":    "2024-05-01T12:00:00Z",
		"bad_stamp":    "yesterday",
		"wrong_type":   int64(7),
		"bio":          "hello",
		"null_ish_bio": nil,
	}}

	s, err := PropString(node, "username")
	require.NoError(t, err)
	require.Equal(t, "bob", s)

	_, err = PropString(node, "absent")
	require.ErrorIs(t, err, apperr.ErrStore)

	require.Equal(t, "hello", PropOptString(node, "bio"))
	require.Empty(t, PropOptString(node, "null_ish_bio"))
	require.Empty(t, PropOptString(node, "absent"))

	t.Run("native time", func(t *testing.T) {
		ts, err := PropTime(node, "created_at")
		require.NoError(t, err)
		require.True(t, ts.Equal(now))
	})

	t.Run("iso string", func(t *testing.T) {
		ts, err := PropTime(node, "iso_stamp")
		require.NoError(t, err)
		require.True(t, ts.Equal(now))
	})

	t.Run("unparseable string", func(t *testing.T) {
		_, err := PropTime(node, "bad_stamp")
		require.ErrorIs(t, err, apperr.ErrStore)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := PropTime(node, "wrong_type")
		require.ErrorIs(t, err, apperr.ErrStore)
	})
}

func TestIsConstraintViolation(t *testing.T) {
	violation := &db.Neo4jError{Code: "Neo.ClientError.Schema.ConstraintValidationFailed", Msg: "already exists"}
	require.True(t, IsConstraintViolation(violation))
	require.True(t, IsConstraintViolation(apperr.Store(violation)))
	require.False(t, IsConstraintViolation(apperr.Store(&db.Neo4jError{Code: "Neo.TransientError.General.Whatever"})))
	require.False(t, IsConstraintViolation(nil))
}
