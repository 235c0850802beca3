// Package graph wraps the Neo4j driver behind a small query runner. All
// persistence in this service is parameterized Cypher executed through
// Runner; repositories never touch the driver directly.
package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"social-service/internal/shared/apperr"
)

// Runner executes a Cypher query with parameters and returns a fully
// buffered result.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// Store is the injected store handle. One instance is created at startup
// and passed to every repository; the driver manages its own session pool
// per query.
type Store struct {
	driver neo4j.DriverWithContext
	dbName string
}

func NewStore(uri, username, password, dbName string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Store{driver: driver, dbName: dbName}, nil
}

func (s *Store) Verify(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.dbName),
	)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return result, nil
}

// EnsureConstraints creates the uniqueness constraints the service relies
// on. The store is the authoritative guard against duplicate signups; the
// application-level existence checks are only a fast path.
func (s *Store) EnsureConstraints(ctx context.Context) error {
	stmts := []string{
		"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.user_id IS UNIQUE",
		"CREATE CONSTRAINT user_email_unique IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE",
		"CREATE CONSTRAINT user_username_unique IF NOT EXISTS FOR (u:User) REQUIRE u.username IS UNIQUE",
		"CREATE CONSTRAINT post_id_unique IF NOT EXISTS FOR (p:Post) REQUIRE p.post_id IS UNIQUE",
		"CREATE CONSTRAINT comment_id_unique IF NOT EXISTS FOR (c:Comment) REQUIRE c.comment_id IS UNIQUE",
	}
	for _, stmt := range stmts {
		if _, err := s.Run(ctx, stmt, nil); err != nil {
			return err
		}
	}
	return nil
}

// IsConstraintViolation reports whether err is a schema constraint failure,
// the signal for a concurrent duplicate write slipping past the fast-path
// existence check.
func IsConstraintViolation(err error) bool {
	var ne *db.Neo4jError
	if !errors.As(err, &ne) {
		return false
	}
	return strings.Contains(ne.Code, "ConstraintValidationFailed")
}
