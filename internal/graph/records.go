package graph

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"social-service/internal/shared/apperr"
)

// Typed projection over raw result rows. A missing or mistyped field is a
// store fault, never silently zero-valued.

// Single returns the first record, or false when the result is empty.
func Single(res *neo4j.EagerResult) (*db.Record, bool) {
	if res == nil || len(res.Records) == 0 {
		return nil, false
	}
	return res.Records[0], true
}

func RecordNode(rec *db.Record, key string) (dbtype.Node, error) {
	v, ok := rec.Get(key)
	if !ok {
		return dbtype.Node{}, missing(key)
	}
	n, ok := v.(dbtype.Node)
	if !ok {
		return dbtype.Node{}, mistyped(key, v, "node")
	}
	return n, nil
}

func RecordInt(rec *db.Record, key string) (int64, error) {
	v, ok := rec.Get(key)
	if !ok {
		return 0, missing(key)
	}
	n, ok := v.(int64)
	if !ok {
		return 0, mistyped(key, v, "int64")
	}
	return n, nil
}

func RecordBool(rec *db.Record, key string) (bool, error) {
	v, ok := rec.Get(key)
	if !ok {
		return false, missing(key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, mistyped(key, v, "bool")
	}
	return b, nil
}

func RecordString(rec *db.Record, key string) (string, error) {
	v, ok := rec.Get(key)
	if !ok {
		return "", missing(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", mistyped(key, v, "string")
	}
	return s, nil
}

func PropString(n dbtype.Node, key string) (string, error) {
	v, ok := n.Props[key]
	if !ok {
		return "", missing(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", mistyped(key, v, "string")
	}
	return s, nil
}

// PropOptString reads an optional property; absent or null yields "".
func PropOptString(n dbtype.Node, key string) string {
	s, _ := n.Props[key].(string)
	return s
}

// PropTime reads a timestamp property. Zoned datetimes arrive from the
// driver as time.Time; ISO-8601 strings are tolerated for rows written by
// other clients.
func PropTime(n dbtype.Node, key string) (time.Time, error) {
	v, ok := n.Props[key]
	if !ok {
		return time.Time{}, missing(key)
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, apperr.Store(fmt.Errorf("field %q: unparseable timestamp %q", key, t))
		}
		return parsed.UTC(), nil
	default:
		return time.Time{}, mistyped(key, v, "timestamp")
	}
}

func missing(key string) error {
	return apperr.Store(fmt.Errorf("field %q absent from result row", key))
}

func mistyped(key string, v any, want string) error {
	return apperr.Store(fmt.Errorf("field %q has type %T, want %s", key, v, want))
}
