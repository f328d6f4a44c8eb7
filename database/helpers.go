package database

import (
	"database/sql"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.New().String()
}

// newHumanID draws a random 9-digit ID. Uniqueness comes from the size
// of the keyspace, not a constraint.
func newHumanID() int64 {
	return rand.Int63n(899_999_999) + 100_000_000
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullStr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	s := ns.String
	return &s
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func joinJIDs(jids []int64) string {
	parts := make([]string, len(jids))
	for i, j := range jids {
		parts[i] = strconv.FormatInt(j, 10)
	}
	return strings.Join(parts, ",")
}

func splitJIDs(s string) []int64 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	jids := make([]int64, 0, len(parts))
	for _, p := range parts {
		j, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			continue
		}
		jids = append(jids, j)
	}
	return jids
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (db *DB) count(q Query) (int, error) {
	query, args := q.CountSQL()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
