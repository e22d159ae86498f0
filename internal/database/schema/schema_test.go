package schema

import (
	"strings"
	"testing"
)

func tableStatement(t *testing.T, table string) string {
	t.Helper()
	prefix := "CREATE TABLE IF NOT EXISTS " + table + " ("
	for _, stmt := range statements {
		if strings.HasPrefix(stmt, prefix) {
			return stmt
		}
	}
	t.Fatalf("no create statement for table %s", table)
	return ""
}

func TestChildTablesCascadeOnDelete(t *testing.T) {
	cases := []struct {
		table string
		fks   int
	}{
		{"jobs", 1},
		{"question_sets", 1},
		{"questions", 1},
		{"applications", 2},
		{"screening_sessions", 2},
		{"responses", 2},
	}

	for _, tc := range cases {
		stmt := tableStatement(t, tc.table)
		refs := strings.Count(stmt, "REFERENCES")
		if refs != tc.fks {
			t.Fatalf("table %s: expected %d foreign keys, found %d", tc.table, tc.fks, refs)
		}
		cascades := strings.Count(stmt, "ON DELETE CASCADE")
		if cascades != refs {
			t.Fatalf("table %s: %d of %d foreign keys cascade on delete", tc.table, cascades, refs)
		}
	}
}

func TestEveryForeignKeyCascades(t *testing.T) {
	for _, stmt := range statements {
		for _, line := range strings.Split(stmt, "\n") {
			if !strings.Contains(line, "REFERENCES") {
				continue
			}
			if !strings.Contains(line, "ON DELETE CASCADE") {
				t.Fatalf("foreign key without ON DELETE CASCADE: %s", strings.TrimSpace(line))
			}
		}
	}
}

func TestResponseIdentityUnique(t *testing.T) {
	stmt := tableStatement(t, "responses")
	if !strings.Contains(stmt, "UNIQUE (session_id, question_id)") {
		t.Fatalf("responses must be unique per (session, question)")
	}
}

func TestApplicationUniquePerJobAndCandidate(t *testing.T) {
	stmt := tableStatement(t, "applications")
	if !strings.Contains(stmt, "UNIQUE (job_id, candidate_id)") {
		t.Fatalf("applications must be unique per (job, candidate)")
	}
}
