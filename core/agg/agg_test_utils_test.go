package agg

import (
	"fmt"
	"strings"
	"time"
)

// gitLogScenario represents a single commit scenario for test data generation.
type gitLogScenario struct {
	commitHash string
	author     string
	email      string
	date       time.Time
	files      []string
}

// generateTestGitLog creates a programmatic git log fixture for testing,
// newest commit first like git log itself.
func generateTestGitLog(scenarios []gitLogScenario) []byte {
	var lines []string
	for _, s := range scenarios {
		lines = append(lines, fmt.Sprintf("--%s|%s|%s|%s", s.commitHash, s.author, s.email, s.date.Format(time.RFC3339)))
		for _, f := range s.files {
			lines = append(lines, fmt.Sprintf("1\t0\t%s", f))
		}
		lines = append(lines, "") // Empty line between commits
	}
	return []byte(strings.Join(lines, "\n"))
}
