package natsadapter

import (
	"testing"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/spraylog/internal/core/ports"
)

// subjectMatches implements NATS wildcard matching for '*' and '>'.
func subjectMatches(pattern, subject string) bool {
	p := splitTokens(pattern)
	s := splitTokens(subject)
	for i, tok := range p {
		if tok == ">" {
			return len(s) > i
		}
		if i >= len(s) || (tok != "*" && tok != s[i]) {
			return false
		}
	}
	return len(p) == len(s)
}

func splitTokens(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func TestStreamConfigCoversEverySubject(t *testing.T) {
	cfg := streamConfig()
	if cfg.Name != StreamName {
		t.Fatalf("expected stream %s, got %s", StreamName, cfg.Name)
	}
	if cfg.Retention != nats.LimitsPolicy {
		t.Fatalf("expected limits retention, got %v", cfg.Retention)
	}

	subjects := []string{
		ports.SubjectPaddockCreated,
		ports.SubjectPaddockUpdated,
		ports.SubjectPaddockDeleted,
		ports.SubjectApplicationRecorded,
		ports.SubjectRecommendationCreated,
	}
	for _, subj := range subjects {
		matched := false
		for _, pattern := range cfg.Subjects {
			if subjectMatches(pattern, subj) {
				matched = true
			}
		}
		if !matched {
			t.Errorf("subject %s not captured by stream subjects %v", subj, cfg.Subjects)
		}
	}
}
