package chatid

import (
	"strings"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		generate   func() string
		wantPrefix string
	}{
		{
			name:       "agent id",
			generate:   NewAgentID,
			wantPrefix: "agent_",
		},
		{
			name:       "session id",
			generate:   NewSessionID,
			wantPrefix: "sess_",
		},
		{
			name:       "message id",
			generate:   NewMessageID,
			wantPrefix: "msg_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.generate()
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("New() = %v, want prefix %v", got, tt.wantPrefix)
			}
			// prefix + underscore + 26 ULID characters
			expectedLen := len(tt.wantPrefix) + 26
			if len(got) != expectedLen {
				t.Errorf("New() length = %v, want %v", len(got), expectedLen)
			}
			if got != strings.ToLower(got) {
				t.Errorf("New() = %v, want lowercase", got)
			}
		})
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewMessageID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestNewConcurrentNoDuplicates(t *testing.T) {
	const (
		goroutines = 8
		perRoutine = 200
	)

	var wg sync.WaitGroup
	results := make(chan string, goroutines*perRoutine)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perRoutine; i++ {
				results <- NewMessageID()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, goroutines*perRoutine)
	for id := range results {
		if seen[id] {
			t.Fatalf("duplicate id generated under concurrency: %s", id)
		}
		seen[id] = true
	}
}

func TestNewIsTimeOrdered(t *testing.T) {
	first := NewMessageID()
	second := NewMessageID()
	if !(first < second) {
		t.Errorf("expected %s < %s", first, second)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		value  string
		want   bool
	}{
		{
			name:   "valid agent id",
			prefix: PrefixAgent,
			value:  NewAgentID(),
			want:   true,
		},
		{
			name:   "wrong prefix",
			prefix: PrefixAgent,
			value:  NewSessionID(),
			want:   false,
		},
		{
			name:   "missing prefix",
			prefix: PrefixSession,
			value:  "01hf8z3q9k2m4n6p8r0t2v4x6y",
			want:   false,
		},
		{
			name:   "garbage suffix",
			prefix: PrefixMessage,
			value:  "msg_not-a-ulid",
			want:   false,
		},
		{
			name:   "empty string",
			prefix: PrefixAgent,
			value:  "",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.prefix, tt.value); got != tt.want {
				t.Errorf("IsValid(%q, %q) = %v, want %v", tt.prefix, tt.value, got, tt.want)
			}
		})
	}
}
