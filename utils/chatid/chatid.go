package chatid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Entity prefixes for public identifiers.
const (
	PrefixAgent   = "agent"
	PrefixSession = "sess"
	PrefixMessage = "msg"
)

var (
	entropyOnce sync.Once
	entropy     *ulid.LockedMonotonicReader
)

// newEntropy returns a process-wide entropy source safe for concurrent
// request goroutines.
func newEntropy() *ulid.LockedMonotonicReader {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rand.New(source), 0),
		}
	})
	return entropy
}

// New returns a prefixed ULID string, e.g. "sess_01hf...". ULIDs are
// time-ordered, so ids generated later sort after earlier ones.
func New(prefix string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	return prefix + "_" + strings.ToLower(id.String())
}

// NewAgentID returns an agent_* ULID string.
func NewAgentID() string { return New(PrefixAgent) }

// NewSessionID returns a sess_* ULID string.
func NewSessionID() string { return New(PrefixSession) }

// NewMessageID returns a msg_* ULID string.
func NewMessageID() string { return New(PrefixMessage) }

// IsValid reports whether the string is a prefixed ULID with the given prefix.
func IsValid(prefix, value string) bool {
	if !strings.HasPrefix(value, prefix+"_") {
		return false
	}
	_, err := Parse(prefix, value)
	return err == nil
}

// Parse strips the prefix and returns the ULID.
func Parse(prefix, value string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, prefix+"_")
	return ulid.Parse(value)
}
