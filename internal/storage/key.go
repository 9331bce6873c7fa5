package storage

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewObjectID returns a lowercase ULID. IDs generated in the same millisecond
// still sort in creation order.
func NewObjectID(now time.Time) string {
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), entropy)
	entropyMu.Unlock()
	return strings.ToLower(id.String())
}

// NewObjectKey builds the storage key for a hatchery image
func NewObjectKey(hatcheryID, ext string, now time.Time) string {
	return "hatcheries/" + hatcheryID + "/" + NewObjectID(now) + ext
}
