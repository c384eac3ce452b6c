package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FeedCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

func feedCacheKey(userID uuid.UUID, queryText string) string {
	q := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(queryText))), " ")
	sum := sha256.Sum256([]byte(q))
	return "feed:" + userID.String() + ":" + hex.EncodeToString(sum[:])
}

// feedKeyPattern matches every cached feed for one user, so a recorded
// decision can drop them all at once.
func feedKeyPattern(userID uuid.UUID) string {
	return "feed:" + userID.String() + ":*"
}
