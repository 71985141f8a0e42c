package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates an opaque cursor pointing just past the item created at createdAt with the given id.
func EncodeToken(createdAt time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", createdAt.UTC().Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	rawTime, id, ok := strings.Cut(string(decodedBytes), "|")
	if !ok || id == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}
	createdAt, err := time.Parse(timeFormat, rawTime)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return createdAt, id, nil
}

// IsAfter reports whether an item sorts after the cursor in newest-first order,
// where ties on createdAt are broken by ascending id.
func IsAfter(createdAt time.Time, id string, cursorAt time.Time, cursorID string) bool {
	if c := createdAt.Compare(cursorAt); c != 0 {
		return c < 0
	}
	return id > cursorID
}
