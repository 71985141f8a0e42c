package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, "txn-1")
	assert.NotEmpty(t, token)

	decodedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt))
	assert.Equal(t, "txn-1", decodedID)

	// non-UTC times come back as the same instant
	local := time.Date(2024, 1, 2, 3, 4, 5, 6, time.FixedZone("X", 3600))
	decodedAt, _, err = DecodeToken(EncodeToken(local, "x"))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedAt))
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"not base64": "%%%",
		"no id":      base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z")),
		"empty id":   base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|")),
		"bad time":   base64.URLEncoding.EncodeToString([]byte("yesterday|txn-1")),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeToken(token)
			assert.Error(t, err)
		})
	}
}

func TestIsAfter(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	assert.True(t, IsAfter(t1, "a", t2, "z"), "older items come after the cursor")
	assert.False(t, IsAfter(t2, "a", t1, "z"), "newer items come before the cursor")
	assert.True(t, IsAfter(t1, "b", t1, "a"))
	assert.False(t, IsAfter(t1, "a", t1, "a"), "the cursor item itself is excluded")
}
