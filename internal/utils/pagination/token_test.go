package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	ts := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)
	id := uuid.NewString()

	token := EncodeToken(ts, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedTs, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, ts.Equal(decodedTs), "Timestamp should match after decode")
	assert.Equal(t, id, decodedID)

	// Non-UTC input comes back as the same instant
	local := ts.In(time.FixedZone("EET", 2*60*60))
	decodedLocal, _, err := DecodeToken(EncodeToken(local, id))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedLocal))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badTime := base64.URLEncoding.EncodeToString([]byte("notadate|" + uuid.NewString()))
	_, _, err = DecodeToken(badTime)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp parse")

	badID := base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|not-a-uuid"))
	_, _, err = DecodeToken(badID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "transaction id")
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 7, NormalizeLimit(7))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
}
