package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 7, 3, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(date, createdAt)
	assert.NotEmpty(t, token)

	decodedDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, date, decodedDate)
	assert.Equal(t, createdAt, decodedCreatedAt)

	// Zero values round-trip too.
	zeroToken := EncodeToken(time.Time{}, time.Time{})
	d, c, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, d.IsZero())
	assert.True(t, c.IsZero())
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64 but no separator.
	_, _, err = DecodeToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// "notadate|<valid time>"
	_, _, err = DecodeToken("bm90YWRhdGV8MjAyMy0wNS0xNVQxNDozMDo0NS4xMjM0NTY3ODla")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")
}
