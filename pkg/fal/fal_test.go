package fal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/context"
)

func TestValidateKey(t *testing.T) {
	assert.ErrorIs(t, ValidateKey(""), ErrInvalidKey)
	assert.ErrorIs(t, ValidateKey("abcde12345"), ErrInvalidKey)
	assert.ErrorIs(t, ValidateKey("   "+strings.Repeat("x", 10)+"   "), ErrInvalidKey)
	assert.NoError(t, ValidateKey(strings.Repeat("k", MinKeyLength)))
}

func TestShortKeyFailsWithoutNetworkCall(t *testing.T) {
	// Unroutable base URL: any network attempt would error differently
	// than ErrInvalidKey.
	c := &falClient{baseURL: "http://127.0.0.1:1", httpClient: nil}

	_, err := c.TryOn(context.Background(), "abcde12345", TryOnRequest{
		ModelImageURL:   "https://example.com/person.png",
		GarmentImageURL: "https://example.com/shirt.png",
		Category:        "tops",
	})
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = c.GenerateVideo(context.Background(), "abcde12345", VideoRequest{
		ImageURL: "https://example.com/tryon.png",
	})
	assert.ErrorIs(t, err, ErrInvalidKey)
}
