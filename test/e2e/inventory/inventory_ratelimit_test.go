package inventory_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/stocktake/pkg/inventorysdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLogin verifies /auth/login allows 5 attempts per email and
// address before returning 429.
func TestRateLimitLogin(t *testing.T) {
	baseURL, cleanup := setupInventoryContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := inventorysdk.NewSDKClient(baseURL)
	ctx := t.Context()

	for i := range 5 {
		_, err := client.Login(ctx, "nobody@example.com", "wrong password")
		assertStatus(t, err, http.StatusBadRequest, "attempt before the limit")
		require.NotContains(t, err.Error(), "429", "Should not be rate limited yet (request %d)", i+1)
	}

	_, err := client.Login(ctx, "nobody@example.com", "wrong password")
	assertStatus(t, err, http.StatusTooManyRequests, "attempt over the limit")

	// A different email has its own bucket.
	_, err = client.Login(ctx, "someone@example.com", "wrong password")
	assertStatus(t, err, http.StatusBadRequest, "different email")
}
