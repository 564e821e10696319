package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// HTTPChecker asks the external capability service whether a principal holds
// a role, caching positive and negative answers in Redis for a short TTL.
type HTTPChecker struct {
	baseURL  string
	client   *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewHTTPChecker(baseURL string, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *HTTPChecker {
	return &HTTPChecker{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 5 * time.Second},
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

type roleResponse struct {
	HasRole bool `json:"hasRole"`
}

func (c *HTTPChecker) HasRole(ctx context.Context, principalID, role string) (bool, error) {
	cacheKey := fmt.Sprintf("role:%s:%s", principalID, role)
	if c.cache != nil {
		if val, err := c.cache.Get(ctx, cacheKey).Result(); err == nil {
			return val == "1", nil
		}
	}

	endpoint := fmt.Sprintf("%s/roles/%s/%s", c.baseURL, url.PathEscape(principalID), url.PathEscape(role))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("capability check request build failed: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("capability service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("capability service returned status %d", resp.StatusCode)
	}

	var body roleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("capability service response malformed: %w", err)
	}

	if c.cache != nil {
		val := "0"
		if body.HasRole {
			val = "1"
		}
		if err := c.cache.Set(ctx, cacheKey, val, c.cacheTTL).Err(); err != nil {
			c.logger.Warn("failed to cache capability answer", zap.Error(err))
		}
	}
	return body.HasRole, nil
}
