// Package salesforce provides JWT-authenticated, read-only SOQL access to
// Salesforce. The enricher only ever reads the Account directory, so the
// surface is a single Query operation.
package salesforce

import (
	"context"
	"os"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the Salesforce API operations used by the library loader.
type Client interface {
	Query(ctx context.Context, soql string, out any) error
}

// Creds holds JWT bearer-flow credentials.
type Creds struct {
	ClientID string
	Username string
	KeyPath  string
	LoginURL string
}

// ClientOption configures the Salesforce client.
type ClientOption func(*sfClient)

// WithRateLimit sets a per-second rate limit for SF API calls.
// A burst equal to the integer portion of rps is allowed.
func WithRateLimit(rps float64) ClientOption {
	return func(c *sfClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// sfClient wraps the go-salesforce/v3 Salesforce struct.
//
// NOTE: The underlying go-salesforce/v3 library does not accept
// context.Context, so Query discards ctx for the SF call itself. The ctx is
// still used for rate limiter waiting, so callers can cancel that wait.
type sfClient struct {
	sf      *salesforce.Salesforce
	limiter *rate.Limiter
}

// NewJWT authenticates with the JWT bearer flow and returns a Client.
func NewJWT(creds Creds, opts ...ClientOption) (Client, error) {
	if creds.ClientID == "" {
		return nil, eris.New("sf: client ID is required")
	}
	pemData, err := os.ReadFile(creds.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "sf: read JWT private key")
	}

	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         creds.LoginURL,
		Username:       creds.Username,
		ConsumerKey:    creds.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "sf: init")
	}

	return NewClient(sf, opts...), nil
}

// NewClient creates a Client wrapping the given go-salesforce instance.
func NewClient(sf *salesforce.Salesforce, opts ...ClientOption) Client {
	c := &sfClient{sf: sf}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *sfClient) Query(ctx context.Context, soql string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "sf: rate limit")
		}
	}
	if err := c.sf.Query(soql, out); err != nil {
		return eris.Wrap(err, "sf: query")
	}
	return nil
}
