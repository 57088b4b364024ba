package ns

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/seoistop/check-domain-nc/config"
)

const (
	ProductionEndpoint = "https://api.namecheap.com/xml.response"
	SandboxEndpoint    = "https://api.sandbox.namecheap.com/xml.response"

	DefaultCheckRetry   = 2
	DefaultPricingRetry = 1
	DefaultBackoffBase  = 1.5
)

// Client wraps the two Namecheap API commands the checker needs. Endpoint
// and retry knobs are plain fields so tests can point it at a local server.
type Client struct {
	Endpoint     string
	ApiUser      string
	ApiKey       string
	UserName     string
	ClientIP     string
	CheckRetry   int
	PricingRetry int
	BackoffBase  float64
	DebugXML     bool

	http   *resty.Client
	sleep  func(time.Duration)
	logger *zap.Logger
}

func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	endpoint := ProductionEndpoint
	if cfg.UseSandbox {
		endpoint = SandboxEndpoint
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 20
	}
	return &Client{
		Endpoint:     endpoint,
		ApiUser:      cfg.ApiUser,
		ApiKey:       cfg.ApiKey,
		UserName:     cfg.UserName,
		ClientIP:     cfg.ClientIP,
		CheckRetry:   DefaultCheckRetry,
		PricingRetry: DefaultPricingRetry,
		BackoffBase:  DefaultBackoffBase,
		DebugXML:     cfg.DebugXML,
		http:         resty.New().SetTimeout(time.Duration(timeout) * time.Second),
		sleep:        time.Sleep,
		logger:       logger,
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(c.BackoffBase, float64(attempt)) * float64(time.Second))
}

func (c *Client) baseParams(command string) map[string]string {
	return map[string]string{
		"ApiUser":  c.ApiUser,
		"ApiKey":   c.ApiKey,
		"UserName": c.UserName,
		"ClientIp": c.ClientIP,
		"Command":  command,
	}
}

func truncateBody(body string, max int) string {
	if len(body) > max {
		return body[:max]
	}
	return body
}

// CheckDomains issues one namecheap.domains.check call for the given batch.
// Network failures and non-200 statuses are retried with exponential backoff
// and surfaced as an ERROR response once retries are exhausted. A response
// that parses to ERROR status gets one extra backoff sleep before returning
// without re-issuing the call.
func (c *Client) CheckDomains(domains []string) BatchResponse {
	params := c.baseParams("namecheap.domains.check")
	params["DomainList"] = strings.Join(domains, ",")

	attempt := 0
	for {
		attempt++
		resp, err := c.http.R().SetQueryParams(params).Get(c.Endpoint)
		if err != nil {
			if attempt <= c.CheckRetry {
				c.sleep(c.backoff(attempt))
				continue
			}
			return ErrorResponse(fmt.Sprintf("Network error: %s", err.Error()))
		}
		if resp.StatusCode() != 200 {
			if attempt <= c.CheckRetry {
				c.sleep(c.backoff(attempt))
				continue
			}
			return ErrorResponse(fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), truncateBody(resp.String(), 300)))
		}

		parsed := ParseDomainsCheck(resp.String())
		if parsed.Status == StatusError {
			if c.DebugXML {
				c.logger.Warn("domains.check returned errors", zap.Strings("errors", parsed.Errors), zap.String("rawXML", resp.String()))
			}
			if attempt <= c.CheckRetry && len(parsed.Errors) > 0 {
				c.sleep(c.backoff(attempt))
			}
		}
		return parsed
	}
}

// GetPricing fetches the full TLD price table via namecheap.users.getPricing.
// Pricing is best effort: after retries an empty map comes back and the
// affected rows simply stay unpriced.
func (c *Client) GetPricing() map[string]TldPricing {
	params := c.baseParams("namecheap.users.getPricing")

	attempt := 0
	for {
		attempt++
		resp, err := c.http.R().SetQueryParams(params).Get(c.Endpoint)
		if err != nil {
			if attempt <= c.PricingRetry {
				c.sleep(c.backoff(attempt))
				continue
			}
			c.logger.Warn("users.getPricing failed", zap.Error(err))
			return map[string]TldPricing{}
		}
		if resp.StatusCode() != 200 {
			if attempt <= c.PricingRetry {
				c.sleep(c.backoff(attempt))
				continue
			}
			c.logger.Warn("users.getPricing failed",
				zap.Int("status", resp.StatusCode()),
				zap.String("body", truncateBody(resp.String(), 300)))
			return map[string]TldPricing{}
		}

		pricing := ParseUsersGetPricing(resp.String())
		if len(pricing) == 0 && c.DebugXML {
			c.logger.Warn("users.getPricing returned no entries", zap.String("rawXML", resp.String()))
		}
		return pricing
	}
}
