package ns

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const okCheckXML = `<ApiResponse Status="OK"><CommandResponse>
 <DomainCheckResult Domain="example.com" Available="true" IsPremiumName="false"/>
</CommandResponse></ApiResponse>`

func newTestClient(endpoint string, sleeps *[]time.Duration) *Client {
	return &Client{
		Endpoint:     endpoint,
		ApiUser:      "user",
		ApiKey:       "key",
		UserName:     "user",
		ClientIP:     "127.0.0.1",
		CheckRetry:   DefaultCheckRetry,
		PricingRetry: DefaultPricingRetry,
		BackoffBase:  DefaultBackoffBase,
		http:         resty.New().SetTimeout(2 * time.Second),
		sleep: func(d time.Duration) {
			*sleeps = append(*sleeps, d)
		},
		logger: zap.NewNop(),
	}
}

func TestCheckDomains_SendsMandatoryParams(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(okCheckXML))
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)
	resp := client.CheckDomains([]string{"example.com", "test.org"})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, "user", query["ApiUser"][0])
	assert.Equal(t, "key", query["ApiKey"][0])
	assert.Equal(t, "127.0.0.1", query["ClientIp"][0])
	assert.Equal(t, "namecheap.domains.check", query["Command"][0])
	assert.Equal(t, "example.com,test.org", query["DomainList"][0])
	assert.Empty(t, sleeps)
}

func TestCheckDomains_RetriesServerErrorThenSucceeds(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(okCheckXML))
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)
	resp := client.CheckDomains([]string{"example.com"})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, 2, calls)
	require.Len(t, sleeps, 1)
	// backoff_base ^ 1 seconds after the first failed attempt
	assert.Equal(t, 1500*time.Millisecond, sleeps[0])
}

func TestCheckDomains_ExhaustedRetriesReturnHTTPError(t *testing.T) {
	var calls int
	longBody := strings.Repeat("x", 1000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(longBody))
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)
	client.CheckRetry = 1
	resp := client.CheckDomains([]string{"example.com"})

	assert.Equal(t, StatusError, resp.Status)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 2, calls)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "HTTP 502:")
	assert.LessOrEqual(t, len(resp.Errors[0]), len("HTTP 502: ")+300)
}

func TestCheckDomains_NetworkErrorAfterRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)
	client.CheckRetry = 2
	resp := client.CheckDomains([]string{"example.com"})

	assert.Equal(t, StatusError, resp.Status)
	assert.Empty(t, resp.Results)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "Network error")
	assert.Len(t, sleeps, 2)
}

func TestCheckDomains_ApiErrorSleepsOnceWithoutReissuing(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`<ApiResponse Status="ERROR"><Errors><Error Number="1011150">Invalid request IP</Error></Errors></ApiResponse>`))
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)
	resp := client.CheckDomains([]string{"example.com"})

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, []string{"1011150 Invalid request IP"}, resp.Errors)
	assert.Equal(t, 1, calls)
	assert.Len(t, sleeps, 1)
}

func TestGetPricing_ParsesTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "namecheap.users.getPricing", r.URL.Query().Get("Command"))
		_, _ = w.Write([]byte(`<ApiResponse Status="OK"><CommandResponse>
 <Product Name="IO"><Price Action="REGISTER" Price="34.98" Currency="USD"/></Product>
</CommandResponse></ApiResponse>`))
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)
	pricing := client.GetPricing()

	require.Contains(t, pricing, "IO")
	assert.Equal(t, "34.98", pricing["IO"].RegisterPrice)
	assert.Equal(t, "USD", pricing["IO"].Currency)
}

func TestGetPricing_BestEffortEmptyOnFailure(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := newTestClient(server.URL, &sleeps)
	pricing := client.GetPricing()

	assert.Empty(t, pricing)
	// pricing retries are lower than check retries: two attempts total
	assert.Equal(t, 2, calls)
	assert.Len(t, sleeps, 1)
}
