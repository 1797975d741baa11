package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	timeseriesv1 "github.com/min-nguyen/quant-ana-go/internal/domain/timeseries/v1"
	"github.com/min-nguyen/quant-ana-go/pkg/errors"
	"github.com/min-nguyen/quant-ana-go/pkg/logger"
)

// Config represents the provider connection configuration. Both values are
// consumed as opaque strings.
type Config struct {
	BaseURL string `env:"BASE_URL" envDefault:"https://www.alphavantage.co/query"`
	APIKey  string `env:"API_KEY"`
}

// Client retrieves historical time-series bars from the provider's HTTP
// endpoint or from a locally cached response file.
//
// The client performs no retries, caching or rate limiting; those belong to
// the caller. Cancellation is the caller's context on Fetch.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     logger.Interface
}

// NewClient creates a new provider client.
func NewClient(config Config, log logger.Interface) *Client {
	return &Client{
		config:     config,
		httpClient: http.DefaultClient,
		logger:     log,
	}
}

// Fetch synthesizes the query URL for the request, issues an HTTP GET, reads
// the body to completion and decodes it.
//
// Transport failures and non-2xx responses are returned as coded errors;
// decode failures are propagated verbatim from the decoder.
func (c *Client) Fetch(ctx context.Context, req timeseriesv1.Request) (*timeseriesv1.TimeSeries, error) {
	url := req.URL(c.config.BaseURL, c.config.APIKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	rsp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logError(err, "Fetch", req)
		return nil, errors.TracerFromError(err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		err := errors.NewErrorDetails(
			fmt.Sprintf("provider returned status %d", rsp.StatusCode),
			string(errors.UpstreamStatusError),
			"",
		)
		c.logError(err, "Fetch", req)
		return nil, err
	}

	// The body is read to completion before decoding, so an abandoned fetch
	// never hands partial JSON to the decoder.
	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		c.logError(err, "Fetch", req)
		return nil, errors.TracerFromError(err)
	}

	return decode(body)
}

// ReadFile reads a locally cached provider response and decodes it. The file
// carries the same JSON schema as a live HTTP response.
func (c *Client) ReadFile(path string) (*timeseriesv1.TimeSeries, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		c.logger.Error(err,
			logger.Field{Key: "operation", Value: "ReadFile"},
			logger.Field{Key: "path", Value: path},
		)
		return nil, errors.TracerFromError(err)
	}

	return decode(body)
}

func decode(body []byte) (*timeseriesv1.TimeSeries, error) {
	var ts timeseriesv1.TimeSeries
	if err := json.Unmarshal(body, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

// logError is a helper method to log errors consistently
func (c *Client) logError(err error, operation string, req timeseriesv1.Request) {
	c.logger.Error(err,
		logger.Field{Key: "operation", Value: operation},
		logger.Field{Key: "symbol", Value: req.Symbol},
		logger.Field{Key: "function", Value: req.Kind.String()},
	)
}
