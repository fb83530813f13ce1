package agent

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"kunlun/internal/domain"
	"kunlun/internal/logger"
)

const (
	DefaultAttempts       = 3
	DefaultRetryPause     = 5 * time.Second
	DefaultConnectTimeout = 10 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

type ReporterConfig struct {
	URL            string
	Attempts       int
	RetryPause     time.Duration
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

func DefaultReporterConfig(url string) ReporterConfig {
	return ReporterConfig{
		URL:            url,
		Attempts:       DefaultAttempts,
		RetryPause:     DefaultRetryPause,
		ConnectTimeout: DefaultConnectTimeout,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Reporter POSTs snapshots as form bodies. Transport errors and non-2xx
// responses are retried after a fixed pause, up to Attempts tries in total.
type Reporter struct {
	client   *retryablehttp.Client
	url      string
	attempts int
	log      logger.Logger
}

type attemptKey struct{}

func NewReporter(cfg ReporterConfig, log logger.Logger) *Reporter {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}

	r := &Reporter{url: cfg.URL, attempts: cfg.Attempts, log: log}

	client := retryablehttp.NewClient()
	client.HTTPClient = newHTTPClient(cfg.ConnectTimeout, cfg.RequestTimeout)
	client.Logger = debugLogger{log}
	client.RetryMax = cfg.Attempts - 1
	client.RetryWaitMin = cfg.RetryPause
	client.RetryWaitMax = cfg.RetryPause
	client.Backoff = fixedBackoff
	client.CheckRetry = r.checkRetry
	client.ErrorHandler = r.giveUp
	r.client = client

	return r
}

func (r *Reporter) Send(ctx context.Context, snap domain.Snapshot) error {
	body := EncodeSnapshot(snap).Encode()

	var attempt atomic.Int32
	ctx = context.WithValue(ctx, attemptKey{}, &attempt)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, r.url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	r.log.Info("metrics sent successfully", "status", resp.StatusCode, "attempt", attempt.Load(), "machine_id", snap.MachineID)
	return nil
}

func (r *Reporter) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	var n int32
	if counter, ok := ctx.Value(attemptKey{}).(*atomic.Int32); ok {
		n = counter.Add(1)
	}

	if err != nil {
		r.log.Error("failed to send metrics", "attempt", n, "max_attempts", r.attempts, "error", err)
		return true, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.log.Error("server returned error", "attempt", n, "max_attempts", r.attempts, "status", resp.StatusCode)
		return true, nil
	}

	return false, nil
}

func (r *Reporter) giveUp(resp *http.Response, err error, attempts int) (*http.Response, error) {
	if resp != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to send metrics after %d attempts: %w", attempts, err)
	}
	if resp != nil {
		return nil, fmt.Errorf("failed to send metrics after %d attempts: status %d", attempts, resp.StatusCode)
	}
	return nil, fmt.Errorf("failed to send metrics after %d attempts", attempts)
}

func fixedBackoff(pause, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return pause
}

func newHTTPClient(connectTimeout, requestTimeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   connectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   connectTimeout,
			ExpectContinueTimeout: time.Second,
		},
	}
}

// debugLogger demotes the retry client's own request tracing to debug so
// that each failed attempt is reported once, by checkRetry.
type debugLogger struct {
	log logger.Logger
}

func (d debugLogger) Error(msg string, kv ...any) { d.log.Debug(msg, kv...) }
func (d debugLogger) Info(msg string, kv ...any)  { d.log.Debug(msg, kv...) }
func (d debugLogger) Debug(msg string, kv ...any) { d.log.Debug(msg, kv...) }
func (d debugLogger) Warn(msg string, kv ...any)  { d.log.Debug(msg, kv...) }
