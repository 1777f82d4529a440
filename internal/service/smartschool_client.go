package service

import (
	"better_results_backend/internal/config"
	"better_results_backend/internal/grading"
	"better_results_backend/internal/model"
	"better_results_backend/internal/util"
	"better_results_backend/pkg/monitoring"
	"better_results_backend/pkg/tracing"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const evaluationsPath = "/results/api/v1/evaluations"

// SmartschoolClient 用调用方的会话拉取成绩列表，只发一次请求，不重试
type SmartschoolClient struct {
	mu      sync.RWMutex
	config  config.SmartschoolConfig
	limiter *rate.Limiter
	http    *http.Client
}

func NewSmartschoolClient(cfg config.SmartschoolConfig) *SmartschoolClient {
	c := &SmartschoolClient{}
	c.UpdateConfig(cfg)
	return c
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		// 会话过期时 Smartschool 跳转到登录页
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func newLimiter(cfg config.SmartschoolConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
}

// UpdateConfig 配置热更新时调用
func (c *SmartschoolClient) UpdateConfig(cfg config.SmartschoolConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = cfg
	c.limiter = newLimiter(cfg)
	c.http = newHTTPClient(cfg.Timeout())
}

func (c *SmartschoolClient) snapshot() (config.SmartschoolConfig, *rate.Limiter, *http.Client) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config, c.limiter, c.http
}

func (c *SmartschoolClient) evaluationsURL(cfg config.SmartschoolConfig, year *grading.SchoolYear) string {
	q := url.Values{}
	q.Set("itemsOnPage", strconv.Itoa(cfg.ItemsOnPage))
	if year != nil {
		q.Set("startDate", year.StartDate())
		q.Set("endDate", year.EndDate())
	}
	return strings.TrimRight(cfg.BaseURL, "/") + evaluationsPath + "?" + q.Encode()
}

// FetchEvaluations year 为 nil 时由 Smartschool 决定返回范围
func (c *SmartschoolClient) FetchEvaluations(ctx context.Context, session string, year *grading.SchoolYear) ([]model.EvaluationRecord, error) {
	if session == "" {
		return nil, util.ErrMissingSession
	}

	cfg, limiter, httpClient := c.snapshot()

	ctx, span := tracing.Tracer.Start(ctx, "smartschool.FetchEvaluations")
	defer span.End()

	if err := limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rate limiter")
		return nil, err
	}

	target := c.evaluationsURL(cfg, year)
	span.SetAttributes(attribute.String("smartschool.url", target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluations request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: cfg.SessionCookie, Value: session})

	started := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		monitoring.ObserveUpstream(0, started)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, fmt.Errorf("%w: %w", util.ErrUpstreamDown, err)
	}
	defer resp.Body.Close()
	monitoring.ObserveUpstream(resp.StatusCode, started)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden,
		resp.StatusCode >= 300 && resp.StatusCode < 400:
		span.SetStatus(codes.Error, "unauthorized")
		return nil, fmt.Errorf("%w: status %d", util.ErrUpstreamAuth, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		span.SetStatus(codes.Error, "status")
		return nil, fmt.Errorf("%w: status %d", util.ErrUpstreamStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read evaluations: %w", err)
	}

	var records []model.EvaluationRecord
	if err := json.Unmarshal(body, &records); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payload")
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamPayload, err)
	}

	span.SetAttributes(attribute.Int("smartschool.records", len(records)))
	return records, nil
}
