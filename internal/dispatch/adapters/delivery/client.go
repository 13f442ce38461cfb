package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"notification-dispatch-service/internal/dispatch/core/domain"
	"notification-dispatch-service/internal/dispatch/core/ports"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

const (
	apiTokenHeader = "x-rh-apitoken"
	clientIDHeader = "x-rh-clientid"
	envHeader      = "x-rh-insights-env"

	defaultTimeout = 30 * time.Second
)

type Config struct {
	URL        string
	APIToken   string
	ClientID   string
	Env        string
	Timeout    time.Duration
	RatePerSec int
}

// Client delivers shaped notifications to the email gateway and records the
// attempt as a history record.
type Client struct {
	http    *fasthttp.Client
	cfg     Config
	limiter *rate.Limiter
	history ports.HistoryRepositoryPort
}

// NewClient builds the gateway client. The API token arrives mime-encoded
// with an embedded line break and the transport rejects header values
// containing line breaks, so they are stripped once here.
func NewClient(cfg Config, history ports.HistoryRepositoryPort) *Client {
	cfg.APIToken = cleanLineBreaks(cfg.APIToken)
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec)
	}

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
		cfg:     cfg,
		limiter: limiter,
		history: history,
	}
}

var _ ports.DeliveryPort = (*Client)(nil)

type emailMessage struct {
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	BodyType string   `json:"bodyType"`
	BCCList  []string `json:"bccList"`
}

type sendEmailsRequest struct {
	Emails []emailMessage `json:"emails"`
}

func (c *Client) Send(ctx context.Context, event domain.Event, endpoint domain.Endpoint, payload domain.DeliveryPayload, persistHistory bool) (*domain.HistoryRecord, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(sendEmailsRequest{
		Emails: []emailMessage{{
			Subject:  payload.Subject,
			Body:     payload.Body,
			BodyType: payload.BodyType,
			BCCList:  payload.BCC,
		}},
	})
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.cfg.URL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set(apiTokenHeader, c.cfg.APIToken)
	req.Header.Set(clientIDHeader, c.cfg.ClientID)
	req.Header.Set(envHeader, c.cfg.Env)
	req.SetBody(body)

	start := time.Now()
	if err := c.do(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("delivery request failed: %w", err)
	}
	elapsed := time.Since(start)

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return nil, fmt.Errorf("delivery rejected with status %d", status)
	}

	record := &domain.HistoryRecord{
		ID:             uuid.New(),
		EventID:        event.ID,
		EndpointID:     endpoint.ID,
		Status:         status,
		Success:        true,
		InvocationTime: elapsed,
		Details: map[string]any{
			"method": fasthttp.MethodPost,
			"url":    c.cfg.URL,
		},
		CreatedAt: time.Now().UTC(),
	}

	if persistHistory {
		if err := c.history.Insert(ctx, record); err != nil {
			return record, fmt.Errorf("persist delivery history: %w", err)
		}
	}

	return record, nil
}

func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if deadline, ok := ctx.Deadline(); ok {
		return c.http.DoDeadline(req, resp, deadline)
	}
	return c.http.DoTimeout(req, resp, c.cfg.Timeout)
}

func cleanLineBreaks(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
