package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"notification-dispatch-service/internal/recipients/core/domain"
	"notification-dispatch-service/internal/recipients/core/ports"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches user and group-membership pages from the directory service.
// It does not retry; retries are an external transport concern.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
	}
}

var _ ports.DirectoryPort = (*Client)(nil)

// pageEnvelope mirrors the directory service's JSON page shape.
type pageEnvelope struct {
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
	Data []struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		IsAdmin  bool   `json:"is_org_admin"`
	} `json:"data"`
}

func (c *Client) FetchUsersPage(ctx context.Context, adminsOnly bool, offset, limit int) (*domain.Page, error) {
	uri := fmt.Sprintf("%s/v1/users?offset=%d&limit=%d&admin_only=%t", c.baseURL, offset, limit, adminsOnly)
	return c.fetchPage(ctx, uri)
}

func (c *Client) FetchGroupPage(ctx context.Context, groupID uuid.UUID, offset, limit int) (*domain.Page, error) {
	uri := fmt.Sprintf("%s/v1/groups/%s/principals/?offset=%d&limit=%d", c.baseURL, groupID, offset, limit)
	return c.fetchPage(ctx, uri)
}

func (c *Client) fetchPage(ctx context.Context, uri string) (*domain.Page, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	if err := c.do(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrDirectoryUnavailable, err)
	}

	if code := resp.StatusCode(); code < fasthttp.StatusOK || code >= fasthttp.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d", ports.ErrDirectoryUnavailable, code)
	}

	var envelope pageEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrMalformedResponse, err)
	}
	if envelope.Meta.Count < 0 {
		return nil, fmt.Errorf("%w: negative element count %d", ports.ErrMalformedResponse, envelope.Meta.Count)
	}

	page := &domain.Page{
		Elements:      make([]domain.User, 0, len(envelope.Data)),
		ElementsCount: envelope.Meta.Count,
	}
	for _, d := range envelope.Data {
		page.Elements = append(page.Elements, domain.User{
			Username: d.Username,
			Email:    d.Email,
			Admin:    d.IsAdmin,
		})
	}

	return page, nil
}

func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if deadline, ok := ctx.Deadline(); ok {
		return c.http.DoDeadline(req, resp, deadline)
	}
	return c.http.DoTimeout(req, resp, c.timeout)
}
