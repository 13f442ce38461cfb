package fiber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notification-dispatch-service/internal/history/core/domain"
	"notification-dispatch-service/internal/history/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type fakeGetHistoryUseCase struct {
	ExecuteFunc func(ctx context.Context, in usecase.GetHistoryInput) ([]domain.HistoryEntry, error)
	LastInput   usecase.GetHistoryInput
}

func (f *fakeGetHistoryUseCase) Execute(ctx context.Context, in usecase.GetHistoryInput) ([]domain.HistoryEntry, error) {
	f.LastInput = in
	if f.ExecuteFunc != nil {
		return f.ExecuteFunc(ctx, in)
	}
	return nil, nil
}

// helper: create fiber app and routes
func setupTestApp(uc GetHistoryUseCase) *fiber.App {
	app := fiber.New()
	h := NewHistoryHandler(uc)

	app.Get("/history", h.GetHistory)

	return app
}

// helper: send request
func doRequest(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, respBody
}

func TestGetHistory_Success(t *testing.T) {
	fakeUC := &fakeGetHistoryUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.GetHistoryInput) ([]domain.HistoryEntry, error) {
			return []domain.HistoryEntry{
				{ID: "h1", EventID: "e1", EndpointID: "ep1", Status: 200, Success: true, InvocationTimeMs: 120, CreatedAt: time.Now().UTC()},
			}, nil
		},
	}

	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, "/history?from=100&to=200&only_failures=true&limit=10")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}

	var respJSON HistoryResponse
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if respJSON.From != 100 || respJSON.To != 200 {
		t.Errorf("expected echoed range, got from=%d to=%d", respJSON.From, respJSON.To)
	}
	if len(respJSON.Entries) != 1 || respJSON.Entries[0].ID != "h1" {
		t.Errorf("unexpected entries: %+v", respJSON.Entries)
	}

	in := fakeUC.LastInput
	if in.From != 100 || in.To != 200 || !in.OnlyFailures || in.Limit != 10 {
		t.Errorf("unexpected usecase input: %+v", in)
	}
}

func TestGetHistory_EmptyResult(t *testing.T) {
	app := setupTestApp(&fakeGetHistoryUseCase{})

	resp, body := doRequest(t, app, "/history?from=100&to=200")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}

	var respJSON HistoryResponse
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if respJSON.Entries == nil || len(respJSON.Entries) != 0 {
		t.Errorf("expected an empty entries array, got %+v", respJSON.Entries)
	}
}

func TestGetHistory_MissingRange(t *testing.T) {
	app := setupTestApp(&fakeGetHistoryUseCase{})

	for _, path := range []string{"/history", "/history?from=100", "/history?to=200"} {
		resp, body := doRequest(t, app, path)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status %d for %s, got %d (body: %s)", http.StatusBadRequest, path, resp.StatusCode, string(body))
		}
	}
}

func TestGetHistory_MalformedParams(t *testing.T) {
	app := setupTestApp(&fakeGetHistoryUseCase{})

	for _, path := range []string{
		"/history?from=abc&to=200",
		"/history?from=100&to=abc",
		"/history?from=100&to=200&limit=abc",
	} {
		resp, body := doRequest(t, app, path)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status %d for %s, got %d (body: %s)", http.StatusBadRequest, path, resp.StatusCode, string(body))
		}
	}
}

func TestGetHistory_ValidationError(t *testing.T) {
	fakeUC := &fakeGetHistoryUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.GetHistoryInput) ([]domain.HistoryEntry, error) {
			return nil, fmt.Errorf("%w: from after to", usecase.ErrInvalidTimeRange)
		},
	}

	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, "/history?from=200&to=100")

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if respJSON["error"] != "invalid_history_query" {
		t.Errorf("expected error=invalid_history_query, got %v", respJSON["error"])
	}
}

func TestGetHistory_InternalError(t *testing.T) {
	fakeUC := &fakeGetHistoryUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.GetHistoryInput) ([]domain.HistoryEntry, error) {
			return nil, errors.New("db error")
		},
	}

	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, "/history?from=100&to=200")

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusInternalServerError, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if respJSON["error"] != "internal_server_error" {
		t.Errorf("expected error=internal_server_error, got %v", respJSON["error"])
	}
}
