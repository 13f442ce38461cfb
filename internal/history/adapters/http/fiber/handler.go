package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"notification-dispatch-service/internal/history/core/domain"
	"notification-dispatch-service/internal/history/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetHistoryUseCase interface {
	Execute(ctx context.Context, in usecase.GetHistoryInput) ([]domain.HistoryEntry, error)
}

type HistoryHandler struct {
	uc GetHistoryUseCase
}

func NewHistoryHandler(uc GetHistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// GetHistory godoc
// @Summary Query delivery history
// @Description Returns recent delivery history records, newest first
// @Tags History
// @Accept json
// @Produce json
// @Param from query int true "From timestamp"
// @Param to query int true "To timestamp"
// @Param only_failures query bool false "Return failed deliveries only"
// @Param limit query int false "Maximum number of entries (default 50)"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /history [get]
func (h *HistoryHandler) GetHistory(c *fiber.Ctx) error {
	fromStr := c.Query("from", "")
	toStr := c.Query("to", "")
	if fromStr == "" || toStr == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "from and to are required",
		})
	}

	from, err := strconv.ParseInt(fromStr, 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'from' parameter",
		})
	}
	to, err := strconv.ParseInt(toStr, 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'to' parameter",
		})
	}

	limit := 0
	if limitStr := c.Query("limit", ""); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid 'limit' parameter",
			})
		}
	}

	in := usecase.GetHistoryInput{
		From:         from,
		To:           to,
		OnlyFailures: c.QueryBool("only_failures", false),
		Limit:        limit,
	}

	entries, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidTimeRange),
			errors.Is(err, usecase.ErrInvalidLimit):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_history_query",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := HistoryResponse{
		From:    from,
		To:      to,
		Entries: make([]HistoryEntryDTO, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, HistoryEntryDTO{
			ID:               e.ID,
			EventID:          e.EventID,
			EndpointID:       e.EndpointID,
			Status:           e.Status,
			Success:          e.Success,
			InvocationTimeMs: e.InvocationTimeMs,
			CreatedAt:        e.CreatedAt,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}
