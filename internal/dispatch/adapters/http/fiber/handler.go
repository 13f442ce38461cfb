package fiber

import (
	"context"
	"errors"
	"net/http"

	"notification-dispatch-service/internal/dispatch/core/domain"
	"notification-dispatch-service/internal/dispatch/core/usecase"
	recipients "notification-dispatch-service/internal/recipients/core/domain"
	recipientports "notification-dispatch-service/internal/recipients/core/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SendNotificationUseCase interface {
	Execute(ctx context.Context, in usecase.SendNotificationInput) (usecase.DispatchResult, error)
}

type NotificationHandler struct {
	sendUC SendNotificationUseCase
}

func NewNotificationHandler(sendUC SendNotificationUseCase) *NotificationHandler {
	return &NotificationHandler{sendUC: sendUC}
}

// SendNotification godoc
// @Summary Dispatch a notification
// @Description Resolves recipients for the event, renders the templates and delivers through the email gateway
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body SendNotificationRequest true "Dispatch payload"
// @Success 200 {object} SendNotificationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /notifications [post]
func (h *NotificationHandler) SendNotification(c *fiber.Ctx) error {
	var req SendNotificationRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	in, err := toSendNotificationInput(req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_notification",
			Message: err.Error(),
		})
	}

	result, err := h.sendUC.Execute(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, recipientports.ErrDirectoryUnavailable),
			errors.Is(err, recipientports.ErrMalformedResponse):
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
				Error:   "directory_unavailable",
				Message: err.Error(),
			})
		case errors.Is(err, usecase.ErrRenderFailed):
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error:   "render_failed",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := SendNotificationResponse{
		Status: string(result.Outcome),
	}
	if result.History != nil {
		resp.HistoryID = result.History.ID.String()
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func toSendNotificationInput(req SendNotificationRequest) (usecase.SendNotificationInput, error) {
	var in usecase.SendNotificationInput

	if req.SubjectTemplate == "" || req.BodyTemplate == "" {
		return in, errors.New("subject_template and body_template are required")
	}
	if req.EventType == "" {
		return in, errors.New("event_type is required")
	}

	eventID := uuid.New()
	if req.EventID != "" {
		parsed, err := uuid.Parse(req.EventID)
		if err != nil {
			return in, errors.New("invalid event_id")
		}
		eventID = parsed
	}

	var endpointID uuid.UUID
	if req.EndpointID != "" {
		parsed, err := uuid.Parse(req.EndpointID)
		if err != nil {
			return in, errors.New("invalid endpoint_id")
		}
		endpointID = parsed
	}

	var groupID *uuid.UUID
	if req.Recipients.GroupID != "" {
		parsed, err := uuid.Parse(req.Recipients.GroupID)
		if err != nil {
			return in, errors.New("invalid group_id")
		}
		groupID = &parsed
	}

	in = usecase.SendNotificationInput{
		Event: domain.Event{
			ID:          eventID,
			EventType:   req.EventType,
			Bundle:      req.Bundle,
			Application: req.Application,
			Payload:     req.Payload,
		},
		Settings: recipients.RecipientSettings{
			OnlyAdmins:            req.Recipients.OnlyAdmins,
			IgnoreUserPreferences: req.Recipients.IgnoreUserPreferences,
			GroupID:               groupID,
			Users:                 req.Recipients.Users,
		},
		SubjectTemplate: req.SubjectTemplate,
		BodyTemplate:    req.BodyTemplate,
		PersistHistory:  req.PersistHistory,
		Endpoint: domain.Endpoint{
			ID:   endpointID,
			Name: req.EndpointName,
		},
	}
	return in, nil
}
