package template

import (
	"bytes"
	htmltemplate "html/template"

	"notification-dispatch-service/internal/dispatch/core/domain"
	"notification-dispatch-service/internal/dispatch/core/ports"
)

// Renderer evaluates HTML templates against the event payload.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

var _ ports.RendererPort = (*Renderer)(nil)

func (r *Renderer) Render(event domain.Event, template string) (string, error) {
	t, err := htmltemplate.New("notification").Parse(template)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, event.Payload); err != nil {
		return "", err
	}

	return buf.String(), nil
}
