package mailerrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"litera/util/httpx"
)

const sendgridEndpoint = "https://api.sendgrid.com/v3/mail/send"

type sendgridRepo struct {
	apiKey   string
	from     address
	endpoint string
	client   *http.Client
}

// NewSendGrid sends mail through the SendGrid v3 API.
func NewSendGrid(apiKey, fromEmail, fromName string) Repo {
	return &sendgridRepo{
		apiKey:   apiKey,
		from:     address{Email: fromEmail, Name: fromName},
		endpoint: sendgridEndpoint,
		client:   httpx.Client(),
	}
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type personalization struct {
	To []address `json:"to"`
}

type payload struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

func (r *sendgridRepo) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("mailer: empty recipient")
	}
	body := payload{
		Personalizations: []personalization{{To: []address{{Email: msg.To, Name: msg.ToName}}}},
		From:             r.from,
		Subject:          msg.Subject,
		Content:          []content{{Type: "text/plain", Value: msg.Text}},
	}
	if msg.HTML != "" {
		body.Content = append(body.Content, content{Type: "text/html", Value: msg.HTML})
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sendgrid send failed: %s: %s", resp.Status, bytes.TrimSpace(detail))
	}
	return nil
}

type logRepo struct{ log *slog.Logger }

// NewLog only logs outgoing mail. Used when no SendGrid key is configured.
func NewLog(log *slog.Logger) Repo { return &logRepo{log: log} }

func (r *logRepo) Send(ctx context.Context, msg Message) error {
	r.log.InfoContext(ctx, "mail not sent (no provider configured)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
