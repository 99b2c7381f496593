// Package tasks holds the asynq task definitions and the worker that
// drains them. Email delivery goes through here so a slow SMTP server
// never blocks a request handler.
package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeEmailDelivery = "email:deliver"

	QueueDefault = "default"
	QueueEmails  = "emails"
)

type EmailDeliveryPayload struct {
	To             string `json:"to"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path,omitempty"`
}

// NewEmailDeliveryTask builds the task for one outbound email.
func NewEmailDeliveryTask(to, subject, body, attachmentPath string) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailDeliveryPayload{
		To:             to,
		Subject:        subject,
		Body:           body,
		AttachmentPath: attachmentPath,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal email payload: %w", err)
	}
	return asynq.NewTask(TypeEmailDelivery, payload, asynq.Queue(QueueEmails), asynq.MaxRetry(5)), nil
}
