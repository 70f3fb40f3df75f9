package model

import "github.com/google/uuid"

type MailTemplate string

const (
	MailTemplatePasswordReset MailTemplate = "password_reset"
	MailTemplateWelcome       MailTemplate = "welcome"
)

// MailJob is one message waiting for delivery. Data feeds the template.
type MailJob struct {
	ID       string            `json:"id"`
	Template MailTemplate      `json:"template"`
	To       string            `json:"to"`
	Data     map[string]string `json:"data"`
}

func NewMailJob(template MailTemplate, to string, data map[string]string) *MailJob {
	return &MailJob{ID: uuid.NewString(), Template: template, To: to, Data: data}
}
