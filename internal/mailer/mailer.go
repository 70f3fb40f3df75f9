package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"byblos-atelier/config"
	"byblos-atelier/internal/model"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFiles embed.FS

var subjects = map[model.MailTemplate]string{
	model.MailTemplatePasswordReset: "Reset your Byblos Atelier password",
	model.MailTemplateWelcome:       "Welcome to Byblos Atelier",
}

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// Renderer turns mail jobs into messages using the embedded templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Render(job *model.MailJob) (*Message, error) {
	subject, ok := subjects[job.Template]
	if !ok {
		return nil, fmt.Errorf("unknown mail template %q", job.Template)
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, string(job.Template)+".html", job.Data); err != nil {
		return nil, fmt.Errorf("render %s: %w", job.Template, err)
	}

	return &Message{To: job.To, Subject: subject, HTML: buf.String()}, nil
}

type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	out := mail.NewMsg()
	if err := out.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTML)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogMailer is used when no SMTP host is configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg *Message) error {
	m.log.Info("Mail not sent, SMTP disabled",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

func New(cfg config.MailConfig, log *zap.Logger) Mailer {
	if cfg.Host == "" {
		return NewLogMailer(log)
	}
	return NewSMTPMailer(cfg)
}
