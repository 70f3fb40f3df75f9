package mailer

import (
	"context"
	"testing"

	"byblos-atelier/config"
	"byblos-atelier/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRenderer_PasswordReset(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	msg, err := r.Render(&model.MailJob{
		Template: model.MailTemplatePasswordReset,
		To:       "nadia@example.com",
		Data: map[string]string{
			"name":       "Nadia <script>",
			"reset_url":  "https://byblos.test/reset-password/abc",
			"expires_in": "1 hour",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "nadia@example.com", msg.To)
	assert.Equal(t, subjects[model.MailTemplatePasswordReset], msg.Subject)
	assert.Contains(t, msg.HTML, "https://byblos.test/reset-password/abc")
	assert.Contains(t, msg.HTML, "Nadia &lt;script&gt;")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, err = r.Render(&model.MailJob{Template: "invoice"})

	assert.Error(t, err)
}

func TestNew_WithoutHostLogsOnly(t *testing.T) {
	m := New(config.MailConfig{}, zap.NewNop())

	_, ok := m.(*LogMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), &Message{To: "a@b.test"}))
}

func TestNew_WithHostUsesSMTP(t *testing.T) {
	m := New(config.MailConfig{Host: "smtp.example.com", Port: 587}, zap.NewNop())

	_, ok := m.(*SMTPMailer)
	assert.True(t, ok)
}
