package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/config"
)

var testMailConfig = config.MailConfig{
	SendGridAPIKey: "SG.test",
	FromEmail:      "news@godpill.test",
	FromName:       "God Pill",
}

func newTestSendGrid(t *testing.T, handler http.HandlerFunc) *SendGrid {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	req := sendgrid.GetRequest(testMailConfig.SendGridAPIKey, "/v3/mail/send", srv.URL)
	req.Method = http.MethodPost
	return newSendGrid(&sendgrid.Client{Request: req}, testMailConfig, zap.NewNop())
}

func TestNew_WithoutKeyIsNoop(t *testing.T) {
	m := New(config.MailConfig{}, zap.NewNop())
	assert.IsType(t, Noop{}, m)
	assert.NoError(t, m.SendWelcome(context.Background(), "a@example.com", nil))
}

func TestSendGrid_SendWelcome(t *testing.T) {
	var got map[string]interface{}
	m := newTestSendGrid(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer SG.test", r.Header.Get("Authorization"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusAccepted)
	})

	name := "Reader"
	require.NoError(t, m.SendWelcome(context.Background(), "reader@example.com", &name))

	assert.Equal(t, welcomeSubject, got["subject"])
	from, ok := got["from"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "news@godpill.test", from["email"])
}

func TestSendGrid_RejectedByAPI(t *testing.T) {
	m := newTestSendGrid(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := m.SendWelcome(context.Background(), "reader@example.com", nil)
	assert.Error(t, err)
}

func TestSendGrid_EscapesNameInHTML(t *testing.T) {
	var got struct {
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	m := newTestSendGrid(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusAccepted)
	})

	name := `<a href="https://evil.example/login">Verify your account</a>`
	require.NoError(t, m.SendWelcome(context.Background(), "victim@example.com", &name))

	var htmlPart string
	for _, c := range got.Content {
		if c.Type == "text/html" {
			htmlPart = c.Value
		}
	}
	require.NotEmpty(t, htmlPart)
	assert.NotContains(t, htmlPart, "<a href")
	assert.Contains(t, htmlPart, "&lt;a href=&#34;https://evil.example/login&#34;&gt;")
}
