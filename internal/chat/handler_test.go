package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubChatter struct {
	resp     string
	err      error
	gotMsg   string
	gotExtra any
}

func (s *stubChatter) Chat(_ context.Context, message string, extra any) (string, error) {
	s.gotMsg = message
	s.gotExtra = extra
	return s.resp, s.err
}

func newApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Post("/api/chat", h.Post)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func TestPostSuccess(t *testing.T) {
	stub := &stubChatter{resp: "buy low, sell high"}
	app := newApp(NewHandler(stub, zap.NewNop()))

	code, body := postJSON(t, app, "/api/chat", `{"message":"any tips?","context":{"page":"portfolio"}}`)
	require.Equal(t, fiber.StatusOK, code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "buy low, sell high", out["response"])
	assert.Equal(t, "any tips?", stub.gotMsg)
	assert.NotNil(t, stub.gotExtra)
}

func TestPostMissingMessage(t *testing.T) {
	stub := &stubChatter{}
	app := newApp(NewHandler(stub, zap.NewNop()))

	for _, body := range []string{`{}`, `{"message":""}`, `{"message":"   "}`} {
		code, _ := postJSON(t, app, "/api/chat", body)
		assert.Equal(t, fiber.StatusBadRequest, code, "body %q", body)
	}
	assert.Empty(t, stub.gotMsg)
}

func TestPostInvalidJSON(t *testing.T) {
	app := newApp(NewHandler(&stubChatter{}, zap.NewNop()))
	code, _ := postJSON(t, app, "/api/chat", `{"message":`)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestPostDelegateFailure(t *testing.T) {
	app := newApp(NewHandler(&stubChatter{err: errors.New("model down")}, zap.NewNop()))
	code, _ := postJSON(t, app, "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, fiber.StatusInternalServerError, code)
}
