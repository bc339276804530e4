package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"intellidoc/internal/models"
)

func newTestServer(t *testing.T, answerer Answerer) *httptest.Server {
	t.Helper()
	adapter := NewAdapter(answerer, "File main.go: entry point")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewServer(adapter, nil, "127.0.0.1:0", logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postChat(t *testing.T, srv *httptest.Server, body string) (int, models.ChatResponse) {
	t.Helper()
	rsp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer rsp.Body.Close()

	var out models.ChatResponse
	require.NoError(t, json.NewDecoder(rsp.Body).Decode(&out))
	return rsp.StatusCode, out
}

func TestServeChatPage(t *testing.T) {
	srv := newTestServer(t, &fakeAnswerer{})

	rsp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer rsp.Body.Close()

	require.Equal(t, http.StatusOK, rsp.StatusCode)
	require.Contains(t, rsp.Header.Get("Content-Type"), "text/html")
	body, err := io.ReadAll(rsp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "/api/chat")
}

func TestChatEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeAnswerer{
		AnswerFunc: func(ctx context.Context, contextText, question string) (string, error) {
			return "main.go is the entry point", nil
		},
	})

	status, out := postChat(t, srv, `{"question":"what does main.go do?"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "main.go is the entry point", out.Answer)
	require.Empty(t, out.Error)
}

func TestChatEndpointBadBody(t *testing.T) {
	srv := newTestServer(t, &fakeAnswerer{})

	status, out := postChat(t, srv, `{"question": 42`)
	require.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, out.Error)
}

func TestChatEndpointAnswerFailure(t *testing.T) {
	srv := newTestServer(t, &fakeAnswerer{
		AnswerFunc: func(ctx context.Context, contextText, question string) (string, error) {
			return "", errors.New("endpoint unreachable")
		},
	})

	// The page stays usable when a single answer fails.
	status, out := postChat(t, srv, `{"question":"anything"}`)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, out.Answer)
	require.Contains(t, out.Error, "answer unavailable")
}

func TestNewServerSetsReleaseMode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	NewServer(NewAdapter(&fakeAnswerer{}, ""), nil, "127.0.0.1:0", logger)
	require.Equal(t, gin.ReleaseMode, gin.Mode())
}

func TestRunsEndpointWithoutHistory(t *testing.T) {
	srv := newTestServer(t, &fakeAnswerer{})

	rsp, err := http.Get(srv.URL + "/api/runs")
	require.NoError(t, err)
	defer rsp.Body.Close()

	require.Equal(t, http.StatusOK, rsp.StatusCode)
	var runs []models.Run
	require.NoError(t, json.NewDecoder(rsp.Body).Decode(&runs))
	require.Empty(t, runs)
}
