package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func streamingServer(t *testing.T, records []string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		for _, record := range records {
			fmt.Fprintln(writer, record)
			writer.(http.Flusher).Flush()
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func collectResponses(t *testing.T, client *Client, request GenerateRequest) ([]string, error) {
	t.Helper()
	var responses []string
	generateError := client.Generate(context.Background(), request, func(chunk GenerateChunk) error {
		responses = append(responses, chunk.Response)
		return nil
	})
	return responses, generateError
}

func TestGeneratePostsEnvelope(t *testing.T) {
	t.Parallel()

	var received map[string]any
	var receivedPath, receivedMethod, receivedContentType string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		receivedPath = request.URL.Path
		receivedMethod = request.Method
		receivedContentType = request.Header.Get("Content-Type")
		body, _ := io.ReadAll(request.Body)
		_ = json.Unmarshal(body, &received)
		fmt.Fprintln(writer, `{"response":"ok","done":true}`)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL+"/", nil)
	responses, generateError := collectResponses(t, client, GenerateRequest{Model: "llama3", System: "be brief", Prompt: "hi"})
	require.NoError(t, generateError)
	require.Equal(t, []string{"ok"}, responses)
	require.Equal(t, "/api/generate", receivedPath)
	require.Equal(t, http.MethodPost, receivedMethod)
	require.Equal(t, "application/json", receivedContentType)
	require.Equal(t, map[string]any{"model": "llama3", "system": "be brief", "prompt": "hi"}, received)
}

func TestGenerateStreamsChunksInOrder(t *testing.T) {
	t.Parallel()

	server := streamingServer(t, []string{
		`{"model":"llama3","response":"Hel","done":false}`,
		`{"model":"llama3","response":"lo","done":false}`,
		`{"model":"llama3","response":"!","done":true,"eval_count":3}`,
	})

	responses, generateError := collectResponses(t, NewClient(server.URL, nil), GenerateRequest{Model: "llama3", Prompt: "hi"})
	require.NoError(t, generateError)
	require.Equal(t, []string{"Hel", "lo", "!"}, responses)
}

func TestGenerateUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		fmt.Fprint(writer, "model not found")
	}))
	t.Cleanup(server.Close)

	_, generateError := collectResponses(t, NewClient(server.URL, nil), GenerateRequest{Model: "missing", Prompt: "hi"})
	var upstreamError *UpstreamError
	require.ErrorAs(t, generateError, &upstreamError)
	require.Equal(t, http.StatusNotFound, upstreamError.StatusCode)
	require.Equal(t, "model not found", upstreamError.Body)
	require.Contains(t, generateError.Error(), "404")
}

func TestGenerateServerUnreachable(t *testing.T) {
	t.Parallel()

	listener, listenError := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, listenError)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	_, generateError := collectResponses(t, NewClient("http://"+address, nil), GenerateRequest{Model: "llama3", Prompt: "hi"})
	require.ErrorIs(t, generateError, ErrServerUnreachable)
	require.Contains(t, generateError.Error(), address)
}

func TestGenerateMalformedChunkKeepsEarlierTokens(t *testing.T) {
	t.Parallel()

	server := streamingServer(t, []string{`{"response":"partial"}`, `{"response":`})
	responses, generateError := collectResponses(t, NewClient(server.URL, nil), GenerateRequest{Model: "llama3", Prompt: "hi"})
	require.Error(t, generateError)
	require.Contains(t, generateError.Error(), "decode response chunk 1")
	require.Equal(t, []string{"partial"}, responses)
}

func TestGenerateHandlerErrorStopsStream(t *testing.T) {
	t.Parallel()

	server := streamingServer(t, []string{`{"response":"a"}`, `{"response":"b"}`})
	stopError := errors.New("stop")
	calls := 0
	generateError := NewClient(server.URL, nil).Generate(context.Background(), GenerateRequest{}, func(GenerateChunk) error {
		calls++
		return stopError
	})
	require.ErrorIs(t, generateError, stopError)
	require.Equal(t, 1, calls)
}

func TestGenerateTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		select {
		case <-release:
		case <-request.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	generateError := NewClient(server.URL, nil).Generate(ctx, GenerateRequest{Model: "llama3", Prompt: "hi"}, func(GenerateChunk) error { return nil })
	require.ErrorIs(t, generateError, ErrRequestTimeout)
}
