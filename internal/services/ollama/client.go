package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"syscall"
)

const (
	generatePath        = "/api/generate"
	jsonContentType     = "application/json"
	contentTypeHeader   = "Content-Type"
	encodeRequestFormat = "encode generate request: %w"
	buildRequestFormat  = "build generate request: %w"
	unreachableFormat   = "%w at %s"
	sendRequestFormat   = "send generate request to %s: %w"
	readErrorFormat     = "read error response: %w"
	decodeChunkFormat   = "decode response chunk %d: %w"
	timeoutFormat       = "%w: %w"
)

// Client posts generation requests to a single inference server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the server at baseURL. A nil httpClient uses a client without timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Endpoint returns the URL generation requests are posted to.
func (client *Client) Endpoint() string {
	return client.baseURL + generatePath
}

// Generate posts request and passes every decoded response record to onChunk until the server
// closes the stream. Cancelling ctx aborts the request.
func (client *Client) Generate(ctx context.Context, request GenerateRequest, onChunk ChunkHandler) error {
	body, encodeError := json.Marshal(request)
	if encodeError != nil {
		return fmt.Errorf(encodeRequestFormat, encodeError)
	}
	httpRequest, buildError := http.NewRequestWithContext(ctx, http.MethodPost, client.Endpoint(), bytes.NewReader(body))
	if buildError != nil {
		return fmt.Errorf(buildRequestFormat, buildError)
	}
	httpRequest.Header.Set(contentTypeHeader, jsonContentType)

	response, sendError := client.httpClient.Do(httpRequest)
	if sendError != nil {
		return client.classify(ctx, sendError)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		errorBody, readError := io.ReadAll(response.Body)
		if readError != nil {
			return fmt.Errorf(readErrorFormat, contextError(ctx, readError))
		}
		return &UpstreamError{
			StatusCode: response.StatusCode,
			Body:       strings.TrimRight(string(errorBody), "\r\n"),
		}
	}

	decoder := json.NewDecoder(response.Body)
	for chunkIndex := 0; ; chunkIndex++ {
		var chunk GenerateChunk
		if decodeError := decoder.Decode(&chunk); decodeError != nil {
			if errors.Is(decodeError, io.EOF) {
				return nil
			}
			return fmt.Errorf(decodeChunkFormat, chunkIndex, contextError(ctx, decodeError))
		}
		if handlerError := onChunk(chunk); handlerError != nil {
			return handlerError
		}
	}
}

func (client *Client) classify(ctx context.Context, transportError error) error {
	if errors.Is(transportError, syscall.ECONNREFUSED) {
		return fmt.Errorf(unreachableFormat, ErrServerUnreachable, client.baseURL)
	}
	if ctx.Err() != nil || errors.Is(transportError, context.DeadlineExceeded) {
		return contextError(ctx, transportError)
	}
	return fmt.Errorf(sendRequestFormat, client.baseURL, transportError)
}

// contextError prefers the reason the request context ended over the transport error it caused.
func contextError(ctx context.Context, cause error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(cause, context.DeadlineExceeded):
		return fmt.Errorf(timeoutFormat, ErrRequestTimeout, cause)
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return cause
	}
}
