package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Request is one call captured by ApiMock.
type Request struct {
	Headers map[string]string
	Body    map[string]any
}

type stubbedResponse struct {
	status int
	body   any
}

// ApiMock stands in for a third-party HTTP API, such as the email provider.
// Responses are stubbed per method and path; every request is recorded.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	responses map[string]stubbedResponse
	requests  map[string][]Request
}

// NewApiServer creates an ApiMock that answers 200 with an empty object until stubbed.
func NewApiServer() *ApiMock {
	return &ApiMock{
		responses: map[string]stubbedResponse{},
		requests:  map[string][]Request{},
	}
}

// Start begins listening on a random local port.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

// Close stops the server.
func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

// GetUrl returns the base URL of the running server.
func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		headers[name] = values[0]
	}

	a.mu.Lock()
	a.requests[key] = append(a.requests[key], Request{Headers: headers, Body: body})
	stub, ok := a.responses[key]
	a.mu.Unlock()

	if !ok {
		stub = stubbedResponse{status: http.StatusOK, body: map[string]any{}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(stub.status)
	_ = json.NewEncoder(w).Encode(stub.body)
}

// SetResponse stubs the reply for method and path.
func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = stubbedResponse{status: status, body: body}
}

// Requests returns the calls received for method and path, oldest first.
func (a *ApiMock) Requests(method, path string) []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Request, len(a.requests[method+path]))
	copy(out, a.requests[method+path])
	return out
}

// Reset forgets stubs and recorded requests.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses = map[string]stubbedResponse{}
	a.requests = map[string][]Request{}
}
