package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pferrors "github.com/matzehuels/pawfetch/pkg/errors"
	"github.com/matzehuels/pawfetch/pkg/observability"
)

func TestNewClient(t *testing.T) {
	headers := map[string]string{"User-Agent": "pawfetch/test"}
	client := NewClient(nil, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.headers["User-Agent"] != "pawfetch/test" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(server.Client(), nil)

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientSendsDefaultHeaders(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), map[string]string{"User-Agent": UserAgent("v1.2.3")})

	var resp map[string]any
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	want := "pawfetch/v1.2.3 (https://github.com/matzehuels/pawfetch)"
	if got != want {
		t.Errorf("User-Agent = %q, want %q", got, want)
	}
}

func TestClientGetMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), nil)

	var resp map[string]any
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Get() error = %v, want ErrMalformed", err)
	}
}

func TestClientGet404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.Client(), nil)

	var resp map[string]any
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClientGet500IsNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.Client(), nil)

	var resp map[string]any
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1", calls)
	}
}

func TestClientGetConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(nil, nil)

	var resp map[string]any
	err := client.Get(context.Background(), url, &resp)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
}

func TestClientOpenStreamsBody(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0, 'J', 'F', 'I', 'F'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(payload)
	}))
	defer server.Close()

	client := NewClient(server.Client(), nil)

	body, err := client.Open(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer body.Close()

	got, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Open() body = %v, want %v", got, payload)
	}
}

func TestClientReportsHTTPHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), nil)
	var resp map[string]any
	if err := client.Get(context.Background(), server.URL+"/api/breeds/image/random", &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	if hooks.requests != 1 || hooks.responses != 1 {
		t.Errorf("hooks requests=%d responses=%d, want 1/1", hooks.requests, hooks.responses)
	}
	if hooks.lastPath != "/api/breeds/image/random" {
		t.Errorf("hooks path = %q", hooks.lastPath)
	}
	if hooks.lastStatus != http.StatusOK {
		t.Errorf("hooks status = %d, want 200", hooks.lastStatus)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code    int
		wantErr error
	}{
		{http.StatusOK, nil},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrNetwork},
		{http.StatusTooManyRequests, ErrNetwork},
		{http.StatusBadGateway, ErrNetwork},
		{http.StatusNoContent, ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := checkStatus(tt.code)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("checkStatus(%d) = %v, want nil", tt.code, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("checkStatus(%d) = %v, want %v", tt.code, err, tt.wantErr)
			}
		})
	}
}

func TestNewHTTPClient(t *testing.T) {
	if c := NewHTTPClient(0); c.Timeout != 0 {
		t.Errorf("NewHTTPClient(0).Timeout = %v, want 0", c.Timeout)
	}
	if c := NewHTTPClient(5 * time.Second); c.Timeout != 5*time.Second {
		t.Errorf("NewHTTPClient(5s).Timeout = %v, want 5s", c.Timeout)
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want pferrors.Code
	}{
		{fmt.Errorf("%w: no results", ErrMalformed), pferrors.ErrCodeMalformedResponse},
		{ErrNotFound, pferrors.ErrCodeNotFound},
		{fmt.Errorf("%w: status 502", ErrNetwork), pferrors.ErrCodeNetwork},
		{errors.New("boom"), pferrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		if got := Code(tt.err); got != tt.want {
			t.Errorf("Code(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

type recordingHooks struct {
	requests, responses, errors int
	lastPath                    string
	lastStatus                  int
}

func (h *recordingHooks) OnRequest(_ context.Context, _, _, path string) {
	h.requests++
	h.lastPath = path
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.responses++
	h.lastStatus = status
}

func (h *recordingHooks) OnError(context.Context, string, string, string, error) {
	h.errors++
}
