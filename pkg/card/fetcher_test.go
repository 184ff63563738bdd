package card

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	pferrors "github.com/matzehuels/pawfetch/pkg/errors"
	"github.com/matzehuels/pawfetch/pkg/integrations/dogceo"
	"github.com/matzehuels/pawfetch/pkg/integrations/randomuser"
	"github.com/matzehuels/pawfetch/pkg/observability"
)

type stubImages struct {
	url   string
	err   error
	calls int
}

func (s *stubImages) RandomImage(context.Context) (string, error) {
	s.calls++
	return s.url, s.err
}

type stubNames struct {
	name  string
	err   error
	calls int
}

func (s *stubNames) RandomFirstName(context.Context) (string, error) {
	s.calls++
	return s.name, s.err
}

func TestFetchSuccess(t *testing.T) {
	images := &stubImages{url: "https://images.dog.ceo/breeds/retriever-golden/n1.jpg"}
	names := &stubNames{name: "Mia"}
	f := NewFetcher(images, names, nil)

	res := f.Fetch(context.Background(), 4)

	if res.Err != nil {
		t.Fatalf("Fetch() error: %v", res.Err)
	}
	if res.Seq != 4 {
		t.Errorf("Seq = %d, want 4", res.Seq)
	}
	if res.Breed != "Retriever Golden" || res.Name != "Mia" || res.Image != images.url {
		t.Errorf("Fetch() = %+v", res)
	}
}

func TestFetchImageFailureSkipsName(t *testing.T) {
	images := &stubImages{err: errors.New("dial tcp: connection refused")}
	names := &stubNames{name: "Mia"}
	f := NewFetcher(images, names, nil)

	res := f.Fetch(context.Background(), 1)

	if !pferrors.Is(res.Err, pferrors.ErrCodeFetchCycleFailed) {
		t.Errorf("Err = %v, want FETCH_CYCLE_FAILED", res.Err)
	}
	if names.calls != 0 {
		t.Errorf("name service called %d times after image failure, want 0", names.calls)
	}
	if res.Image != "" || res.Breed != "" {
		t.Errorf("failed image step should leave image empty: %+v", res)
	}
}

func TestFetchBadBreedURLIsFailure(t *testing.T) {
	images := &stubImages{url: "https://example.com/random.jpg"}
	names := &stubNames{name: "Mia"}
	f := NewFetcher(images, names, nil)

	res := f.Fetch(context.Background(), 1)

	if res.Err == nil {
		t.Fatal("expected error for URL without breed segment")
	}
	if !pferrors.Is(res.Err, pferrors.ErrCodeMalformedResponse) {
		t.Errorf("Err = %v, want MALFORMED_RESPONSE underneath", res.Err)
	}
	if res.Image != "" {
		t.Errorf("Image = %q, want empty", res.Image)
	}
	if names.calls != 0 {
		t.Error("name request should not run after the image step failed")
	}
}

func TestFetchNameFailureKeepsImage(t *testing.T) {
	images := &stubImages{url: "https://images.dog.ceo/breeds/pug/a.jpg"}
	names := &stubNames{err: errors.New("502")}
	f := NewFetcher(images, names, nil)

	res := f.Fetch(context.Background(), 2)

	if !pferrors.Is(res.Err, pferrors.ErrCodeFetchCycleFailed) {
		t.Errorf("Err = %v, want FETCH_CYCLE_FAILED", res.Err)
	}
	if res.Image != images.url || res.Breed != "Pug" {
		t.Errorf("image step result lost: %+v", res)
	}
}

func TestFetchLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	f := NewFetcher(&stubImages{err: errors.New("no route to host")}, &stubNames{}, logger)

	f.Fetch(context.Background(), 9)

	out := buf.String()
	if !strings.Contains(out, "fetch cycle failed") || !strings.Contains(out, "no route to host") {
		t.Errorf("log output missing failure detail: %q", out)
	}
}

func TestFetchReportsCycleHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	hooks := &cycleRecorder{}
	observability.SetCycleHooks(hooks)

	f := NewFetcher(&stubImages{err: errors.New("down")}, &stubNames{}, nil)
	f.Fetch(context.Background(), 3)

	if hooks.started != 3 || hooks.completed != 3 {
		t.Errorf("hooks started=%d completed=%d, want 3/3", hooks.started, hooks.completed)
	}
	if hooks.err == nil {
		t.Error("OnCycleComplete should receive the cycle error")
	}
}

// The scenarios below run the whole cycle against httptest services.

func newServices(t *testing.T, imageBody, nameBody string) (*dogceo.Client, *randomuser.Client) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/breeds/image/random", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(imageBody))
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(nameBody))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return dogceo.NewClient(server.URL+"/api/breeds/image/random", server.Client(), ""),
		randomuser.NewClient(server.URL+"/api/?inc=name", server.Client(), "")
}

func TestCycleScenarioMia(t *testing.T) {
	images, names := newServices(t,
		`{"message":"https://images.dog.ceo/breeds/retriever-golden/n1.jpg","status":"success"}`,
		`{"results":[{"name":{"first":"Mia"}}]}`)
	f := NewFetcher(images, names, nil)

	var s State
	seq := s.Begin()
	if !s.Loading {
		t.Fatal("Loading should be true immediately after the cycle starts")
	}
	s.Finish(f.Fetch(context.Background(), seq))

	if s.Loading {
		t.Error("Loading should be false after the cycle ends")
	}
	if s.Name != "Mia" || s.DownloadFilename() != "Mia.jpg" {
		t.Errorf("Name=%q filename=%q", s.Name, s.DownloadFilename())
	}
	if s.Breed != "Retriever Golden" {
		t.Errorf("Breed = %q, want Retriever Golden", s.Breed)
	}
}

func TestCycleScenarioMalformed(t *testing.T) {
	tests := []struct {
		name      string
		imageBody string
		nameBody  string
	}{
		{"image not json", `nope`, `{"results":[{"name":{"first":"Mia"}}]}`},
		{"image missing message", `{"status":"success"}`, `{"results":[{"name":{"first":"Mia"}}]}`},
		{"name not json", `{"message":"https://images.dog.ceo/breeds/pug/a.jpg","status":"success"}`, `nope`},
		{"name missing results", `{"message":"https://images.dog.ceo/breeds/pug/a.jpg","status":"success"}`, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images, names := newServices(t, tt.imageBody, tt.nameBody)
			f := NewFetcher(images, names, nil)

			var s State
			s.Finish(f.Fetch(context.Background(), s.Begin()))

			if s.Name != "Buddy" {
				t.Errorf("Name = %q, want Buddy", s.Name)
			}
			if s.Loading {
				t.Error("Loading should end false")
			}
		})
	}
}

func TestCycleScenarioNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	f := NewFetcher(
		dogceo.NewClient(url+"/api/breeds/image/random", nil, ""),
		randomuser.NewClient(url+"/api/", nil, ""),
		nil,
	)

	var s State
	s.Finish(f.Fetch(context.Background(), s.Begin()))

	if s.Name != "Buddy" || s.Loading || s.Image != "" || s.Breed != "" {
		t.Errorf("state after network failure = %+v", s)
	}

	res := f.Fetch(context.Background(), 2)
	if !pferrors.Is(res.Err, pferrors.ErrCodeFetchCycleFailed) || !pferrors.Is(res.Err, pferrors.ErrCodeNetwork) {
		t.Errorf("Err = %v, want FETCH_CYCLE_FAILED over NETWORK_ERROR", res.Err)
	}
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(block)

	f := NewFetcher(
		dogceo.NewClient(server.URL, server.Client(), ""),
		randomuser.NewClient(server.URL, server.Client(), ""),
		nil,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res := f.Fetch(ctx, 1)
	if res.Err == nil {
		t.Fatal("expected error when context ends before the service answers")
	}
}

type cycleRecorder struct {
	started, completed uint64
	err                error
}

func (r *cycleRecorder) OnCycleStart(_ context.Context, seq uint64) { r.started = seq }
func (r *cycleRecorder) OnCycleComplete(_ context.Context, seq uint64, _ time.Duration, err error) {
	r.completed = seq
	r.err = err
}
func (r *cycleRecorder) OnCycleDiscarded(context.Context, uint64, uint64) {}
