package optimizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"testing"
	"time"
)

type localServer struct {
	URL string
	srv *http.Server
	ln  net.Listener
}

func newLocalServer(t *testing.T, handler http.Handler) *localServer {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		if errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM) {
			t.Skipf("skipping test: cannot open local listener (%v)", err)
		}
		t.Fatalf("listen tcp4: %v", err)
	}
	srv := &http.Server{Handler: handler}
	s := &localServer{URL: "http://" + ln.Addr().String(), srv: srv, ln: ln}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(fmt.Sprintf("test server serve: %v", err))
		}
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return s
}

func TestOptimizeSuccess(t *testing.T) {
	var gotReq Request
	s := newLocalServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/optimize" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Response{
			TotalExpectedLifers:  3.5,
			NumCandidateHotspots: 12,
			NumPotentialLifers:   40,
			Hotspots: []Hotspot{
				{Rank: 1, Locality: "Marsh", Latitude: 44.1, Longitude: -73.2},
			},
		})
	}))

	c := NewClient(s.URL, 5*time.Second)
	county := "Chittenden"
	resp, err := c.Optimize(context.Background(), Request{
		LifeList:  []string{"Sora"},
		StartDate: "2026-05-01",
		EndDate:   "2026-05-10",
		K:         5,
		County:    &county,
	})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if resp.TotalExpectedLifers != 3.5 || len(resp.Hotspots) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if gotReq.County == nil || *gotReq.County != "Chittenden" {
		t.Fatalf("county not forwarded: %+v", gotReq.County)
	}
	if gotReq.K != 5 || gotReq.StartDate != "2026-05-01" {
		t.Fatalf("request fields not forwarded: %+v", gotReq)
	}
}

func TestOptimizeSurfacesDetailVerbatim(t *testing.T) {
	s := newLocalServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "end_date must not precede start_date"})
	}))

	c := NewClient(s.URL, 5*time.Second)
	_, err := c.Optimize(context.Background(), Request{})
	if err == nil {
		t.Fatalf("expected error")
	}
	var badReq *BadRequestError
	if !errors.As(err, &badReq) {
		t.Fatalf("expected BadRequestError, got %T: %v", err, err)
	}
	if err.Error() != "end_date must not precede start_date" {
		t.Fatalf("detail must be surfaced verbatim, got %q", err.Error())
	}
}

func TestOptimizeServerError(t *testing.T) {
	s := newLocalServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("not json"))
	}))

	c := NewClient(s.URL, 5*time.Second)
	_, err := c.Optimize(context.Background(), Request{})
	var srvErr *ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected ServerError, got %T: %v", err, err)
	}
	if srvErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", srvErr.StatusCode)
	}
}

func TestOptimizeUnreachable(t *testing.T) {
	// Grab a free port, then close it so nothing is listening.
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test: cannot open local listener (%v)", err)
	}
	url := "http://" + ln.Addr().String()
	_ = ln.Close()

	c := NewClient(url, 2*time.Second)
	_, err = c.Optimize(context.Background(), Request{})
	var unreach *UnreachableError
	if !errors.As(err, &unreach) {
		t.Fatalf("expected UnreachableError, got %T: %v", err, err)
	}
}

func TestCounties(t *testing.T) {
	s := newLocalServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/counties" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode([]string{"Addison", "Chittenden"})
	}))

	c := NewClient(s.URL, 5*time.Second)
	counties, err := c.Counties(context.Background())
	if err != nil {
		t.Fatalf("counties: %v", err)
	}
	if len(counties) != 2 || counties[0] != "Addison" {
		t.Fatalf("unexpected counties: %v", counties)
	}
}

func TestNewClientNormalizesBaseURL(t *testing.T) {
	c := NewClient("http://example.test/", time.Second)
	if c.BaseURL() != "http://example.test" {
		t.Fatalf("trailing slash must be trimmed, got %q", c.BaseURL())
	}
	if NewClient("", 0).BaseURL() != DefaultBaseURL {
		t.Fatalf("empty base URL must fall back to the default")
	}
}
