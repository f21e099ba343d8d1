package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRequest_PostJSONAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/echo" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content-type = %q", got)
		}
		if got := r.Header.Get("X-Client"); got != "cap-alpha" {
			t.Errorf("default header missing: %q", got)
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer srv.Close()

	c, err := NewInstrumentedClient(
		WithProviderName("test"),
		WithBaseURL(srv.URL+"/"),
		WithRequestTimeout(time.Second),
		WithHeaders(map[string]string{"X-Client": "cap-alpha"}),
	)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		Echo string `json:"echo"`
	}
	resp, err := c.NewRequestWithOptions(WithLabels(NewLabel("endpoint", "echo"))).
		SetBody(map[string]string{"msg": "hi"}).
		SetResult(&out).
		Post(context.Background(), "/api/echo")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if resp.StatusCode != http.StatusOK || out.Echo != "hi" {
		t.Errorf("status=%d echo=%q", resp.StatusCode, out.Echo)
	}
}

func TestRequest_QueryParamsEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("position"); got != "WR TE" {
			t.Errorf("position = %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewInstrumentedClient(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.NewRequest().SetQueryParam("position", "WR TE").Get(context.Background(), "/x"); err != nil {
		t.Fatal(err)
	}
}

func TestRequest_ErrorHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail":"down"}`))
	}))
	defer srv.Close()

	c, err := NewInstrumentedClient(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}

	sentinel := errors.New("upstream failed")
	var result map[string]any
	resp, err := c.NewRequestWithOptions(WithResponseErrorHandler(func(status int, body []byte) error {
		if status >= 500 {
			return sentinel
		}
		return nil
	})).SetResult(&result).Get(context.Background(), "/")

	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v", err)
	}
	if resp == nil || string(resp.Body()) != `{"detail":"down"}` {
		t.Errorf("expected body to be preserved")
	}
	if result != nil {
		t.Errorf("result should not be decoded on error")
	}
}

func TestRequest_TransportError(t *testing.T) {
	c, err := NewInstrumentedClient(WithBaseURL("http://127.0.0.1:1"), WithRequestTimeout(200*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.NewRequest().Get(context.Background(), "/"); err == nil {
		t.Fatal("expected connection error")
	}
}
