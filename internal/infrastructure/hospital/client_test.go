package hospital

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestClient(t *testing.T, baseURL string, opts Options) *Client {
	t.Helper()
	dir, err := NewDirectory(map[string]string{"hospa": baseURL})
	if err != nil {
		t.Fatalf("failed to build directory: %v", err)
	}
	return NewClient(dir, opts, testLogger())
}

func TestListDoctors_PassesBodyThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/doctors" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"d1","name":"Dr. Rao","fee":500}]`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{})
	body, err := client.ListDoctors(context.Background(), "hospa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `[{"_id":"d1","name":"Dr. Rao","fee":500}]` {
		t.Errorf("expected verbatim body, got %s", body)
	}
}

func TestListDoctors_UnknownHospital(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", Options{})

	_, err := client.ListDoctors(context.Background(), "unknown")
	if !errors.Is(err, ErrHospitalNotFound) {
		t.Errorf("expected ErrHospitalNotFound, got %v", err)
	}
}

func TestListDoctors_RejectedWithJSONDetails(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"maintenance"}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{})
	_, err := client.ListDoctors(context.Background(), "hospa")

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rejected.StatusCode)
	}
	if rejected.Message != "maintenance" {
		t.Errorf("expected upstream message, got %q", rejected.Message)
	}
	if _, ok := rejected.Details.(json.RawMessage); !ok {
		t.Errorf("expected JSON details, got %T", rejected.Details)
	}
}

func TestListDoctors_RejectedWithTextDetails(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{})
	_, err := client.ListDoctors(context.Background(), "hospa")

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if details, ok := rejected.Details.(string); !ok || details != "upstream exploded" {
		t.Errorf("expected raw text details, got %#v", rejected.Details)
	}
}

func TestListDoctors_Timeout(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{ReadTimeout: 50 * time.Millisecond})
	_, err := client.ListDoctors(context.Background(), "hospa")
	if !errors.Is(err, ErrUpstreamTimeout) {
		t.Errorf("expected ErrUpstreamTimeout, got %v", err)
	}
}

func TestListDoctors_Unreachable(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	baseURL := upstream.URL
	upstream.Close()

	client := newTestClient(t, baseURL, Options{})
	_, err := client.ListDoctors(context.Background(), "hospa")
	if !errors.Is(err, ErrUpstreamUnreachable) {
		t.Errorf("expected ErrUpstreamUnreachable, got %v", err)
	}
}

func TestQueueStatus_EncodesName(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/doctors/d1/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("name"); got != "Asha K & co" {
			t.Errorf("expected decoded name, got %q", got)
		}
		w.Write([]byte(`{"position":3}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{})
	body, err := client.QueueStatus(context.Background(), "hospa", "d1", "Asha K & co")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"position":3}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestQueueStatus_EmptyNameNotForwarded(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{})
	for _, name := range []string{"", "   ", "\t"} {
		if _, err := client.QueueStatus(context.Background(), "hospa", "d1", name); !errors.Is(err, ErrPatientNameRequired) {
			t.Errorf("name %q: expected ErrPatientNameRequired, got %v", name, err)
		}
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("expected no upstream call for empty name")
	}
}

func TestPay_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/doctors/d1/pay" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get(AttemptIDHeader) != "attempt-1" {
			t.Errorf("expected attempt id header, got %q", r.Header.Get(AttemptIDHeader))
		}
		var req PaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Name != "Asha" || req.Age != 30 || req.PaymentMethod != "mock" {
			t.Errorf("unexpected payload %+v", req)
		}
		w.Write([]byte(`{"success":true,"data":{"transactionId":"TXN-1","doctorName":"Dr. Rao","queuePosition":4,"estimatedWaitTime":45,"amount":500,"currency":"INR"}}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{})
	result, err := client.Pay(context.Background(), "hospa", "d1", &PaymentRequest{
		Name: "Asha", Age: 30, Gender: "female", Reason: "fever", Location: "Pune", PaymentMethod: "mock",
	}, "attempt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TransactionID != "TXN-1" {
		t.Errorf("expected TXN-1, got %q", result.TransactionID)
	}
	if result.QueuePosition != 4 {
		t.Errorf("expected queue position 4, got %d", result.QueuePosition)
	}
	if result.EstimatedWaitTime != "45 minutes" {
		t.Errorf("expected numeric wait time to be normalized, got %q", result.EstimatedWaitTime)
	}
	if result.Amount.String() != "500" {
		t.Errorf("expected amount 500, got %s", result.Amount)
	}
}

func TestPay_RejectedIsNotAmbiguous(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Doctor unavailable"}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{})
	_, err := client.Pay(context.Background(), "hospa", "d1", &PaymentRequest{Name: "Asha"}, "")

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.Message != "Doctor unavailable" {
		t.Errorf("expected upstream error message, got %q", rejected.Message)
	}
	if IsAmbiguous(err) {
		t.Error("expected rejected payment to be unambiguous")
	}
}

func TestPay_SuccessFalseIsRejected(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Insufficient funds"}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{})
	_, err := client.Pay(context.Background(), "hospa", "d1", &PaymentRequest{Name: "Asha"}, "")

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.StatusCode != http.StatusOK || rejected.Message != "Insufficient funds" {
		t.Errorf("unexpected rejection %+v", rejected)
	}
}

func TestPay_MissingTransactionIDIsAmbiguous(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"queuePosition":1}}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{})
	_, err := client.Pay(context.Background(), "hospa", "d1", &PaymentRequest{Name: "Asha"}, "")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if !IsAmbiguous(err) {
		t.Error("expected malformed success to be ambiguous")
	}
}

func TestPay_MissingSuccessFlagIsAmbiguous(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"transactionId":"TXN-9","queuePosition":2}}`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{})
	_, err := client.Pay(context.Background(), "hospa", "d1", &PaymentRequest{Name: "Asha"}, "")

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		t.Fatalf("expected missing success flag not to be a rejection, got %v", err)
	}
	if !errors.Is(err, ErrMalformedResponse) || !IsAmbiguous(err) {
		t.Errorf("expected ambiguous malformed response, got %v", err)
	}
}

func TestPay_TimeoutIsNotRetried(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{PayTimeout: 50 * time.Millisecond})
	_, err := client.Pay(context.Background(), "hospa", "d1", &PaymentRequest{Name: "Asha"}, "")
	if !errors.Is(err, ErrUpstreamTimeout) {
		t.Fatalf("expected ErrUpstreamTimeout, got %v", err)
	}
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		t.Error("expected timeout to be distinct from rejection")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected exactly one pay call, got %d", got)
	}
}

func TestProbe(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream.URL, Options{})
	result := client.Probe(context.Background(), "hospa")
	if !result.Accessible || result.Status != http.StatusOK {
		t.Errorf("expected accessible hospital, got %+v", result)
	}

	missing := client.Probe(context.Background(), "nope")
	if missing.Accessible || missing.Error == "" {
		t.Errorf("expected unknown hospital to be reported, got %+v", missing)
	}
}
