package hospital

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	DefaultReadTimeout = 10 * time.Second
	DefaultPayTimeout  = 15 * time.Second

	// maxBodySize caps how much of an upstream body is read
	maxBodySize = 1 << 20

	// AttemptIDHeader carries the local payment attempt id. It is not named
	// Idempotency-Key because net/http replays requests carrying that header.
	AttemptIDHeader = "X-Booking-Attempt-Id"
)

// PaymentRequest is the booking payload forwarded to a hospital's pay
// endpoint.
type PaymentRequest struct {
	Name          string           `json:"name"`
	Age           int              `json:"age"`
	Gender        string           `json:"gender"`
	Reason        string           `json:"reason"`
	Location      string           `json:"location"`
	PaymentMethod string           `json:"paymentMethod"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      string           `json:"currency,omitempty"`
}

// PaymentResult is the data a hospital backend returns for a successful
// charge.
type PaymentResult struct {
	TransactionID     string          `json:"transactionId"`
	PatientID         string          `json:"patientId"`
	DoctorName        string          `json:"doctorName"`
	Specialization    string          `json:"specialization"`
	QueuePosition     int             `json:"queuePosition"`
	EstimatedWaitTime WaitTime        `json:"estimatedWaitTime"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
}

// WaitTime accepts either a display string ("15 minutes") or a number of
// minutes.
type WaitTime string

func (w *WaitTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*w = WaitTime(s)
		return nil
	}
	var minutes json.Number
	if err := json.Unmarshal(data, &minutes); err != nil {
		return fmt.Errorf("estimatedWaitTime: %w", err)
	}
	*w = WaitTime(minutes.String() + " minutes")
	return nil
}

// ProbeResult describes whether a hospital backend answered a doctors read.
type ProbeResult struct {
	HospitalID string `json:"hospitalId"`
	URL        string `json:"hospitalUrl"`
	Status     int    `json:"status,omitempty"`
	OK         bool   `json:"ok"`
	Accessible bool   `json:"accessible"`
	Error      string `json:"error,omitempty"`
}

type Options struct {
	ReadTimeout time.Duration
	PayTimeout  time.Duration
	HTTPClient  *http.Client
}

// Client forwards calls to hospital backends. It never retries: a pay call
// is attempted at most once per invocation.
type Client struct {
	directory   *Directory
	httpClient  *http.Client
	readTimeout time.Duration
	payTimeout  time.Duration
	log         *logrus.Logger
}

func NewClient(directory *Directory, opts Options, log *logrus.Logger) *Client {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.PayTimeout <= 0 {
		opts.PayTimeout = DefaultPayTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}

	return &Client{
		directory:   directory,
		httpClient:  opts.HTTPClient,
		readTimeout: opts.ReadTimeout,
		payTimeout:  opts.PayTimeout,
		log:         log,
	}
}

// Resolve returns the backend base URL for hospitalID.
func (c *Client) Resolve(hospitalID string) (string, error) {
	return c.directory.Resolve(hospitalID)
}

// HospitalIDs returns every hospital id currently in the directory.
func (c *Client) HospitalIDs() []string {
	return c.directory.IDs()
}

// ListDoctors returns the hospital's doctors payload verbatim.
func (c *Client) ListDoctors(ctx context.Context, hospitalID string) (json.RawMessage, error) {
	baseURL, err := c.directory.Resolve(hospitalID)
	if err != nil {
		return nil, err
	}

	return c.getJSON(ctx, hospitalID, baseURL+"/api/doctors")
}

// QueueStatus returns the patient's queue position payload verbatim.
func (c *Client) QueueStatus(ctx context.Context, hospitalID, doctorID, patientName string) (json.RawMessage, error) {
	baseURL, err := c.directory.Resolve(hospitalID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(patientName) == "" {
		return nil, ErrPatientNameRequired
	}

	endpoint := fmt.Sprintf("%s/api/doctors/%s/status?name=%s",
		baseURL, url.PathEscape(doctorID), url.QueryEscape(patientName))
	return c.getJSON(ctx, hospitalID, endpoint)
}

// Pay asks the hospital backend to charge for a visit. The attempt id is
// forwarded so backends can correlate or deduplicate; the call is never
// retried here.
func (c *Client) Pay(ctx context.Context, hospitalID, doctorID string, req *PaymentRequest, attemptID string) (*PaymentResult, error) {
	baseURL, err := c.directory.Resolve(hospitalID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode payment request: %w", err)
	}

	headers := http.Header{}
	if attemptID != "" {
		headers.Set(AttemptIDHeader, attemptID)
	}

	endpoint := fmt.Sprintf("%s/api/doctors/%s/pay", baseURL, url.PathEscape(doctorID))
	status, body, err := c.do(ctx, http.MethodPost, endpoint, payload, headers, c.payTimeout, hospitalID)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, newRejectedError(hospitalID, status, body)
	}

	// Only an explicit success:false is a refusal; a missing flag leaves the
	// charge unknown.
	var envelope struct {
		Success *bool          `json:"success"`
		Message string         `json:"message"`
		Data    *PaymentResult `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: hospital %s pay: %v", ErrMalformedResponse, hospitalID, err)
	}
	if envelope.Success == nil {
		return nil, fmt.Errorf("%w: hospital %s pay: success flag missing", ErrMalformedResponse, hospitalID)
	}
	if !*envelope.Success {
		rejected := newRejectedError(hospitalID, status, body)
		if rejected.Message == "" {
			rejected.Message = envelope.Message
		}
		return nil, rejected
	}
	if envelope.Data == nil || envelope.Data.TransactionID == "" {
		return nil, fmt.Errorf("%w: hospital %s pay: success without transaction id", ErrMalformedResponse, hospitalID)
	}

	return envelope.Data, nil
}

// Probe checks whether a hospital backend answers its doctors endpoint.
// It never returns an error; failures are described in the result.
func (c *Client) Probe(ctx context.Context, hospitalID string) ProbeResult {
	result := ProbeResult{HospitalID: hospitalID}

	baseURL, err := c.directory.Resolve(hospitalID)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.URL = baseURL

	status, _, err := c.do(ctx, http.MethodGet, baseURL+"/api/doctors", nil, nil, c.readTimeout, hospitalID)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Status = status
	result.OK = status >= 200 && status <= 299
	result.Accessible = result.OK
	if !result.OK {
		result.Error = "unexpected status " + strconv.Itoa(status)
	}
	return result
}

func (c *Client) getJSON(ctx context.Context, hospitalID, endpoint string) (json.RawMessage, error) {
	status, body, err := c.do(ctx, http.MethodGet, endpoint, nil, nil, c.readTimeout, hospitalID)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, newRejectedError(hospitalID, status, body)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: hospital %s: body is not JSON", ErrMalformedResponse, hospitalID)
	}
	return json.RawMessage(body), nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, headers http.Header, timeout time.Duration, hospitalID string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request for hospital %s: %w", hospitalID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnf("Hospital %s %s %s failed after %s: %+v", hospitalID, method, req.URL.Path, time.Since(start), err)
		return 0, nil, classify(ctx, hospitalID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.log.Warnf("Hospital %s %s %s body read failed: %+v", hospitalID, method, req.URL.Path, err)
		return 0, nil, classify(ctx, hospitalID, err)
	}

	c.log.Debugf("Hospital %s %s %s -> %d in %s", hospitalID, method, req.URL.Path, resp.StatusCode, time.Since(start))
	return resp.StatusCode, body, nil
}

func classify(ctx context.Context, hospitalID string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: hospital %s: %v", ErrUpstreamTimeout, hospitalID, err)
	}
	return fmt.Errorf("%w: hospital %s: %v", ErrUpstreamUnreachable, hospitalID, err)
}
