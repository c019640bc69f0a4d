package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
	"github.com/sabastianrafa/powergym-ag-system/internal/logging"
)

const (
	DefaultTimeout = 15 * time.Second

	headerRequestID  = "X-Request-ID"
	headerTotalCount = "X-Total-Count"
)

// HTTPClient talks to the gym API over HTTP/JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu      sync.RWMutex
	session Session
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UseSession binds the session supplying the bearer token and receiving
// expiry on 401. Calls made before binding go out unauthenticated.
func (c *HTTPClient) UseSession(s Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

func (c *HTTPClient) currentSession() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())
	return req, nil
}

func (c *HTTPClient) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, nil, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// roundTrip sends req and maps only transport failures.
func (c *HTTPClient) roundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	ctx := req.Context()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Warn(ctx, "api unreachable",
			"method", req.Method, "path", req.URL.Path,
			"request_id", req.Header.Get(headerRequestID), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "api request",
		"method", req.Method, "path", req.URL.Path,
		"request_id", req.Header.Get(headerRequestID),
		"status", resp.StatusCode, "elapsed", time.Since(start))
	return resp, nil
}

// do sends an authenticated request. A 401 expires the token that was sent
// and yields ErrSessionExpired; other non-2xx answers yield *RequestError.
// On success the caller owns resp.Body.
func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	sess := c.currentSession()
	var tok string
	if sess != nil {
		if tok = sess.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		if sess != nil {
			sess.Expire(req.Context(), tok)
		}
		return nil, ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer drain(resp)
		return nil, &RequestError{Status: resp.StatusCode, Detail: readDetail(resp.Body, genericRequestFailure)}
	}
	return resp, nil
}

func (c *HTTPClient) doJSON(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer drain(resp)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// readDetail extracts the server's "detail" message. The detail is either
// a string or a list of {"msg": ...} validation items.
func readDetail(r io.Reader, fallback string) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil || len(body.Detail) == 0 {
		return fallback
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
		return fallback
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return fallback
}

// Login exchanges credentials for a bearer token. Any non-2xx answer,
// 401 included, is an *AuthError and never expires the session.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AuthError{Message: readDetail(resp.Body, genericLoginFailure)}
	}

	var tr models.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil || tr.AccessToken == "" {
		return nil, &AuthError{Message: genericLoginFailure}
	}
	return &tr, nil
}

// Ping checks the liveness endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return err
	}
	resp, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Status: resp.StatusCode, Detail: readDetail(resp.Body, genericRequestFailure)}
	}
	return nil
}

func filterQuery(f models.CustomerFilter) url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(f.Skip))
	q.Set("limit", strconv.Itoa(f.Limit))
	if f.DocumentType != "" {
		q.Set("dni_type", string(f.DocumentType))
	}
	if f.Gender != "" {
		q.Set("gender", string(f.Gender))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	return q
}

// ListCustomers fetches one page of customers. The answer must carry a
// total, either as a {"items","total"} envelope or as a plain array with
// an X-Total-Count header.
func (c *HTTPClient) ListCustomers(ctx context.Context, filter models.CustomerFilter) (models.CustomerPage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/customers", filterQuery(filter), nil)
	if err != nil {
		return models.CustomerPage{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return models.CustomerPage{}, err
	}
	defer drain(resp)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.CustomerPage{}, fmt.Errorf("read response: %w", err)
	}
	return decodePage(data, resp.Header.Get(headerTotalCount))
}

func decodePage(data []byte, totalHeader string) (models.CustomerPage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return models.CustomerPage{}, errors.New("decode response: empty body")
	}

	if trimmed[0] == '{' {
		var env struct {
			Items []models.Customer `json:"items"`
			Total *int              `json:"total"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return models.CustomerPage{}, fmt.Errorf("decode response: %w", err)
		}
		if env.Total == nil || *env.Total < 0 {
			return models.CustomerPage{}, ErrMissingTotal
		}
		return models.CustomerPage{Items: env.Items, Total: *env.Total}, nil
	}

	var items []models.Customer
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return models.CustomerPage{}, fmt.Errorf("decode response: %w", err)
	}
	total, err := strconv.Atoi(strings.TrimSpace(totalHeader))
	if err != nil || total < 0 {
		return models.CustomerPage{}, ErrMissingTotal
	}
	return models.CustomerPage{Items: items, Total: total}, nil
}

func (c *HTTPClient) SearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/customers/search", url.Values{"q": {query}}, nil)
	if err != nil {
		return nil, err
	}
	var out []models.Customer
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func customerPath(id string) string { return "/api/customers/" + url.PathEscape(id) }

func (c *HTTPClient) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	req, err := c.newRequest(ctx, http.MethodGet, customerPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var out models.Customer
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateCustomer(ctx context.Context, in models.CustomerInput) (*models.Customer, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/customers", in)
	if err != nil {
		return nil, err
	}
	var out models.Customer
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCustomer(ctx context.Context, id string, in models.CustomerInput) (*models.Customer, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, customerPath(id), in)
	if err != nil {
		return nil, err
	}
	var out models.Customer
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteCustomer(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, customerPath(id), nil, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

func (c *HTTPClient) ListBiometrics(ctx context.Context, customerID string) ([]models.Biometric, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/biometrics/customer/"+url.PathEscape(customerID), nil, nil)
	if err != nil {
		return nil, err
	}
	var out []models.Biometric
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeUpload(u models.BiometricUpload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{"customer_id", u.CustomerID},
		{"biometric_type", string(u.Type)},
	}
	if u.QualityScore != nil {
		fields = append(fields, [2]string{"quality_score", strconv.FormatFloat(*u.QualityScore, 'f', -1, 64)})
	}
	if u.IsPrimary != nil {
		fields = append(fields, [2]string{"is_primary", strconv.FormatBool(*u.IsPrimary)})
	}
	if len(u.Metadata) > 0 {
		meta, err := json.Marshal(u.Metadata)
		if err != nil {
			return nil, "", err
		}
		fields = append(fields, [2]string{"metadata", string(meta)})
	}

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("file", u.FileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(u.Content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// UploadBiometric registers a biometric sample as multipart/form-data.
func (c *HTTPClient) UploadBiometric(ctx context.Context, upload models.BiometricUpload) (*models.Biometric, error) {
	body, contentType, err := encodeUpload(upload)
	if err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/biometrics/upload", nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var out models.Biometric
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SetPrimaryBiometric(ctx context.Context, id string) (*models.Biometric, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/api/biometrics/"+url.PathEscape(id)+"/primary", nil, nil)
	if err != nil {
		return nil, err
	}
	var out models.Biometric
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteBiometric(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/biometrics/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}
