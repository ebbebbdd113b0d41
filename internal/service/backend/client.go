package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	applog "github.com/aurex-exteriors/site/internal/platform/logging"
	"github.com/aurex-exteriors/site/internal/platform/timeutil"
)

const (
	apiPrefix            = "/api"
	userAgent            = "aurex-site"
	defaultTimeout       = 10 * time.Second
	defaultUploadTimeout = 30 * time.Second
	maxErrorBodyBytes    = 64 << 10
	photosField          = "photos"
)

// Client implements Service over the backend's REST API.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	timeout       time.Duration
	uploadTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeouts overrides the per-call deadlines for plain and attachment-carrying requests.
func WithTimeouts(plain, upload time.Duration) Option {
	return func(c *Client) {
		c.timeout = plain
		c.uploadTimeout = upload
	}
}

// NewClient creates a client for the backend at baseURL (scheme and host, without /api).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient:    &http.Client{},
		baseURL:       strings.TrimRight(baseURL, "/"),
		timeout:       defaultTimeout,
		uploadTimeout: defaultUploadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Backend response types (snake_case JSON tags matching the backend's models).

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type intakeBody struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

type wireQuoteRequest struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          *string       `json:"phone"`
	Service        string        `json:"service"`
	Message        *string       `json:"message"`
	Status         string        `json:"status"`
	EstimatedPrice *int          `json:"estimated_price"`
	CreatedAt      timeutil.Time `json:"created_at"`
}

type wireOffering struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
	Pricing     struct {
		Starting int    `json:"starting"`
		Unit     string `json:"unit"`
	} `json:"pricing"`
	Duration     string `json:"duration"`
	Availability string `json:"availability"`
	Active       *bool  `json:"active"`
}

type wireTestimonial struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Service  string        `json:"service"`
	Rating   int           `json:"rating"`
	Text     string        `json:"text"`
	Location string        `json:"location"`
	Date     timeutil.Time `json:"date"`
	Verified *bool         `json:"verified"`
}

type wireCompanyInfo struct {
	Name          string `json:"name"`
	Tagline       string `json:"tagline"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	ServiceRadius string `json:"service_radius"`
	BusinessHours struct {
		Weekdays string `json:"weekdays"`
		Saturday string `json:"saturday"`
		Sunday   string `json:"sunday"`
	} `json:"business_hours"`
	Features []string `json:"features"`
	Stats    struct {
		Customers    string `json:"customers"`
		Experience   string `json:"experience"`
		Satisfaction string `json:"satisfaction"`
		Support      string `json:"support"`
	} `json:"stats"`
	SocialMedia struct {
		Facebook  string `json:"facebook"`
		Twitter   string `json:"twitter"`
		Instagram string `json:"instagram"`
	} `json:"social_media"`
}

type wireHealth struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// request is one backend call. body may be nil.
type request struct {
	method      string
	path        string
	body        []byte
	contentType string
	timeout     time.Duration
}

// do issues r and decodes a 2xx JSON body into target. Every failure is an *APIError.
func (c *Client) do(ctx context.Context, r request, target any) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+apiPrefix+r.path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		applog.LogWarn(ctx, "backend request failed",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return &APIError{Kind: ErrorKindNetwork, cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	fields := []zap.Field{
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errorFromResponse(resp)
		applog.LogWarn(ctx, "backend error response", append(fields, zap.String("detail", apiErr.Detail))...)
		return apiErr
	}
	applog.LogInfo(ctx, "backend response", fields...)

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		if ctx.Err() != nil {
			return &APIError{Kind: ErrorKindNetwork, cause: err}
		}
		return &APIError{Kind: ErrorKindServer, Status: resp.StatusCode, cause: fmt.Errorf("decoding backend response: %w", err)}
	}
	return nil
}

// errorFromResponse reads the FastAPI-style {"detail": ...} body. A string detail is used
// verbatim; a list of validation issues is joined by their "msg" fields.
func errorFromResponse(resp *http.Response) *APIError {
	apiErr := &APIError{Kind: ErrorKindServer, Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &body) != nil || len(body.Detail) == 0 {
		return apiErr
	}

	var text string
	if json.Unmarshal(body.Detail, &text) == nil {
		apiErr.Detail = strings.TrimSpace(text)
		return apiErr
	}
	var issues []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(body.Detail, &issues) == nil {
		msgs := make([]string, 0, len(issues))
		for _, issue := range issues {
			if m := strings.TrimSpace(issue.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		apiErr.Detail = strings.Join(msgs, "; ")
	}
	return apiErr
}

// SubmitIntake posts in to its target. With attachments the body is multipart/form-data
// with one "photos" part per file and the longer upload deadline applies.
func (c *Client) SubmitIntake(ctx context.Context, in Intake, withAttachments bool) (*Ack, error) {
	target := in.Target
	if target == "" {
		target = TargetContact
	}

	r := request{method: http.MethodPost, path: string(target), timeout: c.timeout}
	if withAttachments {
		body, contentType, err := encodeMultipart(in)
		if err != nil {
			return nil, fmt.Errorf("encoding intake: %w", err)
		}
		r.body, r.contentType, r.timeout = body, contentType, c.uploadTimeout
	} else {
		body, err := json.Marshal(intakeBody{
			Name:    in.Name,
			Email:   in.Email,
			Phone:   in.Phone,
			Service: in.Service,
			Message: in.Message,
		})
		if err != nil {
			return nil, fmt.Errorf("encoding intake: %w", err)
		}
		r.body, r.contentType = body, "application/json"
	}

	var env envelope[*wireQuoteRequest]
	if err := c.do(ctx, r, &env); err != nil {
		return nil, err
	}
	ack := &Ack{Message: env.Message}
	if env.Data != nil {
		q := toQuoteRequest(*env.Data)
		ack.Quote = &q
	}
	return ack, nil
}

func encodeMultipart(in Intake) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range []struct{ name, value string }{
		{"name", in.Name},
		{"email", in.Email},
		{"phone", in.Phone},
		{"service", in.Service},
		{"message", in.Message},
	} {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}
	for _, a := range in.Attachments {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
			"name":     photosField,
			"filename": a.Filename,
		}))
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(a.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, timeout: c.timeout}, target)
}

func (c *Client) ListServices(ctx context.Context) ([]Offering, error) {
	var env envelope[[]wireOffering]
	if err := c.get(ctx, "/services", &env); err != nil {
		return nil, err
	}
	out := make([]Offering, len(env.Data))
	for i, w := range env.Data {
		out[i] = toOffering(w)
	}
	return out, nil
}

func (c *Client) GetService(ctx context.Context, id string) (*Offering, error) {
	var env envelope[*wireOffering]
	if err := c.get(ctx, "/services/"+url.PathEscape(id), &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, fmt.Errorf("service %q: %w", id, ErrNotFound)
	}
	o := toOffering(*env.Data)
	return &o, nil
}

func (c *Client) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	var env envelope[[]wireTestimonial]
	if err := c.get(ctx, "/testimonials", &env); err != nil {
		return nil, err
	}
	out := make([]Testimonial, len(env.Data))
	for i, w := range env.Data {
		out[i] = Testimonial{
			ID:       w.ID,
			Name:     w.Name,
			Service:  w.Service,
			Rating:   w.Rating,
			Text:     w.Text,
			Location: w.Location,
			Date:     w.Date.Time,
			Verified: w.Verified == nil || *w.Verified,
		}
	}
	return out, nil
}

func (c *Client) GetCompanyInfo(ctx context.Context) (*CompanyInfo, error) {
	var env envelope[*wireCompanyInfo]
	if err := c.get(ctx, "/company-info", &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, fmt.Errorf("company info: %w", ErrNotFound)
	}
	w := env.Data
	return &CompanyInfo{
		Name:          w.Name,
		Tagline:       w.Tagline,
		Phone:         w.Phone,
		Email:         w.Email,
		Address:       w.Address,
		ServiceRadius: w.ServiceRadius,
		BusinessHours: BusinessHours(w.BusinessHours),
		Features:      w.Features,
		Stats:         Stats(w.Stats),
		SocialMedia:   SocialMedia(w.SocialMedia),
	}, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var w wireHealth
	if err := c.get(ctx, "/", &w); err != nil {
		return nil, err
	}
	return &Health{Status: w.Status, Message: w.Message}, nil
}

func toOffering(w wireOffering) Offering {
	features := w.Features
	if features == nil {
		features = []string{}
	}
	return Offering{
		ID:           w.ID,
		Name:         w.Name,
		Description:  w.Description,
		Icon:         w.Icon,
		Features:     features,
		Pricing:      Pricing(w.Pricing),
		Duration:     w.Duration,
		Availability: w.Availability,
		Active:       w.Active == nil || *w.Active,
	}
}

func toQuoteRequest(w wireQuoteRequest) QuoteRequest {
	return QuoteRequest{
		ID:             w.ID,
		Name:           w.Name,
		Email:          w.Email,
		Phone:          deref(w.Phone),
		Service:        w.Service,
		Message:        deref(w.Message),
		Status:         w.Status,
		EstimatedPrice: w.EstimatedPrice,
		CreatedAt:      w.CreatedAt.Time,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Compile-time interface check
var _ Service = (*Client)(nil)
