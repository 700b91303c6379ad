package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/common"
	"github.com/dmitrijs2005/deepneumoscan/internal/logging"
	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
)

// maxErrorBody bounds how much of an error response is kept in StatusError.
const maxErrorBody = 4 << 10

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient returns a client for the backend at baseURL. A zero timeout
// leaves the transport default in place.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: missing host", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Signup(ctx context.Context, form models.SignupForm) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/signup", form, nil)
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	var res models.LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", creds, &res); err != nil {
		return nil, err
	}
	if res.UserID == "" {
		return nil, fmt.Errorf("%w: login response without user_id", ErrMalformedResponse)
	}
	return &res, nil
}

type stringsQuery struct {
	Lang string `url:"lang"`
}

// Strings fetches the display strings for lang ("en" when empty). The body
// must be a flat object of strings.
func (c *HTTPClient) Strings(ctx context.Context, lang string) (map[string]string, error) {
	v, err := query.Values(stringsQuery{Lang: common.LanguageOrDefault(lang)})
	if err != nil {
		return nil, err
	}

	var res map[string]string
	if err := c.do(ctx, http.MethodGet, "/i18n?"+v.Encode(), nil, "", &res); err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%w: null strings object", ErrMalformedResponse)
	}
	return res, nil
}

func (c *HTTPClient) SubmitSelfAssessment(ctx context.Context, userID string, answers []models.AssessmentAnswer) (*models.SelfAssessmentResult, error) {
	var res models.SelfAssessmentResult
	req := models.SelfAssessmentRequest{UserID: userID, Answers: answers}
	if err := c.doJSON(ctx, http.MethodPost, "/assessment/self", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitScan posts the form as multipart/form-data. A submission that fails
// validation (no image in particular) is rejected before any request.
func (c *HTTPClient) SubmitScan(ctx context.Context, userID string, sub models.ScanSubmission) (*models.ScanResult, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	body, contentType, err := encodeScanForm(userID, sub)
	if err != nil {
		return nil, fmt.Errorf("encode scan form: %w", err)
	}

	var res models.ScanResult
	if err := c.do(ctx, http.MethodPost, "/scan/xray", body, contentType, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) SubmitCureAssessment(ctx context.Context, userID string, symptoms []models.SymptomEntry) (*models.CureResult, error) {
	var res models.CureResult
	req := models.CureAssessmentRequest{UserID: userID, Symptoms: symptoms}
	if err := c.doJSON(ctx, http.MethodPost, "/assessment/cure", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ListHistory(ctx context.Context, userID string) ([]models.HistoryRecord, error) {
	var res models.HistoryList
	if err := c.do(ctx, http.MethodGet, "/history/"+url.PathEscape(userID), nil, "", &res); err != nil {
		return nil, err
	}
	if res.Items == nil {
		return []models.HistoryRecord{}, nil
	}
	return res.Items, nil
}

func (c *HTTPClient) DeleteHistory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/history/"+url.PathEscape(id), nil, "", nil)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(b), "application/json", out)
}

// do performs exactly one request. out may be nil when the body is ignored.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	log := c.logger.With("request_id", requestID, "method", method, "path", path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err, "elapsed", time.Since(start))
		return mapError(err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request finished", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// mapError translates transport failures. Cancellation by the caller is
// passed through untouched; everything else is reported as ErrUnavailable
// while keeping the cause matchable.
func mapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: timeout: %w", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeScanForm writes the image as the "file" part and every scalar field
// as its own part.
func encodeScanForm(userID string, sub models.ScanSubmission) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(sub.Image.Name)))
	h.Set("Content-Type", "image/jpeg")

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(sub.Image.Data); err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"name", sub.Name},
		{"age", sub.AgeField()},
		{"gender", string(sub.Gender)},
		{"medical_condition", sub.MedicalCondition},
	}
	if userID != "" {
		fields = append([][2]string{{"user_id", userID}}, fields...)
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}
