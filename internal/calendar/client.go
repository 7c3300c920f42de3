package calendar

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
	"time"

	"github.com/evanmoray/cadence/internal/domain"
)

// restGateway implements Gateway against a JSON-over-HTTP calendar service.
type restGateway struct {
	cfg      GatewayConfig
	http     *http.Client
	observer Observer
}

// NewRESTGateway creates a Gateway that talks to the configured calendar
// service endpoint.
func NewRESTGateway(cfg GatewayConfig, observer Observer) Gateway {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &restGateway{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// eventPayload is the wire shape of a calendar event.
type eventPayload struct {
	ID          string  `json:"id,omitempty"`
	Summary     string  `json:"summary"`
	Description string  `json:"description,omitempty"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	ColorID     *string `json:"colorId,omitempty"`
}

func (p eventPayload) toDomain() (domain.CalendarEvent, error) {
	start, err := time.Parse(time.RFC3339, p.Start)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("parsing event start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, p.End)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("parsing event end: %w", err)
	}
	return domain.CalendarEvent{
		ID:          p.ID,
		Summary:     p.Summary,
		Description: p.Description,
		Start:       start,
		End:         end,
		ColorID:     p.ColorID,
	}, nil
}

func (g *restGateway) CreateEvent(ctx context.Context, req CreateEventRequest) (*domain.CalendarEvent, error) {
	body := eventPayload{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       req.Start.Format(time.RFC3339),
		End:         req.End.Format(time.RFC3339),
		ColorID:     req.ColorID,
	}

	var created eventPayload
	if err := g.call(ctx, "create", http.MethodPost, "/api/events", nil, body, &created); err != nil {
		return nil, err
	}

	ev, err := created.toDomain()
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (g *restGateway) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]domain.CalendarEvent, error) {
	query := url.Values{}
	query.Set("timeMin", timeMin.Format(time.RFC3339))
	query.Set("timeMax", timeMax.Format(time.RFC3339))

	var payloads []eventPayload
	if err := g.call(ctx, "list", http.MethodGet, "/api/events", query, nil, &payloads); err != nil {
		return nil, err
	}

	events := make([]domain.CalendarEvent, 0, len(payloads))
	for _, p := range payloads {
		ev, err := p.toDomain()
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (g *restGateway) DeleteEvent(ctx context.Context, eventID string) error {
	return g.call(ctx, "delete", http.MethodDelete, "/api/events/"+url.PathEscape(eventID), nil, nil, nil)
}

func (g *restGateway) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.Endpoint+"/api/health", nil)
	if err != nil {
		return false
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// call performs one gateway operation with timeout, bounded retry, and call
// telemetry. Retries stop on context cancellation and on any error response
// below 500; only server errors and transport failures are retried.
func (g *restGateway) call(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 1 + g.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		err := g.doRequest(ctx, method, path, query, body, out)
		if err == nil {
			g.observer.OnCallComplete(CallEvent{
				Operation: op,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout or on client errors.
		// Only 5xx responses and transport failures get another attempt.
		var se *statusError
		if ctx.Err() != nil || errors.Is(err, ErrNotFound) || (errors.As(err, &se) && se.code < 500) {
			break
		}
	}

	g.observer.OnCallComplete(CallEvent{
		Operation: op,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(lastErr, ctx),
	})

	var se *statusError
	switch {
	case errors.Is(lastErr, ErrNotFound):
		return lastErr
	case ctx.Err() != nil:
		return ErrTimeout
	case isConnectionError(lastErr):
		return ErrUnavailable
	case errors.As(lastErr, &se) && se.code < 500:
		// Client errors were never retried, so there is nothing exhausted.
		return lastErr
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func (g *restGateway) doRequest(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := g.cfg.Endpoint + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if g.cfg.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}

	httpResp, err := g.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	switch {
	case httpResp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case httpResp.StatusCode >= 300:
		return &statusError{code: httpResp.StatusCode, body: string(respBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// statusError carries a non-2xx response so the retry loop can tell client
// mistakes from server trouble.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("calendar service returned status %d: %s", e.code, e.body)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error, ctx context.Context) string {
	switch {
	case err == nil:
		return ""
	case ctx.Err() != nil:
		return "TIMEOUT"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case isConnectionError(err):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
