package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Kariaki58/favfareclinic/internal/forms"
)

// HTTPSubmitter posts drafts to a remote booking endpoint.
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSubmitter targets endpoint, e.g. http://localhost:8080/api/bookings.
func NewHTTPSubmitter(endpoint string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSubmitter{endpoint: endpoint, client: client}
}

// Submit sends values form-encoded and maps the response status to an outcome.
func (s *HTTPSubmitter) Submit(ctx context.Context, values url.Values) (forms.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return forms.Result{}, fmt.Errorf("wizard: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return forms.Result{}, fmt.Errorf("wizard: post booking: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return forms.Result{}, fmt.Errorf("wizard: read response: %w", err)
	}
	var result forms.Result
	if err := json.Unmarshal(body, &result); err != nil {
		return forms.Result{}, fmt.Errorf("wizard: decode response (status %d): %w", resp.StatusCode, err)
	}
	result.Outcome = forms.OutcomeForStatus(resp.StatusCode)
	return result, nil
}

var _ Submitter = (*HTTPSubmitter)(nil)
