package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amirasaad/finledger/pkg/domain"
	json "github.com/goccy/go-json"
)

const maxErrorBody = 512

// getJSON performs a GET and decodes a 200 response into out. Transport
// failures and non-200 statuses become ExternalServiceErrors carrying the
// upstream status and a trimmed body.
func getJSON(ctx context.Context, client *http.Client, service, url string, header http.Header, out any) error {
	body, err := get(ctx, client, service, url, header)
	if err != nil {
		return err
	}
	defer body.Close() //nolint:errcheck

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return &domain.ExternalServiceError{
			Service: service,
			Message: fmt.Sprintf("failed to decode response: %v", err),
			Err:     err,
		}
	}
	return nil
}

func get(ctx context.Context, client *http.Client, service, url string, header http.Header) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &domain.ExternalServiceError{
			Service: service,
			Message: fmt.Sprintf("failed to make request: %v", err),
			Err:     err,
		}
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close() //nolint:errcheck
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.ExternalServiceError{
			Service: service,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(msg)),
		}
	}
	return resp.Body, nil
}
