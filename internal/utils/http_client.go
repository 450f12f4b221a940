package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a resty-backed client bound to baseURL.
//
// Requests are retried up to retryCount times when the transport fails or
// the remote side answers with a 5xx status. Client errors (4xx) are never
// retried.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://api.cloudinary.com", 30*time.Second, 2)
//	resp, err := client.R().SetFormData(form).Post("/v1_1/demo/image/upload")
func NewHTTPClient(baseURL string, timeout time.Duration, retryCount int) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode() >= http.StatusInternalServerError
		})

	return &HTTPClient{Client: client}
}
