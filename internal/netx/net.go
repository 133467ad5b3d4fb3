// Package netx uploads blobs to presigned object-storage URLs.
package netx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Uploader PUTs payloads to presigned URLs.
type Uploader struct {
	client *resty.Client
}

// NewUploader returns an Uploader with the given request timeout.
func NewUploader(timeout time.Duration) *Uploader {
	return &Uploader{client: resty.New().SetTimeout(timeout)}
}

// Put uploads body to url. Any non-2xx answer is an error carrying the
// response body, which S3-compatible stores fill with an XML reason.
func (u *Uploader) Put(ctx context.Context, url string, body []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := u.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(body).
		Put(url)
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status(), resp.String())
	}
	return nil
}
