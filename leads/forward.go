package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/sonderworks/beacon/config"
	"github.com/sonderworks/beacon/log"
)

// Forwarder pushes accepted submissions to the CMS and to the form's
// automation webhook. Both targets get bounded retries; neither failure
// blocks the other.
type Forwarder struct {
	client      *retryablehttp.Client
	cmsEndpoint string
	cmsToken    string
	log         *zap.SugaredLogger
}

func NewForwarder(c *config.CMS) *Forwarder {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = time.Second
	client.RetryWaitMax = 10 * time.Second
	client.HTTPClient.Timeout = 15 * time.Second
	client.Logger = nil

	return &Forwarder{
		client:      client,
		cmsEndpoint: c.Endpoint,
		cmsToken:    c.Token,
		log:         log.S().Named("leads"),
	}
}

func (f *Forwarder) Forward(ctx context.Context, sub *Submission, webhookURL string) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	var errs *multierror.Error

	if f.cmsEndpoint != "" {
		err := f.post(ctx, f.cmsEndpoint+"/leads", payload, f.cmsToken)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("cms forward: %w", err))
		}
	}

	if webhookURL != "" {
		err := f.post(ctx, webhookURL, payload, "")
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("webhook forward: %w", err))
		}
	}

	return errs.ErrorOrNil()
}

func (f *Forwarder) post(ctx context.Context, url string, payload []byte, token string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}
