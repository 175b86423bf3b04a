// Package ocr implements the AI-assisted document-extraction demo. It sends
// an uploaded document to a generative model and returns the structured
// fields it pulled out.
package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/sonderworks/beacon/config"
	"github.com/sonderworks/beacon/log"
)

const (
	defaultModel       = "gemini-2.0-flash"
	defaultMaxFileSize = 8 << 20

	maxAttempts = 3
	retryWait   = 2 * time.Second
)

var ErrUnsupportedType = errors.New("ocr: unsupported document type")

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}

const extractionPrompt = `Extract the structured fields from this document.
Return a flat JSON object mapping field names to string values. Include every
clearly legible field (names, dates, amounts, identifiers). Do not invent
values for illegible fields.`

type Extractor struct {
	client      *genai.Client
	model       string
	maxFileSize int64
	log         *zap.SugaredLogger
}

func NewExtractor(ctx context.Context, c *config.OCR) (*Extractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: c.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("ocr: create client: %w", err)
	}

	model := c.Model
	if model == "" {
		model = defaultModel
	}

	maxFileSize := c.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = defaultMaxFileSize
	}

	return &Extractor{
		client:      client,
		model:       model,
		maxFileSize: maxFileSize,
		log:         log.S().Named("ocr"),
	}, nil
}

func (e *Extractor) MaxFileSize() int64 {
	return e.maxFileSize
}

// CheckDocument validates an upload before it is sent anywhere.
func (e *Extractor) CheckDocument(data []byte) (string, error) {
	if int64(len(data)) > e.maxFileSize {
		return "", fmt.Errorf("ocr: document exceeds %d bytes", e.maxFileSize)
	}

	mime := mimetype.Detect(data)
	for _, allowed := range allowedTypes {
		if mime.Is(allowed) {
			return mime.String(), nil
		}
	}

	return "", ErrUnsupportedType
}

// Extract runs the model over the document and decodes its JSON answer.
// The call is retried a bounded number of times.
func (e *Extractor) Extract(ctx context.Context, data []byte) (map[string]string, error) {
	mime, err := e.CheckDocument(data)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mime),
			genai.NewPartFromText(extractionPrompt),
		}, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, cfg)
		if err == nil {
			return decodeFields(resp.Text())
		}

		lastErr = err
		e.log.Warnw("extraction attempt failed", "attempt", attempt, "err", err)

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryWait * time.Duration(attempt)):
			}
		}
	}

	return nil, fmt.Errorf("ocr: extraction failed after %d attempts: %w", maxAttempts, lastErr)
}

func decodeFields(text string) (map[string]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	fields := map[string]string{}
	err := json.Unmarshal([]byte(text), &fields)
	if err != nil {
		return nil, fmt.Errorf("ocr: malformed model response: %w", err)
	}

	return fields, nil
}
