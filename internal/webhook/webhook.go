// Package webhook posts captured screenshots to an HTTP webhook and applies
// the post-send cleanup policy.
package webhook

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/shotwatch/shotwatch/internal/capture"
	"github.com/shotwatch/shotwatch/internal/config"
)

// Client sends multipart file uploads to a webhook URL.
type Client struct {
	HTTPClient *http.Client
}

// NewClient creates a Client with a bounded request timeout.
func NewClient() *Client {
	return &Client{HTTPClient: &http.Client{Timeout: 30 * time.Second}}
}

// Send uploads the file as a `file` part (image/png, filename = local
// path) with an optional `content` text part. Any response other than
// HTTP 200 is an error naming the status code.
func (c *Client) Send(webhookURL, filePath, content string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filePath))
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	if content != "" {
		if err := mw.WriteField("content", content); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, webhookURL, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook responded with status code %d", resp.StatusCode)
	}
	return nil
}

// Pipeline delivers capture results and cleans up afterwards. The clock is
// injectable so template rendering is deterministic in tests.
type Pipeline struct {
	Client *Client
	Now    func() time.Time
}

// NewPipeline creates a Pipeline with a default client and the real clock.
func NewPipeline() *Pipeline {
	return &Pipeline{Client: NewClient(), Now: time.Now}
}

// Deliver uploads the capture to the configured webhook and applies the
// cleanup policy. It reports overall success plus the discrete step
// messages, and never propagates network or filesystem errors.
//
// A capture without a file fails immediately with the capture's status. A
// failed send deliberately keeps the local file: a screenshot whose
// delivery failed is never lost. Cleanup failure after a successful send is
// reported but does not flip the result.
func (p *Pipeline) Deliver(res capture.Result, cfg config.Config) (bool, []string) {
	if res.Path == "" {
		return false, []string{res.Message}
	}

	var content string
	if strings.TrimSpace(cfg.CustomMessage) != "" {
		content = Render(cfg.CustomMessage, cfg.AppName, p.Now())
	}

	if err := p.Client.Send(cfg.WebhookURL, res.Path, content); err != nil {
		return false, []string{
			res.Message,
			fmt.Sprintf("failed to send screenshot: %v", err),
			"screenshot kept due to send failure",
		}
	}

	steps := []string{res.Message, "screenshot sent successfully"}
	if cfg.DeleteAfterSend {
		if err := os.Remove(res.Path); err != nil {
			steps = append(steps, fmt.Sprintf("error deleting %s: %v", res.Path, err))
		} else {
			steps = append(steps, fmt.Sprintf("deleted screenshot: %s", res.Path))
		}
	} else {
		steps = append(steps, "screenshot kept")
	}
	return true, steps
}
