// Package extraction talks to the invoice-extraction backend: it uploads
// an invoice PDF and receives the detected metadata and product lines.
package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

type Client struct {
	http     *http.Client
	endpoint *url.URL
}

func New(endpoint string) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("scheme %s is not supported", u.Scheme)
	}

	return &Client{
		endpoint: u,
		http:     http.DefaultClient,
	}, nil
}

// Process uploads the invoice file and returns the extraction result.
// alternative selects the backend's fallback extraction strategy for
// invoices the primary table parser cannot handle.
func (c *Client) Process(f io.Reader, filename string, alternative bool) (*Result, error) {
	processUrl, err := c.endpoint.Parse("/api/invoice/process")
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %v", err)
	}

	body := bytes.NewBuffer(nil)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("invoice_pdf", filename)
	if err != nil {
		return nil, fmt.Errorf("unable to create form file: %v", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("unable to copy file: %v", err)
	}
	if alternative {
		if err := w.WriteField("alternative_method", "true"); err != nil {
			return nil, fmt.Errorf("unable to write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("unable to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, processUrl.String(), body)
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to perform HTTP request: %v", err)
	}
	defer res.Body.Close()

	var result Result
	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(&result); err != nil {
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", res.Status)
		}
		return nil, fmt.Errorf("unable to decode result: %v", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("extraction failed: %s", result.Error)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}

	return &result, nil
}

// Healthz checks if the extraction service is healthy and returns true if it is.
func (c *Client) Healthz() (bool, error) {
	healthEndpoint, err := c.endpoint.Parse("/healthz")
	if err != nil {
		return false, err
	}
	res, err := c.http.Get(healthEndpoint.String())
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	return res.StatusCode == http.StatusOK, nil
}

func (c *Client) SetHttpTransport(transport http.RoundTripper) {
	c.http.Transport = transport
}
