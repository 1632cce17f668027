package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// OCRClient talks to the remote bill-scanning service
type OCRClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewOCRClient creates a client for the OCR backend
func NewOCRClient(baseURL string) *OCRClient {
	return &OCRClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

// ScanResult is the OCR reading of a bill image. Both fields are nullable:
// the service returns null for values it could not extract.
type ScanResult struct {
	ConsumedUnits *float64 `json:"consumed_units"`
	BillPrice     *float64 `json:"bill_price"`
}

// Units returns the extracted consumption, or 0 when the field was missing
func (r *ScanResult) Units() float64 {
	if r == nil || r.ConsumedUnits == nil {
		return 0
	}
	return *r.ConsumedUnits
}

// Price returns the extracted bill amount, or 0 when the field was missing
func (r *ScanResult) Price() float64 {
	if r == nil || r.BillPrice == nil {
		return 0
	}
	return *r.BillPrice
}

// ScanBill uploads a bill image and decodes the extracted fields
func (c *OCRClient) ScanBill(ctx context.Context, filename string, image io.Reader) (*ScanResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("bill_image", filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("copying image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	endpoint := c.baseURL + "/api/ocr/scan-bill/"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scanning bill: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OCR API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result ScanResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}
