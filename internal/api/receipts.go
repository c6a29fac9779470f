package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/vijaysanthoshp/fintrack/internal/envelope"
	"github.com/vijaysanthoshp/fintrack/internal/model"
)

// UploadReceipt uploads a receipt image for OCR scanning and returns the
// parsed result. When progress is non-nil a byte-level progress bar is
// rendered to it while the upload streams.
func (c *Client) UploadReceipt(ctx context.Context, path string, progress io.Writer) (model.Receipt, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("opening receipt: %w", err)
	}
	defer func() { _ = file.Close() }()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("receipt", filepath.Base(path))
	if err != nil {
		return model.Receipt{}, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return model.Receipt{}, fmt.Errorf("reading receipt: %w", err)
	}
	if err := writer.Close(); err != nil {
		return model.Receipt{}, fmt.Errorf("finalizing upload form: %w", err)
	}

	var body io.Reader = &buf
	if progress != nil {
		bar := progressbar.NewOptions64(int64(buf.Len()),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Uploading receipt...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(progress)
			}),
		)
		body = io.TeeReader(&buf, bar)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mock-ocr/upload", body)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	decoded, err := c.send(req)
	if err != nil {
		return model.Receipt{}, err
	}
	return parseReceipt(decoded), nil
}

// parseReceipt decodes the OCR payload through its JSON tags so the field
// aliases (text vs extractedText vs raw_text) land where they belong.
func parseReceipt(decoded any) model.Receipt {
	obj := envelope.ExtractObject(decoded)
	if obj == nil {
		return model.Receipt{}
	}
	var receipt model.Receipt
	raw, err := json.Marshal(obj)
	if err != nil {
		return model.Receipt{}
	}
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return model.Receipt{}
	}
	return receipt
}
