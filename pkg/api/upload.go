package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/akili-ai/akili-cli/pkg/client"
	"github.com/akili-ai/akili-cli/pkg/logger"
	json "github.com/json-iterator/go"
)

// Accepted document extensions
var acceptedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// IsAcceptedDocument reports whether the file extension is uploadable
func IsAcceptedDocument(path string) bool {
	return acceptedExtensions[strings.ToLower(filepath.Ext(path))]
}

// UploadDocument uploads one document and returns the created session
// plus the server's initial summary/quiz message.
func UploadDocument(filePath string) (*UploadResponse, error) {
	logger.Debug("Uploading document", "file_path", filePath)

	if !IsAcceptedDocument(filePath) {
		return nil, fmt.Errorf("unsupported document type: %s (want pdf, docx or txt)", filepath.Ext(filePath))
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	// Create multipart form
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err = io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}

	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", writer.FormDataContentType()).
		SetBody(body.Bytes()).
		Post("/upload/document")

	if cerr := CheckResponse(resp, err); cerr != nil {
		return nil, cerr
	}

	var result UploadResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	if result.SessionID == "" {
		return nil, &MalformedResponseError{Endpoint: "/upload/document", Field: "session_id"}
	}
	if result.Mode == "" {
		result.Mode = ModeStudy
	}
	if result.DocumentName == "" {
		result.DocumentName = filepath.Base(filePath)
	}

	logger.Debug("Document uploaded", "session_id", result.SessionID, "file_size", fileInfo.Size())
	return &result, nil
}
