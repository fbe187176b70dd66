package domain

// FileDescriptor is an immutable snapshot of a source file as reported by
// Google Drive. The pipeline reads it and never mutates it.
type FileDescriptor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"` // RFC 3339 if available
	Description  string `json:"description,omitempty"`
	WebViewLink  string `json:"webViewLink,omitempty"`
}
