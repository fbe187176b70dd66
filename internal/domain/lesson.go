package domain

// LessonRecord is the canonical representation of a lesson inside this
// service. The pipeline maps Drive files into this model, and the publisher
// maps from this model into GetCourse API parameters.
type LessonRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentHTML string `json:"content"`

	SourceFileID   string `json:"source_file_id"`
	SourceFileName string `json:"source_file_name"`
	MimeType       string `json:"mime_type"`

	// RemoteID is filled in after a successful publish. It has no lifecycle
	// here beyond reporting.
	RemoteID string `json:"getcourse_id,omitempty"`
}
