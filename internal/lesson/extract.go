package lesson

import (
	"context"
	"fmt"
	"strings"
)

// Source is the slice of the Drive client the extractor needs. It is consumed
// as an interface so the pipeline can be tested without network access.
type Source interface {
	// FileBytes downloads the raw bytes of a regular file.
	FileBytes(ctx context.Context, fileID string) ([]byte, error)
	// Export converts a Workspace-native file to the given MIME type and
	// returns the resulting bytes.
	Export(ctx context.Context, fileID, mimeType string) ([]byte, error)
}

// Extractor pulls text content out of a source file based on its MIME type.
type Extractor struct {
	Source Source
}

// Extract returns the textual content of the file, or a typed placeholder
// when the format cannot be read as text. It never returns an error: every
// failure path degrades to a placeholder, since downstream formatting always
// expects a string.
func (e *Extractor) Extract(ctx context.Context, fileID, mimeType string) string {
	switch kind := DetectKind(mimeType); kind {
	case KindWorkspaceDocument, KindWorkspaceSpreadsheet, KindWorkspacePresentation, KindWorkspaceOther:
		b, err := e.Source.Export(ctx, fileID, kind.ExportMimeType())
		if err != nil {
			return binaryPlaceholder(fileID)
		}
		return decodeUTF8(b)

	case KindText:
		b, err := e.Source.FileBytes(ctx, fileID)
		if err != nil {
			return binaryPlaceholder(fileID)
		}
		return decodeUTF8(b)

	case KindPDF:
		// No PDF parsing; documented limitation.
		return fmt.Sprintf("[PDF file: %s]", fileID)

	case KindImage:
		return fmt.Sprintf("[Image file: %s]", fileID)

	case KindVideo:
		return fmt.Sprintf("[Video file: %s]", fileID)

	default:
		b, err := e.Source.FileBytes(ctx, fileID)
		if err != nil {
			return binaryPlaceholder(fileID)
		}
		return decodeUTF8(b)
	}
}

func binaryPlaceholder(fileID string) string {
	return fmt.Sprintf("[Binary file: %s]", fileID)
}

// decodeUTF8 interprets bytes as UTF-8, dropping invalid sequences instead of
// failing.
func decodeUTF8(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}
