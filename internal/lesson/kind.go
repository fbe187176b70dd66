package lesson

import "strings"

// Kind classifies a source file by its declared MIME type. The decision is
// made once at the boundary; the rest of the pipeline switches on the tag
// instead of re-testing MIME strings.
type Kind int

const (
	KindOther Kind = iota
	KindWorkspaceDocument
	KindWorkspaceSpreadsheet
	KindWorkspacePresentation
	KindWorkspaceOther
	KindText
	KindPDF
	KindImage
	KindVideo
)

// workspacePrefix marks Google Workspace native files (Docs, Sheets, Slides).
// Their content only exists in the remote editor format and must be exported.
const workspacePrefix = "application/vnd.google-apps"

func (k Kind) String() string {
	switch k {
	case KindWorkspaceDocument:
		return "workspace-document"
	case KindWorkspaceSpreadsheet:
		return "workspace-spreadsheet"
	case KindWorkspacePresentation:
		return "workspace-presentation"
	case KindWorkspaceOther:
		return "workspace-other"
	case KindText:
		return "text"
	case KindPDF:
		return "pdf"
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "other"
	}
}

// DetectKind maps a MIME type string onto the closed Kind set.
func DetectKind(mimeType string) Kind {
	switch {
	case strings.HasPrefix(mimeType, workspacePrefix):
		switch {
		case strings.Contains(mimeType, "document"):
			return KindWorkspaceDocument
		case strings.Contains(mimeType, "spreadsheet"):
			return KindWorkspaceSpreadsheet
		case strings.Contains(mimeType, "presentation"):
			return KindWorkspacePresentation
		default:
			return KindWorkspaceOther
		}
	case strings.HasPrefix(mimeType, "text/"):
		return KindText
	case mimeType == "application/pdf":
		return KindPDF
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	default:
		return KindOther
	}
}

// ExportMimeType returns the plain interchange format a workspace file should
// be exported to. Spreadsheets keep their tabular shape as CSV; everything
// else flattens to plain text.
func (k Kind) ExportMimeType() string {
	if k == KindWorkspaceSpreadsheet {
		return "text/csv"
	}
	return "text/plain"
}

// IsWorkspace reports whether the kind is a Workspace-native document type.
func (k Kind) IsWorkspace() bool {
	switch k {
	case KindWorkspaceDocument, KindWorkspaceSpreadsheet, KindWorkspacePresentation, KindWorkspaceOther:
		return true
	}
	return false
}
