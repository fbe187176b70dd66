package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/domain"
)

const listFields = "nextPageToken, files(id, name, mimeType, size, modifiedTime, description, webViewLink)"
const fileFields = "id, name, mimeType, size, modifiedTime, description, webViewLink"

// Client wraps the Drive v3 service with the read-only operations the sync
// needs. It satisfies lesson.Source.
type Client struct {
	svc *gdrive.Service
}

// ClientOptions builds the service options from explicit credential values
// (a file path or inline JSON). Returning nil falls back to application
// default credentials.
func ClientOptions(credentialsFile, credentialsJSON string) []option.ClientOption {
	if j := strings.TrimSpace(credentialsJSON); j != "" {
		return []option.ClientOption{
			option.WithCredentialsJSON([]byte(j)),
			option.WithScopes(gdrive.DriveReadonlyScope),
		}
	}
	if f := strings.TrimSpace(credentialsFile); f != "" {
		return []option.ClientOption{
			option.WithCredentialsFile(f),
			option.WithScopes(gdrive.DriveReadonlyScope),
		}
	}
	return nil
}

func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := gdrive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive: new service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ListFolder returns every non-trashed file in the folder, flattening the
// pagination the API imposes.
func (c *Client) ListFolder(ctx context.Context, folderID string) ([]domain.FileDescriptor, error) {
	if strings.TrimSpace(folderID) == "" {
		return nil, fmt.Errorf("drive: folder id is required")
	}

	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var files []domain.FileDescriptor
	pageToken := ""
	for {
		call := c.svc.Files.List().
			Q(query).
			PageSize(100).
			Fields(listFields).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("drive: list folder %s: %w", folderID, err)
		}
		for _, f := range res.Files {
			files = append(files, toDescriptor(f))
		}

		pageToken = res.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return files, nil
}

// FileBytes downloads the raw content of a regular (non-Workspace) file.
func (c *Client) FileBytes(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("drive: download %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("drive: read %s: %w", fileID, err)
	}
	return b, nil
}

// Export converts a Workspace-native file (Doc, Sheet, Slides) to the target
// MIME type and returns the bytes.
func (c *Client) Export(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	resp, err := c.svc.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("drive: export %s as %s: %w", fileID, mimeType, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("drive: read export %s: %w", fileID, err)
	}
	return b, nil
}

// Metadata fetches a single file's descriptor.
func (c *Client) Metadata(ctx context.Context, fileID string) (domain.FileDescriptor, error) {
	f, err := c.svc.Files.Get(fileID).Fields(fileFields).Context(ctx).Do()
	if err != nil {
		return domain.FileDescriptor{}, fmt.Errorf("drive: metadata %s: %w", fileID, err)
	}
	return toDescriptor(f), nil
}

func toDescriptor(f *gdrive.File) domain.FileDescriptor {
	return domain.FileDescriptor{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		ModifiedTime: f.ModifiedTime,
		Description:  f.Description,
		WebViewLink:  f.WebViewLink,
	}
}
