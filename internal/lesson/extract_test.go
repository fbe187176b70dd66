package lesson

import (
	"context"
	"errors"
	"testing"
)

// fakeSource is an in-memory Source for pipeline tests.
type fakeSource struct {
	files   map[string][]byte
	exports map[string][]byte // keyed by fileID + "|" + mimeType
	err     error
}

func (f *fakeSource) FileBytes(_ context.Context, fileID string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.files[fileID]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (f *fakeSource) Export(_ context.Context, fileID, mimeType string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.exports[fileID+"|"+mimeType]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func TestExtractTextFile(t *testing.T) {
	e := Extractor{Source: &fakeSource{files: map[string][]byte{"f1": []byte("hello world")}}}
	got := e.Extract(context.Background(), "f1", "text/plain")
	if got != "hello world" {
		t.Errorf("Extract = %q, want %q", got, "hello world")
	}
}

func TestExtractWorkspaceTypes(t *testing.T) {
	src := &fakeSource{exports: map[string][]byte{
		"doc|text/plain":    []byte("doc text"),
		"sheet|text/csv":    []byte("a,b,c"),
		"slides|text/plain": []byte("slide text"),
		"form|text/plain":   []byte("form text"),
	}}
	e := Extractor{Source: src}
	ctx := context.Background()

	cases := []struct {
		id   string
		mime string
		want string
	}{
		{"doc", "application/vnd.google-apps.document", "doc text"},
		{"sheet", "application/vnd.google-apps.spreadsheet", "a,b,c"},
		{"slides", "application/vnd.google-apps.presentation", "slide text"},
		{"form", "application/vnd.google-apps.form", "form text"},
	}
	for _, tc := range cases {
		if got := e.Extract(ctx, tc.id, tc.mime); got != tc.want {
			t.Errorf("Extract(%s, %s) = %q, want %q", tc.id, tc.mime, got, tc.want)
		}
	}
}

func TestExtractPlaceholders(t *testing.T) {
	e := Extractor{Source: &fakeSource{}}
	ctx := context.Background()

	cases := []struct {
		mime string
		want string
	}{
		{"application/pdf", "[PDF file: f1]"},
		{"image/png", "[Image file: f1]"},
		{"video/mp4", "[Video file: f1]"},
		{"application/octet-stream", "[Binary file: f1]"}, // fetch fails, degrades
	}
	for _, tc := range cases {
		if got := e.Extract(ctx, "f1", tc.mime); got != tc.want {
			t.Errorf("Extract(f1, %s) = %q, want %q", tc.mime, got, tc.want)
		}
	}
}

func TestExtractNeverPropagatesErrors(t *testing.T) {
	e := Extractor{Source: &fakeSource{err: errors.New("network down")}}
	ctx := context.Background()

	for _, mime := range []string{
		"text/plain",
		"application/vnd.google-apps.document",
		"application/zip",
	} {
		got := e.Extract(ctx, "f1", mime)
		if got != "[Binary file: f1]" {
			t.Errorf("Extract with failing source for %s = %q, want binary placeholder", mime, got)
		}
	}
}

func TestExtractDropsInvalidUTF8(t *testing.T) {
	src := &fakeSource{files: map[string][]byte{"f1": {'o', 'k', 0xff, 0xfe, '!'}}}
	e := Extractor{Source: src}
	got := e.Extract(context.Background(), "f1", "text/plain")
	if got != "ok!" {
		t.Errorf("Extract = %q, want invalid bytes dropped", got)
	}
}
