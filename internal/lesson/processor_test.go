package lesson

import (
	"context"
	"strings"
	"testing"

	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/domain"
)

func TestProcessEndToEnd(t *testing.T) {
	src := &fakeSource{files: map[string][]byte{
		"f1": []byte("Welcome\n\nThis is the first lesson."),
	}}
	p := NewProcessor(src)

	rec := p.Process(context.Background(), domain.FileDescriptor{
		ID:       "f1",
		Name:     "Lesson 1.txt",
		MimeType: "text/plain",
	})

	if rec.Title != "Welcome" {
		t.Errorf("Title = %q, want %q", rec.Title, "Welcome")
	}
	if rec.Description != "This is the first lesson." {
		t.Errorf("Description = %q, want first paragraph", rec.Description)
	}
	wantPrefix := `<div class="lesson-content"><p>Welcome</p><p>This is the first lesson.</p></div>`
	if !strings.HasPrefix(rec.ContentHTML, wantPrefix) {
		t.Errorf("ContentHTML = %q, want prefix %q", rec.ContentHTML, wantPrefix)
	}
	if rec.SourceFileID != "f1" || rec.SourceFileName != "Lesson 1.txt" || rec.MimeType != "text/plain" {
		t.Errorf("source fields not carried over: %+v", rec)
	}
}

func TestProcessEmptyFile(t *testing.T) {
	src := &fakeSource{files: map[string][]byte{"f2": []byte("")}}
	p := NewProcessor(src)

	rec := p.Process(context.Background(), domain.FileDescriptor{
		ID:       "f2",
		Name:     "Empty Notes.txt",
		MimeType: "text/plain",
	})

	if rec.Title != "Empty Notes" {
		t.Errorf("Title = %q, want filename stem", rec.Title)
	}
	if rec.Description != "Lesson from Empty Notes.txt" {
		t.Errorf("Description = %q, want synthesized fallback", rec.Description)
	}
	if rec.ContentHTML != EmptyContentHTML {
		t.Errorf("ContentHTML = %q, want placeholder paragraph", rec.ContentHTML)
	}
}

func TestProcessUsesMetadataDescription(t *testing.T) {
	src := &fakeSource{files: map[string][]byte{"f3": []byte("Body text here")}}
	p := NewProcessor(src)

	rec := p.Process(context.Background(), domain.FileDescriptor{
		ID:          "f3",
		Name:        "notes.txt",
		MimeType:    "text/plain",
		Description: "Hand-written summary",
	})

	if rec.Description != "Hand-written summary" {
		t.Errorf("Description = %q, want metadata pass-through", rec.Description)
	}
}

func TestProcessPDFPlaceholder(t *testing.T) {
	p := NewProcessor(&fakeSource{})

	rec := p.Process(context.Background(), domain.FileDescriptor{
		ID:       "f4",
		Name:     "Handout.pdf",
		MimeType: "application/pdf",
	})

	if rec.Title != "Handout" {
		t.Errorf("Title = %q, want filename stem", rec.Title)
	}
	if !strings.Contains(rec.ContentHTML, "[PDF file: f4]") {
		t.Errorf("ContentHTML = %q, want PDF placeholder wrapped in HTML", rec.ContentHTML)
	}
}
