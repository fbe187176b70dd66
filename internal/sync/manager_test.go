package sync

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/domain"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/getcourse"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/lesson"
)

type fakeLister struct {
	files []domain.FileDescriptor
	err   error
}

func (f *fakeLister) ListFolder(_ context.Context, _ string) ([]domain.FileDescriptor, error) {
	return f.files, f.err
}

type fakeProcessor struct{}

func (fakeProcessor) Process(_ context.Context, fd domain.FileDescriptor) domain.LessonRecord {
	return domain.LessonRecord{
		Title:          strings.TrimSuffix(fd.Name, ".txt"),
		Description:    "Lesson from " + fd.Name,
		ContentHTML:    "<p>content of " + fd.ID + "</p>",
		SourceFileID:   fd.ID,
		SourceFileName: fd.Name,
		MimeType:       fd.MimeType,
	}
}

type fakePublisher struct {
	created []getcourse.Lesson
	failFor map[string]bool // by title
}

func (p *fakePublisher) CreateLesson(_ context.Context, l getcourse.Lesson) (getcourse.CreateResult, error) {
	if p.failFor[l.Title] {
		return getcourse.CreateResult{}, errors.New("remote unavailable")
	}
	p.created = append(p.created, l)
	return getcourse.CreateResult{LessonID: "remote-" + l.Title}, nil
}

func testFiles() []domain.FileDescriptor {
	return []domain.FileDescriptor{
		{ID: "f1", Name: "One.txt", MimeType: "text/plain"},
		{ID: "f2", Name: "Two.txt", MimeType: "text/plain"},
		{ID: "f3", Name: "Three.txt", MimeType: "text/plain"},
	}
}

func TestProcessAllPublishes(t *testing.T) {
	pub := &fakePublisher{}
	m := NewManager(&fakeLister{files: testFiles()}, fakeProcessor{}, pub, "folder")

	report, err := m.ProcessAll(context.Background(), Options{Publish: true, StreamID: "s1"})
	if err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}

	if report.Total != 3 || report.Processed != 3 {
		t.Errorf("report = %d/%d, want 3/3", report.Processed, report.Total)
	}
	if len(report.Errors) != 0 {
		t.Errorf("unexpected errors: %v", report.Errors)
	}
	if len(pub.created) != 3 {
		t.Fatalf("published %d lessons, want 3", len(pub.created))
	}
	if pub.created[0].StreamID != "s1" {
		t.Errorf("StreamID not forwarded: %+v", pub.created[0])
	}
	if report.Results[0].Lesson.RemoteID != "remote-One" {
		t.Errorf("RemoteID = %q", report.Results[0].Lesson.RemoteID)
	}
}

func TestProcessAllIsolatesFailures(t *testing.T) {
	pub := &fakePublisher{failFor: map[string]bool{"Two": true}}
	m := NewManager(&fakeLister{files: testFiles()}, fakeProcessor{}, pub, "folder")

	report, err := m.ProcessAll(context.Background(), Options{Publish: true})
	if err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}

	if report.Processed != 2 {
		t.Errorf("Processed = %d, want 2", report.Processed)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("Errors = %v, want one entry", report.Errors)
	}
	if !strings.Contains(report.Errors[0], "Two.txt") {
		t.Errorf("error should name the failing file: %q", report.Errors[0])
	}
	// The batch continued past the failure.
	if len(pub.created) != 2 {
		t.Errorf("published %d, want 2", len(pub.created))
	}
}

func TestProcessAllNoPublisherFailsFast(t *testing.T) {
	lister := &fakeLister{files: testFiles()}
	m := NewManager(lister, fakeProcessor{}, nil, "folder")

	_, err := m.ProcessAll(context.Background(), Options{Publish: true})
	if !errors.Is(err, ErrNoPublisher) {
		t.Fatalf("err = %v, want ErrNoPublisher", err)
	}
}

func TestProcessAllDryRun(t *testing.T) {
	m := NewManager(&fakeLister{files: testFiles()}, fakeProcessor{}, nil, "folder")

	report, err := m.ProcessAll(context.Background(), Options{Publish: false})
	if err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}
	if report.Processed != 3 {
		t.Errorf("Processed = %d, want 3", report.Processed)
	}
	for _, r := range report.Results {
		if r.Lesson.RemoteID != "" {
			t.Errorf("dry run should not assign remote ids: %+v", r.Lesson)
		}
	}
}

func TestProcessFileEnhances(t *testing.T) {
	proc := lessonRecordWithVideo{}
	m := NewManager(&fakeLister{}, proc, nil, "folder")

	res := m.ProcessFile(context.Background(), domain.FileDescriptor{ID: "f1", Name: "v.txt"}, Options{
		Enhance: lesson.Options{EmbedVideos: true},
	})
	if !strings.Contains(res.Lesson.ContentHTML, "youtube.com/embed/abc123") {
		t.Errorf("enhancement not applied: %q", res.Lesson.ContentHTML)
	}
}

type lessonRecordWithVideo struct{}

func (lessonRecordWithVideo) Process(_ context.Context, fd domain.FileDescriptor) domain.LessonRecord {
	return domain.LessonRecord{
		Title:       "v",
		ContentHTML: "<p>https://youtu.be/abc123</p>",
	}
}

func TestFindFile(t *testing.T) {
	m := NewManager(&fakeLister{files: testFiles()}, fakeProcessor{}, nil, "folder")

	fd, err := m.FindFile(context.Background(), "f2")
	if err != nil {
		t.Fatalf("FindFile: %v", err)
	}
	if fd.Name != "Two.txt" {
		t.Errorf("found %+v", fd)
	}

	if _, err := m.FindFile(context.Background(), "nope"); err == nil {
		t.Error("expected error for unknown file id")
	}
}

func TestProcessAllListError(t *testing.T) {
	m := NewManager(&fakeLister{err: errors.New("auth expired")}, fakeProcessor{}, nil, "folder")
	if _, err := m.ProcessAll(context.Background(), Options{}); err == nil {
		t.Error("expected listing error to propagate")
	}
}
