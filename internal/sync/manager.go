package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/domain"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/getcourse"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/lesson"
)

// ErrNoPublisher is returned when a publish is requested but no publisher is
// configured. It fires before any file is touched.
var ErrNoPublisher = errors.New("sync: publishing requested but GetCourse is not configured")

// Lister is the folder-listing slice of the Drive client.
type Lister interface {
	ListFolder(ctx context.Context, folderID string) ([]domain.FileDescriptor, error)
}

// Processor turns a file descriptor into a lesson record.
type Processor interface {
	Process(ctx context.Context, fd domain.FileDescriptor) domain.LessonRecord
}

// Publisher creates lessons on the remote platform.
type Publisher interface {
	CreateLesson(ctx context.Context, l getcourse.Lesson) (getcourse.CreateResult, error)
}

// Options controls one process-and-publish invocation.
type Options struct {
	CourseID string
	StreamID string

	// Publish pushes each processed lesson to GetCourse. Off means dry run.
	Publish bool

	Enhance lesson.Options
}

// Result is the outcome for a single file.
type Result struct {
	File   domain.FileDescriptor
	Lesson domain.LessonRecord
	Err    error
}

// Report summarizes a batch run: counts plus per-file error messages.
// One file's failure never aborts the batch.
type Report struct {
	Total     int
	Processed int
	Results   []Result
	Errors    []string
}

// Manager drives the sync: list files, process each sequentially, publish.
// Processing is deliberately sequential; results and errors are owned by the
// loop and never shared.
type Manager struct {
	lister    Lister
	processor Processor
	publisher Publisher
	folderID  string
}

func NewManager(lister Lister, proc Processor, pub Publisher, folderID string) *Manager {
	return &Manager{
		lister:    lister,
		processor: proc,
		publisher: pub,
		folderID:  folderID,
	}
}

// ListFiles returns the flattened folder listing.
func (m *Manager) ListFiles(ctx context.Context) ([]domain.FileDescriptor, error) {
	return m.lister.ListFolder(ctx, m.folderID)
}

// FindFile looks a file up by id in the configured folder.
func (m *Manager) FindFile(ctx context.Context, fileID string) (domain.FileDescriptor, error) {
	files, err := m.ListFiles(ctx)
	if err != nil {
		return domain.FileDescriptor{}, err
	}
	for _, f := range files {
		if f.ID == fileID {
			return f, nil
		}
	}
	return domain.FileDescriptor{}, fmt.Errorf("sync: file %q not found in folder %s", fileID, m.folderID)
}

// ProcessFile processes one file: pipeline, enhancement, optional publish.
// Processing itself cannot fail (extraction degrades to placeholders); only
// the publish step can set Result.Err.
func (m *Manager) ProcessFile(ctx context.Context, fd domain.FileDescriptor, opts Options) Result {
	log.Info().Str("file", fd.Name).Str("id", fd.ID).Str("mime", fd.MimeType).Msg("processing")

	rec := m.processor.Process(ctx, fd)
	rec.ContentHTML = lesson.Enhance(rec.ContentHTML, opts.Enhance)

	res := Result{File: fd, Lesson: rec}
	if !opts.Publish {
		return res
	}
	if m.publisher == nil {
		res.Err = ErrNoPublisher
		return res
	}

	created, err := m.publisher.CreateLesson(ctx, getcourse.Lesson{
		Title:       rec.Title,
		Description: rec.Description,
		Content:     rec.ContentHTML,
		CourseID:    opts.CourseID,
		StreamID:    opts.StreamID,
	})
	if err != nil {
		log.Error().Err(err).Str("file", fd.Name).Msg("publish failed")
		res.Err = fmt.Errorf("publish %s: %w", fd.Name, err)
		return res
	}

	res.Lesson.RemoteID = created.LessonID
	log.Info().Str("file", fd.Name).Str("lesson_id", created.LessonID).Msg("published")
	return res
}

// ProcessAll runs the pipeline over every file in the folder. Per-file
// failures are collected into the report; a listing failure or missing
// publisher configuration aborts before any file is processed.
func (m *Manager) ProcessAll(ctx context.Context, opts Options) (Report, error) {
	if opts.Publish && m.publisher == nil {
		return Report{}, ErrNoPublisher
	}

	files, err := m.ListFiles(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{Total: len(files)}
	for _, fd := range files {
		res := m.ProcessFile(ctx, fd, opts)
		report.Results = append(report.Results, res)
		if res.Err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", fd.Name, res.Err))
			continue
		}
		report.Processed++
	}

	log.Info().Int("processed", report.Processed).Int("total", report.Total).Int("errors", len(report.Errors)).Msg("batch done")
	return report, nil
}
