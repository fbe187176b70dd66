package lesson

import (
	"context"
	"strings"

	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/domain"
)

// Processor turns a Drive file descriptor into a normalized lesson record.
type Processor struct {
	extractor Extractor
}

func NewProcessor(src Source) *Processor {
	return &Processor{extractor: Extractor{Source: src}}
}

// Process runs extract -> format -> title -> description and assembles the
// record. It never fails outward: extraction has already degraded any problem
// to a placeholder string. Enhancement stays a separate step because its
// options vary per invocation (CLI flags, per-user settings) and must not be
// baked into the base record.
func (p *Processor) Process(ctx context.Context, fd domain.FileDescriptor) domain.LessonRecord {
	content := p.extractor.Extract(ctx, fd.ID, fd.MimeType)
	title := DeriveTitle(fd.Name, content)

	return domain.LessonRecord{
		Title:          title,
		Description:    DeriveDescription(descriptionSource(content, title), fd.Description, fd.Name),
		ContentHTML:    Format(content),
		SourceFileID:   fd.ID,
		SourceFileName: fd.Name,
		MimeType:       fd.MimeType,
	}
}

// descriptionSource drops the leading paragraph when it is exactly the
// derived title, so a heading line does not double as the description.
func descriptionSource(content, title string) string {
	first := content
	rest := ""
	if i := strings.Index(content, "\n\n"); i >= 0 {
		first, rest = content[:i], content[i+2:]
	}
	if strings.TrimSpace(first) == title && strings.TrimSpace(rest) != "" {
		return rest
	}
	return content
}
