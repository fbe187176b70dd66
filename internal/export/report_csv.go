package export

import (
	"encoding/csv"
	"io"

	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/sync"
)

// Column order is part of the report format; keep it stable.
var reportHeader = []string{
	"SOURCE_FILE_ID",
	"SOURCE_FILE_NAME",
	"MIME_TYPE",
	"TITLE",
	"DESCRIPTION",
	"GETCOURSE_LESSON_ID",
	"STATUS",
	"ERROR",
}

// WriteReportCSV renders a sync run as CSV, one row per file.
func WriteReportCSV(w io.Writer, report sync.Report) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, res := range report.Results {
		if err := cw.Write(toReportRow(res)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toReportRow(res sync.Result) []string {
	status := "ok"
	errMsg := ""
	if res.Err != nil {
		status = "error"
		errMsg = res.Err.Error()
	}

	return []string{
		res.Lesson.SourceFileID,
		res.Lesson.SourceFileName,
		res.Lesson.MimeType,
		res.Lesson.Title,
		res.Lesson.Description,
		res.Lesson.RemoteID,
		status,
		errMsg,
	}
}
