package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/domain"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/sync"
)

func TestWriteReportCSV(t *testing.T) {
	report := sync.Report{
		Total:     2,
		Processed: 1,
		Results: []sync.Result{
			{
				Lesson: domain.LessonRecord{
					SourceFileID:   "f1",
					SourceFileName: "One.txt",
					MimeType:       "text/plain",
					Title:          "One",
					Description:    "first",
					RemoteID:       "1001",
				},
			},
			{
				Lesson: domain.LessonRecord{
					SourceFileID:   "f2",
					SourceFileName: "Two.txt",
					MimeType:       "text/plain",
					Title:          "Two",
				},
				Err: errors.New("remote unavailable"),
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteReportCSV(&buf, report); err != nil {
		t.Fatalf("WriteReportCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "SOURCE_FILE_ID" || rows[0][6] != "STATUS" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][5] != "1001" || rows[1][6] != "ok" || rows[1][7] != "" {
		t.Errorf("ok row wrong: %v", rows[1])
	}
	if rows[2][6] != "error" || rows[2][7] != "remote unavailable" {
		t.Errorf("error row wrong: %v", rows[2])
	}
}

func TestWriteReportCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReportCSV(&buf, sync.Report{}); err != nil {
		t.Fatalf("WriteReportCSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("empty report should still emit header, got %d rows", len(rows))
	}
}
