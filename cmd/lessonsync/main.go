package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/config"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/drive"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/export"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/getcourse"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/lesson"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/sftpclient"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/sync"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/userstore"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath string
		listOnly   bool
		processAll bool
		fileID     string
		courseID   string
		streamID   string
		noCreate   bool
		embedVideos    bool
		optimizeImages bool
		userRef    string
		exportPath string
		upload     bool
		verbose    bool
	)

	flag.StringVar(&configPath, "config", "", "Optional YAML config file overlaying environment settings")
	flag.BoolVar(&listOnly, "list", false, "List files in the Drive folder and exit")
	flag.BoolVar(&processAll, "process-all", false, "Process every file in the Drive folder")
	flag.StringVar(&fileID, "file-id", "", "Process a single file by Drive file id")
	flag.StringVar(&courseID, "course-id", "", "GetCourse course id to attach lessons to")
	flag.StringVar(&streamID, "stream-id", "", "GetCourse stream id or stream URL (e.g. .../stream/view/id/934935666)")
	flag.BoolVar(&noCreate, "no-create", false, "Process lessons but do not create them in GetCourse")
	flag.BoolVar(&embedVideos, "embed-videos", true, "Rewrite YouTube links into embedded players")
	flag.BoolVar(&optimizeImages, "optimize-images", true, "Add responsive styling to images")
	flag.StringVar(&userRef, "user", "", "Load GetCourse credentials and folder from this user record (id or email)")
	flag.StringVar(&exportPath, "export", "", "Write a CSV report of the run to this path")
	flag.BoolVar(&upload, "upload", false, "Upload the CSV report to the configured SFTP drop")
	flag.BoolVar(&verbose, "v", false, "Verbose (debug) logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := config.Load()
	if configPath != "" {
		var err error
		cfg, err = config.LoadFile(configPath, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("config file")
		}
	}

	ctx := context.Background()

	if userRef != "" {
		if err := applyUser(ctx, &cfg, userRef); err != nil {
			log.Fatal().Err(err).Str("user", userRef).Msg("user record")
		}
	}

	if !listOnly && !processAll && fileID == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Fail fast on publisher configuration before touching any file.
	publish := !noCreate && !listOnly
	if publish {
		if missing := cfg.Missing(); len(missing) > 0 {
			log.Fatal().Strs("missing", missing).Msg("missing required configuration")
		}
	} else if cfg.DriveFolderID == "" {
		log.Fatal().Msg("missing required configuration: GOOGLE_DRIVE_FOLDER_ID")
	}

	log.Info().Msg("connecting to Google Drive")
	driveClient, err := drive.NewClient(ctx, drive.ClientOptions(cfg.GoogleCredentialsFile, cfg.GoogleCredentialsJSON)...)
	if err != nil {
		log.Fatal().Err(err).Msg("drive client")
	}

	var pub sync.Publisher
	if publish {
		gc, err := getcourse.New(cfg.GetCourseAccount, cfg.GetCourseAPIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("getcourse client")
		}
		gc.CreateAction = cfg.GetCourseCreateAction
		gc.BaseURL = cfg.GetCourseAPIURL
		pub = gc
	}

	mgr := sync.NewManager(driveClient, lesson.NewProcessor(driveClient), pub, cfg.DriveFolderID)

	opts := sync.Options{
		CourseID: courseID,
		StreamID: resolveStreamID(streamID),
		Publish:  publish,
		Enhance: lesson.Options{
			EmbedVideos:    embedVideos && cfg.EmbedVideos,
			OptimizeImages: optimizeImages && cfg.OptimizeImages,
		},
	}

	switch {
	case listOnly:
		runList(ctx, mgr)

	case fileID != "":
		fd, err := mgr.FindFile(ctx, fileID)
		if err != nil {
			log.Fatal().Err(err).Msg("lookup file")
		}
		res := mgr.ProcessFile(ctx, fd, opts)
		report := sync.Report{Total: 1, Results: []sync.Result{res}}
		if res.Err != nil {
			report.Errors = append(report.Errors, res.Err.Error())
		} else {
			report.Processed = 1
		}
		printResult(res)
		finishReport(ctx, cfg, report, exportPath, upload)
		if res.Err != nil {
			os.Exit(1)
		}

	case processAll:
		report, err := mgr.ProcessAll(ctx, opts)
		if err != nil {
			log.Fatal().Err(err).Msg("process all")
		}
		fmt.Printf("Processed %d/%d lesson(s)\n", report.Processed, report.Total)
		for _, msg := range report.Errors {
			fmt.Printf("  error: %s\n", msg)
		}
		finishReport(ctx, cfg, report, exportPath, upload)
		if len(report.Errors) > 0 {
			os.Exit(1)
		}
	}
}

func runList(ctx context.Context, mgr *sync.Manager) {
	files, err := mgr.ListFiles(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list files")
	}
	if len(files) == 0 {
		fmt.Println("No files found in the configured folder.")
		return
	}
	fmt.Printf("Found %d file(s):\n", len(files))
	for i, f := range files {
		fmt.Printf("%d) %s (id=%s)\n   type=%s modified=%s\n", i+1, f.Name, f.ID, f.MimeType, f.ModifiedTime)
	}
}

func printResult(res sync.Result) {
	fmt.Printf("Processed: %s\n", res.Lesson.Title)
	desc := res.Lesson.Description
	if len(desc) > 100 {
		desc = desc[:100] + "…"
	}
	fmt.Printf("  description: %s\n", desc)
	if res.Lesson.RemoteID != "" {
		fmt.Printf("  getcourse lesson id: %s\n", res.Lesson.RemoteID)
	}
	if res.Err != nil {
		fmt.Printf("  error: %v\n", res.Err)
	}
}

// finishReport writes and optionally uploads the CSV run report.
func finishReport(ctx context.Context, cfg config.Config, report sync.Report, exportPath string, upload bool) {
	if exportPath == "" {
		if upload {
			log.Warn().Msg("-upload requires -export; skipping")
		}
		return
	}

	var buf bytes.Buffer
	if err := export.WriteReportCSV(&buf, report); err != nil {
		log.Fatal().Err(err).Msg("render report")
	}
	if err := os.WriteFile(exportPath, buf.Bytes(), 0o644); err != nil {
		log.Fatal().Err(err).Str("path", exportPath).Msg("write report")
	}
	log.Info().Str("path", exportPath).Msg("report written")

	if !upload {
		return
	}
	err := sftpclient.Upload(ctx, sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
	}, bytes.NewReader(buf.Bytes()), remoteReportName())
	if err != nil {
		log.Fatal().Err(err).Msg("upload report")
	}
	log.Info().Msg("report uploaded")
}

func remoteReportName() string {
	return fmt.Sprintf("lessonsync-%s.csv", time.Now().UTC().Format("20060102-150405"))
}

// applyUser overlays the referenced user's stored credentials and folder onto
// the configuration.
func applyUser(ctx context.Context, cfg *config.Config, ref string) error {
	store, err := userstore.Open(cfg.UsersDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var u userstore.User
	if strings.Contains(ref, "@") {
		u, err = store.GetByEmail(ctx, ref)
	} else {
		u, err = store.Get(ctx, ref)
	}
	if err != nil {
		return err
	}

	if u.GetCourseAccount != "" {
		cfg.GetCourseAccount = u.GetCourseAccount
	}
	if u.GetCourseAPIKey != "" {
		cfg.GetCourseAPIKey = u.GetCourseAPIKey
	}
	if u.DriveFolderID != "" {
		cfg.DriveFolderID = u.DriveFolderID
	}
	return nil
}

// resolveStreamID accepts either a bare stream id or a full GetCourse teach
// URL and returns the id.
func resolveStreamID(v string) string {
	if v == "" {
		return ""
	}
	if id := getcourse.StreamIDFromURL(v); id != "" {
		return id
	}
	return v
}
