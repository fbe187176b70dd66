package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Google Drive
	DriveFolderID         string
	GoogleCredentialsFile string
	GoogleCredentialsJSON string

	// GetCourse
	GetCourseAPIKey       string
	GetCourseAccount      string
	GetCourseAPIURL       string
	GetCourseCreateAction string

	// Content enhancement defaults
	EmbedVideos    bool
	OptimizeImages bool

	// User record store
	UsersDBPath string

	// SFTP report drop
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
}

func Load() Config {
	return Config{
		// Google Drive
		DriveFolderID:         os.Getenv("GOOGLE_DRIVE_FOLDER_ID"),
		GoogleCredentialsFile: getenv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		GoogleCredentialsJSON: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"),

		// GetCourse
		GetCourseAPIKey:       os.Getenv("GETCOURSE_API_KEY"),
		GetCourseAccount:      os.Getenv("GETCOURSE_ACCOUNT"),
		// Empty means the account-derived host; set only for self-hosted
		// installs.
		GetCourseAPIURL:       os.Getenv("GETCOURSE_API_URL"),
		GetCourseCreateAction: getenv("GETCOURSE_CREATE_ACTION", "lessons.add"),

		// Enhancement defaults
		EmbedVideos:    getenvBool("VIDCOURSE_EMBED_VIDEOS", true),
		OptimizeImages: getenvBool("VIDCOURSE_OPTIMIZE_IMAGES", true),

		// User record store
		UsersDBPath: getenv("VIDCOURSE_USERS_DB", "users.db"),

		// SFTP report drop
		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", false),
	}
}

// Missing returns the names of required settings that are not set. Publishing
// needs all three; listing/processing without publish only needs the folder.
func (c Config) Missing() []string {
	var missing []string
	if c.DriveFolderID == "" {
		missing = append(missing, "GOOGLE_DRIVE_FOLDER_ID")
	}
	if c.GetCourseAPIKey == "" {
		missing = append(missing, "GETCOURSE_API_KEY")
	}
	if c.GetCourseAccount == "" {
		missing = append(missing, "GETCOURSE_ACCOUNT")
	}
	return missing
}

func (c Config) Validate() bool {
	return len(c.Missing()) == 0
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
