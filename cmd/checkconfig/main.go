package main

import (
	"fmt"
	"os"

	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/config"
)

// checkconfig reports the state of every setting the sync uses and exits
// non-zero when a required one is missing.
func main() {
	cfg := config.Load()

	fmt.Println("VidCourse configuration check")
	fmt.Println("=============================")

	var errors, warnings []string

	fmt.Println("\nGoogle Drive:")
	checkRequired("GOOGLE_DRIVE_FOLDER_ID", cfg.DriveFolderID, &errors)
	if cfg.GoogleCredentialsJSON != "" {
		fmt.Println("  ok   GOOGLE_APPLICATION_CREDENTIALS_JSON: set (inline)")
	} else if _, err := os.Stat(cfg.GoogleCredentialsFile); err == nil {
		fmt.Printf("  ok   GOOGLE_CREDENTIALS_FILE: %s\n", cfg.GoogleCredentialsFile)
	} else {
		fmt.Printf("  warn GOOGLE_CREDENTIALS_FILE: %s not found (application default credentials will be tried)\n", cfg.GoogleCredentialsFile)
		warnings = append(warnings, "no explicit Google credentials configured")
	}

	fmt.Println("\nGetCourse:")
	checkRequired("GETCOURSE_API_KEY", masked(cfg.GetCourseAPIKey), &errors)
	checkRequired("GETCOURSE_ACCOUNT", cfg.GetCourseAccount, &errors)
	fmt.Printf("  ok   GETCOURSE_CREATE_ACTION: %s\n", cfg.GetCourseCreateAction)

	fmt.Println("\nSFTP report drop (optional):")
	if cfg.SFTPHost == "" {
		fmt.Println("  info SFTP_HOST: not set (report upload disabled)")
	} else {
		fmt.Printf("  ok   SFTP_HOST: %s:%d dir=%s\n", cfg.SFTPHost, cfg.SFTPPort, cfg.SFTPDir)
		if cfg.SFTPUser == "" || cfg.SFTPPass == "" {
			warnings = append(warnings, "SFTP_HOST set but SFTP_USER/SFTP_PASS missing")
			fmt.Println("  warn SFTP_USER / SFTP_PASS: missing")
		}
	}

	fmt.Println("\nUser store:")
	fmt.Printf("  ok   VIDCOURSE_USERS_DB: %s\n", cfg.UsersDBPath)

	fmt.Println()
	if len(errors) > 0 {
		fmt.Printf("Errors (%d):\n", len(errors))
		for _, e := range errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if len(warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	if len(errors) == 0 && len(warnings) == 0 {
		fmt.Println("Configuration looks good.")
	}

	if len(errors) > 0 {
		os.Exit(1)
	}
}

func checkRequired(name, value string, errors *[]string) {
	if value == "" {
		fmt.Printf("  MISSING %s\n", name)
		*errors = append(*errors, name+" is not set")
		return
	}
	fmt.Printf("  ok   %s: %s\n", name, value)
}

func masked(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}
