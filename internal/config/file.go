package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration file schema. Values present
// in the file override environment values; zero values leave the environment
// result untouched.
type FileConfig struct {
	Drive struct {
		FolderID        string `yaml:"folderId"`
		CredentialsFile string `yaml:"credentialsFile"`
	} `yaml:"drive"`

	GetCourse struct {
		Account      string `yaml:"account"`
		APIKey       string `yaml:"apiKey"`
		CreateAction string `yaml:"createAction"`
	} `yaml:"getcourse"`

	Enhance struct {
		EmbedVideos    *bool `yaml:"embedVideos"`
		OptimizeImages *bool `yaml:"optimizeImages"`
	} `yaml:"enhance"`

	UsersDB string `yaml:"usersDb"`
}

// LoadFile parses a YAML config file and overlays it on cfg.
func LoadFile(path string, cfg Config) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return fc.apply(cfg), nil
}

func (fc FileConfig) apply(cfg Config) Config {
	if fc.Drive.FolderID != "" {
		cfg.DriveFolderID = fc.Drive.FolderID
	}
	if fc.Drive.CredentialsFile != "" {
		cfg.GoogleCredentialsFile = fc.Drive.CredentialsFile
	}
	if fc.GetCourse.Account != "" {
		cfg.GetCourseAccount = fc.GetCourse.Account
	}
	if fc.GetCourse.APIKey != "" {
		cfg.GetCourseAPIKey = fc.GetCourse.APIKey
	}
	if fc.GetCourse.CreateAction != "" {
		cfg.GetCourseCreateAction = fc.GetCourse.CreateAction
	}
	if fc.Enhance.EmbedVideos != nil {
		cfg.EmbedVideos = *fc.Enhance.EmbedVideos
	}
	if fc.Enhance.OptimizeImages != nil {
		cfg.OptimizeImages = *fc.Enhance.OptimizeImages
	}
	if fc.UsersDB != "" {
		cfg.UsersDBPath = fc.UsersDB
	}
	return cfg
}
