package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings tunes dispatcher defaults that are not part of the Jira
// credentials. All values have working defaults; the file is optional.
type Settings struct {
	SearchLimit      int    `yaml:"searchLimit"`      // default page size for the search_issues tool
	ResourceLimit    int    `yaml:"resourceLimit"`    // page size for resource reads
	MyIssuesLimit    int    `yaml:"myIssuesLimit"`    // page size for get_my_issues
	DefaultIssueType string `yaml:"defaultIssueType"` // issue type used when create_issue omits one
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		SearchLimit:      20,
		ResourceLimit:    20,
		MyIssuesLimit:    30,
		DefaultIssueType: "Task",
	}
}

// LoadConfig loads settings from the given path. An empty path yields the
// defaults; fields unset in the file keep their default values.
func LoadConfig(path string) (Settings, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %v", err)
	}
	return cfg, nil
}

// ValidateConfig checks the consistency of loaded settings.
func ValidateConfig(cfg *Settings) error {
	var errs []string

	if cfg.SearchLimit <= 0 {
		errs = append(errs, "searchLimit must be > 0")
	}
	if cfg.ResourceLimit <= 0 {
		errs = append(errs, "resourceLimit must be > 0")
	}
	if cfg.MyIssuesLimit <= 0 {
		errs = append(errs, "myIssuesLimit must be > 0")
	}
	if strings.TrimSpace(cfg.DefaultIssueType) == "" {
		errs = append(errs, "defaultIssueType must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid settings:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
