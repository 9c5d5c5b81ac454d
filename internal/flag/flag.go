package flag

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/gi8lino/jiramcp/internal/logging"

	"github.com/containeroo/resolver"
	"github.com/containeroo/tinyflags"
)

// Config holds all application and Jira-specific configuration.
type Config struct {
	JiraAPIURL      *url.URL          // REST API base URL (…/rest/api/3/)
	JiraBaseURL     string            // Site URL used for browse links
	JiraEmail       string            // Account email for basic auth
	JiraToken       string            // API token for basic auth
	JiraBearerToken string            // Bearer token (Jira Server/DC)
	Timeout         time.Duration     // HTTP request timeout
	SkipTLSVerify   bool              // Skip TLS certificate verification
	Config          string            // Optional settings file path
	Debug           bool              // Enables debug logging
	LogFormat       logging.LogFormat // Log output format (text or json)
}

// ParseArgs parses CLI arguments into Config, handling version/help flags.
// Every flag can also be provided via environment with the JIRA_ prefix
// (e.g. JIRA_URL, JIRA_EMAIL, JIRA_API_TOKEN).
func ParseArgs(version string, args []string, out io.Writer, getEnv func(string) string) (Config, error) {
	var cfg Config
	tf := tinyflags.NewFlagSet("jiramcp", tinyflags.ContinueOnError)
	tf.Version(version)
	tf.SetGetEnvFn(getEnv)
	tf.EnvPrefix("JIRA")
	tf.SetOutput(out)

	// Jira
	rawURL := tf.String("url", "", "Jira site URL (e.g. https://org.atlassian.net)").
		Placeholder("URL").
		Value()
	tf.StringVar(&cfg.JiraEmail, "email", "", "Account email for basic auth").Value()
	token := tf.String("api-token", "", "API token for basic auth. Supports env: and file: indirection.").Value()
	bearer := tf.String("bearer-token", "", "Bearer token for Jira Server/DC. Supports env: and file: indirection.").Value()
	timeout := tf.Duration("timeout", 30*time.Second, "HTTP request timeout").
		Validate(func(d time.Duration) error {
			if d <= 0 {
				return fmt.Errorf("timeout must be > 0.")
			}
			return nil
		}).
		Value()
	tf.BoolVar(&cfg.SkipTLSVerify, "skip-tls-verify", false, "Skip TLS certificate verification").Value()

	// Application
	tf.StringVar(&cfg.Config, "config", "", "Path to optional settings file").Value()
	tf.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging").Value()
	logFormat := tf.String("log-format", "text", "Log format").Choices("text", "json").Short("l").Value()

	// Parse
	if err := tf.Parse(args); err != nil {
		return Config{}, err
	}

	// Post-parse
	cfg.LogFormat = logging.LogFormat(*logFormat)
	cfg.Timeout = *timeout

	apiURL, baseURL, err := normalizeURL(*rawURL)
	if err != nil {
		return Config{}, err
	}
	cfg.JiraAPIURL = apiURL
	cfg.JiraBaseURL = baseURL

	if cfg.JiraEmail != "" && !strings.Contains(cfg.JiraEmail, "@") {
		return Config{}, fmt.Errorf("email must contain @")
	}

	// Credentials may be indirect (env: or file: scheme) so secrets can stay
	// out of shell history, e.g. file:/run/secrets/jira-token.
	if cfg.JiraToken, err = resolver.ResolveVariable(*token); err != nil {
		return Config{}, fmt.Errorf("resolve api token: %w", err)
	}
	if cfg.JiraBearerToken, err = resolver.ResolveVariable(*bearer); err != nil {
		return Config{}, fmt.Errorf("resolve bearer token: %w", err)
	}

	return cfg, nil
}

// normalizeURL validates the configured Jira URL and derives both the site
// base URL (for browse links) and the versioned REST API base URL. A URL
// already carrying a /rest/api/<version> path is respected; otherwise
// /rest/api/3/ is appended.
func normalizeURL(raw string) (apiURL *url.URL, baseURL string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, "", fmt.Errorf("missing Jira URL (--url / JIRA_URL)")
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, "", fmt.Errorf("invalid Jira URL %q", raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, "", fmt.Errorf("invalid Jira URL scheme %q", parsed.Scheme)
	}

	trimmed := strings.TrimRight(raw, "/")
	if idx := strings.Index(trimmed, "/rest/api/"); idx >= 0 {
		apiURL, err = url.Parse(trimmed + "/")
		if err != nil {
			return nil, "", fmt.Errorf("invalid Jira URL %q", raw)
		}
		return apiURL, trimmed[:idx], nil
	}

	apiURL, err = url.Parse(trimmed + "/rest/api/3/")
	if err != nil {
		return nil, "", fmt.Errorf("invalid Jira URL %q", raw)
	}
	return apiURL, trimmed, nil
}
