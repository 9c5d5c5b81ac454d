package server

import (
	"strings"
	"text/template"
	"time"

	"github.com/gi8lino/jiramcp/internal/jira"

	"github.com/Masterminds/sprig/v3"
)

// funcMap extends sprig's text funcs with Jira-specific helpers.
func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["formatDate"] = formatDate
	return fm
}

// formatDate parses a Jira timestamp and returns it formatted using the provided layout.
// If parsing fails, the original string is returned.
func formatDate(input, layout string) string {
	input = strings.Replace(input, "Z", "+0000", 1) // normalize timezone
	parsed, err := time.Parse("2006-01-02T15:04:05.000-0700", input)
	if err != nil {
		return input
	}
	return parsed.Format(layout)
}

var (
	issueListTmpl = template.Must(template.New("issue_list").Funcs(funcMap()).Parse(
		`Found {{ len . }} {{ plural "issue" "issues" (len .) }}:

{{ range . }}{{ .Key }} - {{ .Summary }}
  Status:   {{ .Status }}
  Assignee: {{ .Assignee }}
  Priority: {{ .Priority }}
  Updated:  {{ formatDate .Updated "2006-01-02" }}

{{ end }}`))

	issueDetailTmpl = template.Must(template.New("issue_detail").Funcs(funcMap()).Parse(
		`{{ .Issue.Key }} - {{ .Issue.Summary }}

Status:   {{ .Issue.Status }}
Assignee: {{ .Issue.Assignee }}
Priority: {{ .Issue.Priority }}
Type:     {{ .Issue.Type }}
Created:  {{ formatDate .Issue.Created "2006-01-02" }}
Updated:  {{ formatDate .Issue.Updated "2006-01-02" }}
{{- if .Issue.Description }}

Description:
{{ .Issue.Description | trim }}
{{- end }}

View in Jira: {{ .BaseURL }}/browse/{{ .Issue.Key }}`))

	createdIssueTmpl = template.Must(template.New("created_issue").Funcs(funcMap()).Parse(
		`Issue created: {{ .Key }} - {{ .Summary }}
View in Jira: {{ .BaseURL }}/browse/{{ .Key }}`))

	myIssuesTmpl = template.Must(template.New("my_issues").Funcs(funcMap()).Parse(
		`My issues ({{ len . }} total):

{{ range . }}{{ .Key }} - {{ .Summary }}
  {{ .Status }} | {{ .Priority }}

{{ end }}`))
)

// renderIssueList renders the search_issues result block.
func renderIssueList(issues []jira.Issue) (string, error) {
	var sb strings.Builder
	if err := issueListTmpl.Execute(&sb, issues); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// renderIssueDetail renders the get_issue result block.
func renderIssueDetail(issue jira.Issue, baseURL string) (string, error) {
	var sb strings.Builder
	data := struct {
		Issue   jira.Issue
		BaseURL string
	}{issue, baseURL}
	if err := issueDetailTmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// renderCreatedIssue renders the create_issue confirmation block.
func renderCreatedIssue(key, summary, baseURL string) (string, error) {
	var sb strings.Builder
	data := struct {
		Key     string
		Summary string
		BaseURL string
	}{key, summary, baseURL}
	if err := createdIssueTmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// renderMyIssues renders the get_my_issues result block.
func renderMyIssues(issues []jira.Issue) (string, error) {
	var sb strings.Builder
	if err := myIssuesTmpl.Execute(&sb, issues); err != nil {
		return "", err
	}
	return sb.String(), nil
}
