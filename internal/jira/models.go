package jira

// Sentinel values substituted for absent backend fields. Canonical records
// always carry either real data or one of these, never an empty nested lookup.
const (
	Untitled   = "untitled"
	Unknown    = "unknown"
	Unassigned = "unassigned"
	NoPriority = "no priority"
)

// Issue is the canonical issue record handed to consumers. Every field is
// populated, so callers never need nil checks.
type Issue struct {
	Key         string
	Summary     string
	Status      string
	Assignee    string
	Priority    string
	Type        string
	Created     string
	Updated     string
	Description string
}

// Project is the canonical project record.
type Project struct {
	Key  string
	Name string
	Type string
	Lead string
}

// issueFromWire maps a raw backend issue into the canonical model,
// substituting sentinels for absent fields.
func issueFromWire(raw rawIssue) Issue {
	f := raw.Fields
	issue := Issue{
		Key:         raw.Key,
		Summary:     Untitled,
		Status:      Unknown,
		Assignee:    Unassigned,
		Priority:    NoPriority,
		Type:        Unknown,
		Created:     f.Created,
		Updated:     f.Updated,
		Description: f.Description.PlainText(),
	}
	if f.Summary != "" {
		issue.Summary = f.Summary
	}
	if f.Status != nil && f.Status.Name != "" {
		issue.Status = f.Status.Name
	}
	if f.Assignee != nil && f.Assignee.DisplayName != "" {
		issue.Assignee = f.Assignee.DisplayName
	}
	if f.Priority != nil && f.Priority.Name != "" {
		issue.Priority = f.Priority.Name
	}
	if f.IssueType != nil && f.IssueType.Name != "" {
		issue.Type = f.IssueType.Name
	}
	return issue
}

// projectFromWire maps a raw backend project into the canonical model.
func projectFromWire(raw rawProject) Project {
	project := Project{
		Key:  raw.Key,
		Name: raw.Name,
		Type: Unknown,
		Lead: Unassigned,
	}
	if raw.ProjectTypeKey != "" {
		project.Type = raw.ProjectTypeKey
	}
	if raw.Lead != nil && raw.Lead.DisplayName != "" {
		project.Lead = raw.Lead.DisplayName
	}
	return project
}
