package jira

// searchResult represents the top-level structure from the Jira search API.
type searchResult struct {
	Issues []rawIssue `json:"issues"`
}

// rawIssue is a single issue as returned by the search and issue endpoints.
type rawIssue struct {
	Key    string `json:"key"`
	Fields fields `json:"fields"`
}

// fields represents the nested issue fields requested by the client.
type fields struct {
	Summary     string   `json:"summary"`
	Status      *named   `json:"status"`
	Assignee    *user    `json:"assignee"` // nullable
	Priority    *named   `json:"priority"` // nullable
	IssueType   *named   `json:"issuetype"`
	Created     string   `json:"created"`
	Updated     string   `json:"updated"`
	Description *DocNode `json:"description"` // nullable rich-text document
}

// named is any nested backend object referenced only by its display name.
type named struct {
	Name string `json:"name"`
}

// user represents the assignee of an issue or the lead of a project.
type user struct {
	DisplayName string `json:"displayName"`
}

// rawProject is a project entry from the project list endpoint.
type rawProject struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	ProjectTypeKey string `json:"projectTypeKey"`
	Lead           *user  `json:"lead"` // nullable
}

// transitionsResult is the response of the issue transitions endpoint.
type transitionsResult struct {
	Transitions []transition `json:"transitions"`
}

// transition is one available state change for an issue.
type transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DocNode is one node of an Atlassian rich-text document. The same shape is
// used for the document root, paragraphs, and text runs.
type DocNode struct {
	Type    string    `json:"type"`
	Version int       `json:"version,omitempty"`
	Text    string    `json:"text,omitempty"`
	Content []DocNode `json:"content,omitempty"`
}

// NewDoc wraps plain text in the single-paragraph document structure expected
// by the issue create endpoint.
func NewDoc(text string) *DocNode {
	return &DocNode{
		Type:    "doc",
		Version: 1,
		Content: []DocNode{{
			Type: "paragraph",
			Content: []DocNode{{
				Type: "text",
				Text: text,
			}},
		}},
	}
}

// PlainText extracts the first text run of the first content block. A nil
// document, a document without blocks, or a block without runs all yield an
// empty string.
func (d *DocNode) PlainText() string {
	if d == nil || len(d.Content) == 0 {
		return ""
	}
	block := d.Content[0]
	if len(block.Content) == 0 {
		return ""
	}
	return block.Content[0].Text
}
