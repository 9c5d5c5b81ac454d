package jira

import (
	"fmt"
	"strings"
)

// BuildJQL turns high-level filter parameters into a single JQL expression.
//
// A non-empty raw query is returned verbatim and the remaining filters are
// ignored; the caller owns its correctness and escaping. Otherwise assignee
// and project conditions are joined with AND, where the literal "me" resolves
// to currentUser(). Filter values are inserted as quoted literals without
// escaping embedded quotes. With no filters at all, an ordering-only
// expression is returned.
func BuildJQL(raw, assignee, project string) string {
	if raw != "" {
		return raw
	}

	var conditions []string
	if assignee != "" {
		if strings.EqualFold(assignee, "me") {
			conditions = append(conditions, "assignee = currentUser()")
		} else {
			conditions = append(conditions, fmt.Sprintf("assignee = '%s'", assignee))
		}
	}
	if project != "" {
		conditions = append(conditions, fmt.Sprintf("project = '%s'", project))
	}

	if len(conditions) == 0 {
		return "order by updated DESC"
	}
	return strings.Join(conditions, " AND ")
}
