// Package classify tags commit messages with a coarse intent category.
package classify

import (
	"strings"

	"github.com/SimoneSapienza/dev-wrapped/schema"
)

// rule maps a set of substrings to a tag. Rules are evaluated in order.
type rule struct {
	tag      schema.CommitType
	keywords []string
}

var rules = []rule{
	{schema.FeatureCommit, []string{"feat", "add", "new", "create"}},
	{schema.BugfixCommit, []string{"fix", "bug", "resolve", "patch", "hotfix"}},
	{schema.RefactorCommit, []string{"chore", "refactor", "style", "cleanup", "remove"}},
	{schema.DocsCommit, []string{"doc", "readme"}},
}

// Classify returns the commit type for message. Matching is case-insensitive
// substring search and the first matching rule wins, so "fix: add check"
// is a Feature. Empty messages are Other.
func Classify(message string) schema.CommitType {
	if message == "" {
		return schema.OtherCommit
	}
	msg := strings.ToLower(message)
	if strings.HasPrefix(msg, "merge") {
		return schema.MergeCommit
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(msg, kw) {
				return r.tag
			}
		}
	}
	return schema.OtherCommit
}
