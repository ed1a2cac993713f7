package generation

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	scoreFirstName = 20
	scoreCompany   = 15
	scoreActivity  = 30
	scoreTechStack = 20
	penaltyGeneric = 10

	activityKeywordCount = 5
)

// genericOpeners are phrases that mark a message as templated.
var genericOpeners = []string{
	"i hope this message finds you well",
	"i came across your profile",
	"quick question",
	"touching base",
}

// PersonalizationScore rates how specific a generated outreach message is
// to the contact described by the context. Matching is case-insensitive
// substring matching; the result is clamped to [0, 100].
//
// Recognised context keys: name, company, recent_activity (list of
// {summary} objects or strings), tech_stack (list or comma separated).
func PersonalizationScore(text string, contact map[string]any) int {
	fold := cases.Fold()
	msg := fold.String(text)
	mentions := func(term string) bool {
		term = strings.TrimSpace(term)
		return term != "" && strings.Contains(msg, fold.String(term))
	}

	score := 0

	if fields := strings.Fields(stringField(contact, "name")); len(fields) > 0 && mentions(fields[0]) {
		score += scoreFirstName
	}

	if mentions(stringField(contact, "company")) {
		score += scoreCompany
	}

	for _, summary := range ActivitySummaries(contact) {
		keywords := strings.Fields(summary)
		if len(keywords) > activityKeywordCount {
			keywords = keywords[:activityKeywordCount]
		}
		if anyMentioned(keywords, mentions) {
			score += scoreActivity
			break
		}
	}

	if anyMentioned(ContactList(contact["tech_stack"]), mentions) {
		score += scoreTechStack
	}

	for _, phrase := range genericOpeners {
		score -= penaltyGeneric * strings.Count(msg, phrase)
	}

	return clamp(score, 0, 100)
}

func anyMentioned(terms []string, mentions func(string) bool) bool {
	for _, t := range terms {
		if mentions(t) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// ActivitySummaries returns the summaries under recent_activity. Items may
// be plain strings or objects with a summary field.
func ActivitySummaries(m map[string]any) []string {
	if m == nil {
		return nil
	}
	items, ok := m["recent_activity"].([]any)
	if !ok {
		return nil
	}
	summaries := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			summaries = append(summaries, v)
		case map[string]any:
			if s, ok := v["summary"].(string); ok {
				summaries = append(summaries, s)
			}
		}
	}
	return summaries
}

// ContactList reads a list-valued context field, accepting a comma
// separated string as well.
func ContactList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, item := range strings.Split(list, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	default:
		return nil
	}
}
