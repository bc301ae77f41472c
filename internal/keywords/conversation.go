package keywords

import (
	"sort"
	"strings"

	"chatads/internal/models"
)

const (
	// DefaultMaxTurns is the conversation window for keyword aggregation.
	// The 2^i recency weight is sized for this window (1x..16x); widening
	// the window grows weights exponentially, so treat them as a pair.
	DefaultMaxTurns = 5

	// maxConversationKeywords caps the aggregated keyword list.
	maxConversationKeywords = 7

	// Query composition: conversation context first, current message second.
	queryConversationTerms = 4
	queryCurrentTerms      = 2
	maxQueryTerms          = 5
)

// FromConversation folds Extract over the last maxTurns user/assistant
// turns, weighting each turn's keywords by 2^i where i is the turn's
// position in the retained window (0 = oldest). Returns up to 7 keywords
// ranked by accumulated weight, ties broken by first encounter.
func (e *Extractor) FromConversation(msgs []models.Message, maxTurns int) []string {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	var recent []models.Message
	for _, m := range msgs {
		if m.Role == models.RoleUser || m.Role == models.RoleAssistant {
			recent = append(recent, m)
		}
	}
	if len(recent) > maxTurns {
		recent = recent[len(recent)-maxTurns:]
	}
	if len(recent) == 0 {
		return nil
	}

	type ranked struct {
		keyword string
		weight  int
	}
	scores := make(map[string]int)
	var order []string

	for i, m := range recent {
		weight := 1 << i
		for _, kw := range e.Extract(m.Content) {
			if _, ok := scores[kw]; !ok {
				order = append(order, kw)
			}
			scores[kw] += weight
		}
	}

	list := make([]ranked, 0, len(order))
	for _, kw := range order {
		list = append(list, ranked{keyword: kw, weight: scores[kw]})
	}
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].weight > list[b].weight
	})

	if len(list) > maxConversationKeywords {
		list = list[:maxConversationKeywords]
	}
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.keyword
	}
	return out
}

// BuildQuery composes the ad-source search query: up to 4 conversation
// keywords (already recency-ranked) followed by up to 2 keywords from the
// current message, deduplicated in order and capped at 5 terms. Conversation
// context takes the slots before the immediate message does.
func (e *Extractor) BuildQuery(currentMessage string, conversationKeywords []string) string {
	current := e.Extract(currentMessage)

	combined := make([]string, 0, maxQueryTerms)
	combined = append(combined, firstN(conversationKeywords, queryConversationTerms)...)
	combined = append(combined, firstN(current, queryCurrentTerms)...)

	seen := make(map[string]struct{}, len(combined))
	var unique []string
	for _, kw := range combined {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		unique = append(unique, kw)
		if len(unique) == maxQueryTerms {
			break
		}
	}

	return strings.Join(unique, " ")
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
