// Package keywords turns raw chat text into ad-targeting keywords and
// estimates the commercial intent of a message.
package keywords

import (
	"regexp"
	"strings"
)

// minTokenLen is the shortest token kept; anything of 2 characters or less
// is discarded before stop-word filtering.
const minTokenLen = 3

// defaultStopWords are common English function words plus chat-filler verbs
// ("want", "need", "looking", "get", "help") that carry no targeting value.
var defaultStopWords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your",
	"yours", "yourself", "yourselves", "he", "him", "his", "himself", "she",
	"her", "hers", "herself", "it", "its", "itself", "they", "them", "their",
	"theirs", "themselves", "what", "which", "who", "whom", "this", "that",
	"these", "those", "am", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "having", "do", "does", "did", "doing", "a", "an",
	"the", "and", "but", "if", "or", "because", "as", "until", "while", "of",
	"at", "by", "for", "with", "about", "against", "between", "into", "through",
	"during", "before", "after", "above", "below", "to", "from", "up", "down",
	"in", "out", "on", "off", "over", "under", "again", "further", "then",
	"once", "here", "there", "when", "where", "why", "how", "all", "both",
	"each", "few", "more", "most", "other", "some", "such", "no", "nor", "not",
	"only", "own", "same", "so", "than", "too", "very", "s", "t", "can", "will",
	"just", "don", "should", "now", "want", "need", "looking", "get", "help",
}

// defaultCommercialTerms each add 0.2 to the commercial-intent score.
var defaultCommercialTerms = []string{
	"buy", "purchase", "shop", "order", "price", "cost", "deal", "discount",
	"sale", "cheap", "best", "review", "recommend", "store", "online",
}

// defaultProductCategories form the product-category pattern worth 0.3.
var defaultProductCategories = []string{
	"laptop", "phone", "shoes", "camera", "headphone", "watch", "tv", "book",
	"game", "computer",
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// Extractor extracts keywords and scores commercial intent. The zero value
// is not usable; construct with New.
type Extractor struct {
	stopWords  map[string]struct{}
	commercial map[string]struct{}
	productRe  *regexp.Regexp
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithStopWords adds extra stop words on top of the built-in lexicon.
func WithStopWords(words []string) Option {
	return func(e *Extractor) {
		for _, w := range words {
			e.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithCommercialTerms adds extra commercial-intent terms.
func WithCommercialTerms(terms []string) Option {
	return func(e *Extractor) {
		for _, t := range terms {
			e.commercial[strings.ToLower(t)] = struct{}{}
		}
	}
}

// WithProductCategories replaces the product-category pattern terms.
func WithProductCategories(categories []string) Option {
	return func(e *Extractor) {
		if len(categories) > 0 {
			e.productRe = buildProductRe(categories)
		}
	}
}

// New creates an Extractor with the built-in lexicons, customized by opts.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		stopWords:  make(map[string]struct{}, len(defaultStopWords)),
		commercial: make(map[string]struct{}, len(defaultCommercialTerms)),
		productRe:  buildProductRe(defaultProductCategories),
	}
	for _, w := range defaultStopWords {
		e.stopWords[w] = struct{}{}
	}
	for _, t := range defaultCommercialTerms {
		e.commercial[t] = struct{}{}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func buildProductRe(categories []string) *regexp.Regexp {
	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(c))
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// Extract returns the deduplicated keywords of text: unigrams longer than
// two characters that are not stop words, plus adjacent-pair bigrams.
// Bigram adjacency is judged on the token stream before stop-word removal,
// so a stop word sitting between two keywords blocks their pairing; pairs
// containing a stop word are discarded. Degenerate input yields an empty
// slice.
func (e *Extractor) Extract(text string) []string {
	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(text), " ")

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) >= minTokenLen {
			words = append(words, w)
		}
	}

	seen := make(map[string]struct{}, len(words))
	var out []string
	add := func(kw string) {
		if _, ok := seen[kw]; !ok {
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}

	for _, w := range words {
		if !e.isStopWord(w) {
			add(w)
		}
	}

	for i := 0; i+1 < len(words); i++ {
		if !e.isStopWord(words[i]) && !e.isStopWord(words[i+1]) {
			add(words[i] + " " + words[i+1])
		}
	}

	return out
}

// CommercialIntent estimates purchase-readiness of text on a [0,1] scale:
// 0.2 per commercial-lexicon token plus 0.3 for a product-category mention,
// clamped at 1.0.
func (e *Extractor) CommercialIntent(text string) float64 {
	score := 0.0
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if _, ok := e.commercial[w]; ok {
			score += 0.2
		}
	}
	if e.productRe.MatchString(text) {
		score += 0.3
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (e *Extractor) isStopWord(w string) bool {
	_, ok := e.stopWords[w]
	return ok
}
