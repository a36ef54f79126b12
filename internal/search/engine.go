package search

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Result is a scored match against one document.
type Result struct {
	Doc     Document
	Score   float64
	Matches []Match
}

// Match records where the query hit.
type Match struct {
	Field  string // "title", "description", "tags"
	Text   string // matched snippet
	Weight float64
}

// Engine scores documents by substring and word-boundary matches without
// any index. Good enough for the list sizes the full-list sections hold.
type Engine struct {
	minQueryLen int
	docs        []Document
}

func NewEngine(minQueryLen int) *Engine {
	if minQueryLen <= 0 {
		minQueryLen = 2
	}
	return &Engine{minQueryLen: minQueryLen}
}

func (e *Engine) SetDocuments(docs []Document) error {
	e.docs = append([]Document(nil), docs...)
	return nil
}

// Search scores every document against the query and returns the best
// matches, highest score first.
func (e *Engine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < e.minQueryLen {
		return []*Result{}, nil
	}

	terms := tokenize(query)
	if len(terms) == 0 {
		return []*Result{}, nil
	}

	var results []*Result
	for _, doc := range e.docs {
		if result := e.scoreDocument(doc, terms); result != nil {
			results = append(results, result)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func (e *Engine) scoreDocument(doc Document, terms []string) *Result {
	var matches []Match
	var totalScore float64

	if titleScore := scoreField(doc.Title, terms, 4.0); titleScore > 0 {
		matches = append(matches, Match{
			Field:  "title",
			Text:   doc.Title,
			Weight: titleScore,
		})
		totalScore += titleScore
	}

	if descScore := scoreField(doc.Description, terms, 2.0); descScore > 0 {
		matches = append(matches, Match{
			Field:  "description",
			Text:   truncate(doc.Description, 150),
			Weight: descScore,
		})
		totalScore += descScore
	}

	if tags := strings.Join(doc.Tags, " "); tags != "" {
		if tagScore := scoreField(tags, terms, 1.0); tagScore > 0 {
			matches = append(matches, Match{
				Field:  "tags",
				Text:   tags,
				Weight: tagScore,
			})
			totalScore += tagScore
		}
	}

	if totalScore > 0 {
		return &Result{Doc: doc, Score: totalScore, Matches: matches}
	}

	return nil
}

// scoreField weighs exact substring hits above word-boundary hits above
// partial word hits, with a TF-style boost for multi-term coverage.
func scoreField(text string, terms []string, weight float64) float64 {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	words := tokenize(text)

	var score float64
	matchedTerms := 0

	for _, term := range terms {
		if strings.Contains(lower, term) {
			score += 2.0
			matchedTerms++
		}

		for _, word := range words {
			switch {
			case word == term:
				score += 1.5
				matchedTerms++
			case strings.HasPrefix(word, term) || strings.HasSuffix(word, term):
				score += 1.0
				matchedTerms++
			case strings.Contains(word, term):
				score += 0.5
				matchedTerms++
			}
		}
	}

	if len(terms) > 1 && matchedTerms > 1 {
		score *= 1.0 + float64(matchedTerms)/float64(len(terms))
	}

	if len(words) > 0 {
		tf := float64(matchedTerms) / float64(len(words))
		score *= 1.0 + math.Log(1.0+tf)
	}

	return score * weight
}

// tokenize breaks text into lowercase terms, dropping single characters.
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			if term := current.String(); len(term) > 1 {
				terms = append(terms, term)
			}
			current.Reset()
		}
	}

	if current.Len() > 1 {
		terms = append(terms, current.String())
	}

	return terms
}

func truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-1] + "…"
}
