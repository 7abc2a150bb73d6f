package nlp

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Candidate is a registered command seen through the suggestion engine:
// the phrases it answers to and the label shown to the user.
type Candidate struct {
	ID          string
	Phrases     []string
	Description string
}

type Suggestion struct {
	CommandID   string  `json:"command_id"`
	Phrase      string  `json:"phrase"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

type AnalysisResult struct {
	Input       string       `json:"input"`
	CleanedText string       `json:"cleaned_text"`
	Tokens      []string     `json:"tokens"`
	Suggestions []Suggestion `json:"suggestions"`
}

type IProcessor interface {
	CleanText(text string) string
	ExtractTokens(text string) []string
	Similarity(text1, text2 string) float64
	Suggest(utterance string, candidates []Candidate, limit int) []Suggestion
	Analyze(utterance string, candidates []Candidate) *AnalysisResult
}

type processor struct {
	stopWords map[string]bool
}

func NewProcessor() IProcessor {
	// Spanish filler words around spoken commands ("quiero ir a inicio").
	stopWords := map[string]bool{
		"el": true, "la": true, "los": true, "las": true, "un": true,
		"una": true, "de": true, "del": true, "al": true, "a": true,
		"en": true, "y": true, "o": true, "que": true, "por": true,
		"para": true, "con": true, "me": true, "mi": true, "tu": true,
		"quiero": true, "quisiera": true, "puedes": true, "podrias": true,
		"ir": true, "abre": true, "abrir": true, "muestra": true,
		"mostrar": true, "ensename": true, "llevame": true, "ve": true,
		"vamos": true, "favor": true, "pagina": true, "pantalla": true,
	}

	return &processor{stopWords: stopWords}
}

func (p *processor) CleanText(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, text)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	words := strings.Fields(result)
	return strings.Join(words, " ")
}

func (p *processor) ExtractTokens(text string) []string {
	words := strings.Fields(text)
	var tokens []string

	for _, word := range words {
		word = strings.TrimSpace(word)
		if len(word) > 1 && !p.stopWords[word] {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

func (p *processor) Similarity(text1, text2 string) float64 {
	norm1 := p.CleanText(text1)
	norm2 := p.CleanText(text2)

	if norm1 == norm2 {
		return 1.0
	}

	if strings.Contains(norm1, norm2) || strings.Contains(norm2, norm1) {
		shorter := norm1
		longer := norm2
		if len(norm1) > len(norm2) {
			shorter = norm2
			longer = norm1
		}
		return float64(len(shorter)) / float64(len(longer))
	}

	distance := levenshteinDistance(norm1, norm2)
	maxLen := math.Max(float64(len(norm1)), float64(len(norm2)))

	if maxLen == 0 {
		return 0.0
	}

	return math.Max(0, 1.0-(float64(distance)/maxLen))
}

// Suggest scores every candidate phrase against the utterance and returns the
// closest ones. Used for "did you mean" responses when no registered pattern
// matched.
func (p *processor) Suggest(utterance string, candidates []Candidate, limit int) []Suggestion {
	tokens := p.ExtractTokens(p.CleanText(utterance))
	probe := strings.Join(tokens, " ")
	if probe == "" {
		probe = p.CleanText(utterance)
	}

	var suggestions []Suggestion
	for _, candidate := range candidates {
		best := Suggestion{CommandID: candidate.ID, Description: candidate.Description}
		for _, phrase := range candidate.Phrases {
			score := p.Similarity(probe, phrase)
			for _, token := range tokens {
				if tokenScore := p.Similarity(token, phrase); tokenScore > score {
					score = tokenScore
				}
			}
			if score > best.Score {
				best.Score = score
				best.Phrase = phrase
			}
		}
		if best.Score > 0.5 {
			suggestions = append(suggestions, best)
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return suggestions
}

func (p *processor) Analyze(utterance string, candidates []Candidate) *AnalysisResult {
	cleaned := p.CleanText(utterance)
	return &AnalysisResult{
		Input:       utterance,
		CleanedText: cleaned,
		Tokens:      p.ExtractTokens(cleaned),
		Suggestions: p.Suggest(utterance, candidates, 5),
	}
}

func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}

	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			matrix[i][j] = minInt(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
