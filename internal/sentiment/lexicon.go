package sentiment

import (
	"math"
	"regexp"
	"strings"
)

// Sentiment labels, as emitted in the dataset.
const (
	LabelPositive = "positivo"
	LabelNeutral  = "neutro"
	LabelNegative = "negativo"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Scorer is a rule-based polarity scorer over fixed vocabularies. It is
// deterministic and order-independent: score = (pos - neg) / (pos + neg)
// over exact lowercase token matches, no stemming.
type Scorer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

func NewScorer(positive, negative []string) *Scorer {
	s := &Scorer{
		positive: make(map[string]struct{}, len(positive)),
		negative: make(map[string]struct{}, len(negative)),
	}
	for _, w := range positive {
		s.positive[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range negative {
		s.negative[strings.ToLower(w)] = struct{}{}
	}
	return s
}

// NewItalianScorer returns a Scorer loaded with the Italian vocabulary used
// for Sanremo discussion threads.
func NewItalianScorer() *Scorer {
	return NewScorer(italianPositive, italianNegative)
}

// Score tokenizes each text, counts lexicon hits and returns the polarity
// ratio in [-1, 1] rounded to 3 decimals plus its label. Texts with no
// lexicon hits score 0.0 / neutro.
func (s *Scorer) Score(texts []string) (float64, string) {
	positive := 0
	negative := 0

	for _, text := range texts {
		for _, token := range wordPattern.FindAllString(strings.ToLower(text), -1) {
			if _, ok := s.positive[token]; ok {
				positive++
				continue
			}
			if _, ok := s.negative[token]; ok {
				negative++
			}
		}
	}

	total := positive + negative
	if total == 0 {
		return 0.0, LabelNeutral
	}

	score := float64(positive-negative) / float64(total)
	score = math.Round(score*1000) / 1000

	return score, Label(score)
}

// Label maps a polarity score to its categorical label.
func Label(score float64) string {
	switch {
	case score > 0.1:
		return LabelPositive
	case score < -0.1:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

var italianPositive = []string{
	"bravo", "brava", "bravi", "bravissimo", "bravissima",
	"bello", "bella", "bellissimo", "bellissima",
	"fantastico", "fantastica", "stupendo", "stupenda",
	"meraviglioso", "meravigliosa", "spettacolo", "spettacolare",
	"capolavoro", "adoro", "amo", "perfetto", "perfetta",
	"incredibile", "emozionante", "geniale", "genio",
	"magico", "magica", "divino", "divina",
	"vincitore", "vincitrice", "migliore", "meglio",
	"top", "bomba", "applausi", "brividi", "pazzesco", "pazzesca",
}

var italianNegative = []string{
	"schifo", "schifoso", "schifosa", "brutto", "brutta",
	"bruttissimo", "bruttissima", "orribile", "orrendo", "orrenda",
	"pessimo", "pessima", "terribile", "imbarazzante",
	"noioso", "noiosa", "noia", "banale", "piatto", "piatta",
	"deludente", "delusione", "flop", "peggio", "peggiore",
	"vergogna", "vergognoso", "vergognosa", "cringe",
	"stonato", "stonata", "inascoltabile", "ridicolo", "ridicola",
	"scarso", "scarsa", "malissimo", "disastro",
}
