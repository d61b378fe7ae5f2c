package services

import (
	"strings"
	"unicode"

	"github.com/terraincognita07/healthjournal/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	messageQuestionUnsupported  = "question.unsupported"
	messageQuestionInsufficient = "question.insufficient_data"
	messageQuestionFoodMetric   = "question.food_metric_answer"
)

type Translator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
}

// Answer is always produced; an unrecognized question or an empty
// comparison group is reported through Message, never as an error.
type Answer struct {
	Pattern    string
	Matched    bool
	Sufficient bool
	Comparison *FoodComparison
	Message    string
}

type FoodComparison struct {
	Metric       string
	WithMean     float64
	WithoutMean  float64
	WithCount    int
	WithoutCount int
}

// QuestionContext carries one query through a pattern. Meal logs are
// folded for matching on first use and reused afterwards.
type QuestionContext struct {
	Query    string
	Records  []models.DailyRecord
	Language string

	translator Translator
	foods      [][]string
}

func (ctx *QuestionContext) Foods() [][]string {
	if ctx.foods != nil {
		return ctx.foods
	}
	ctx.foods = make([][]string, len(ctx.Records))
	for index, record := range ctx.Records {
		foods := record.Meals.Foods()
		folded := make([]string, 0, len(foods))
		for _, food := range foods {
			folded = append(folded, FoldText(food))
		}
		ctx.foods[index] = folded
	}
	return ctx.foods
}

func (ctx *QuestionContext) Translate(key string) string {
	return ctx.translator.Translate(ctx.Language, key)
}

func (ctx *QuestionContext) Translatef(key string, args ...any) string {
	return ctx.translator.Translatef(ctx.Language, key, args...)
}

type QuestionPattern struct {
	Name    string
	Matches func(foldedQuery string) bool
	Answer  func(ctx *QuestionContext) Answer
}

type QuestionEngine struct {
	patterns   []QuestionPattern
	translator Translator
	language   string
}

// NewQuestionEngine returns an engine with the built-in patterns registered.
func NewQuestionEngine(translator Translator, language string) *QuestionEngine {
	engine := &QuestionEngine{translator: translator, language: language}
	for _, comparison := range DefaultFoodMetricComparisons() {
		engine.Register(comparison.Pattern())
	}
	return engine
}

// Register appends a pattern. Patterns are tried in registration order.
func (engine *QuestionEngine) Register(pattern QuestionPattern) {
	engine.patterns = append(engine.patterns, pattern)
}

func (engine *QuestionEngine) Patterns() []string {
	names := make([]string, 0, len(engine.patterns))
	for _, pattern := range engine.patterns {
		names = append(names, pattern.Name)
	}
	return names
}

func (engine *QuestionEngine) Ask(query string, records []models.DailyRecord) Answer {
	folded := FoldText(query)
	if strings.TrimSpace(folded) != "" {
		for _, pattern := range engine.patterns {
			if !pattern.Matches(folded) {
				continue
			}
			ctx := &QuestionContext{
				Query:      folded,
				Records:    records,
				Language:   engine.language,
				translator: engine.translator,
			}
			answer := pattern.Answer(ctx)
			answer.Pattern = pattern.Name
			answer.Matched = true
			return answer
		}
	}

	return Answer{
		Message: engine.translator.Translate(engine.language, messageQuestionUnsupported),
	}
}

// FoodMetricComparison splits records by whether any meal mentions one of
// FoodKeywords and compares the mean of Metric between the two groups.
type FoodMetricComparison struct {
	Name           string
	FoodKeywords   []string
	MetricKeywords []string
	FoodLabelKey   string
	MetricLabelKey string
	Metric         func(record models.DailyRecord) (float64, bool)
}

func DefaultFoodMetricComparisons() []FoodMetricComparison {
	return []FoodMetricComparison{
		{
			Name:           "cheese-sleep-quality",
			FoodKeywords:   []string{"cheese", "queso"},
			MetricKeywords: []string{"sleep", "slept", "sueñ"},
			FoodLabelKey:   "food.cheese",
			MetricLabelKey: "metric.sleep_quality",
			Metric: func(record models.DailyRecord) (float64, bool) {
				if record.SleepQuality == nil {
					return 0, false
				}
				return float64(*record.SleepQuality), true
			},
		},
	}
}

func (comparison FoodMetricComparison) Pattern() QuestionPattern {
	foodKeywords := foldAll(comparison.FoodKeywords)
	metricKeywords := foldAll(comparison.MetricKeywords)

	return QuestionPattern{
		Name: comparison.Name,
		Matches: func(foldedQuery string) bool {
			return containsAny(foldedQuery, foodKeywords) && containsAny(foldedQuery, metricKeywords)
		},
		Answer: func(ctx *QuestionContext) Answer {
			return comparison.answer(ctx, foodKeywords)
		},
	}
}

func (comparison FoodMetricComparison) answer(ctx *QuestionContext, foodKeywords []string) Answer {
	foods := ctx.Foods()
	withTotal, withoutTotal := 0.0, 0.0
	withCount, withoutCount := 0, 0

	for index, record := range ctx.Records {
		value, ok := comparison.Metric(record)
		if !ok {
			continue
		}
		if anyContainsAny(foods[index], foodKeywords) {
			withTotal += value
			withCount++
		} else {
			withoutTotal += value
			withoutCount++
		}
	}

	foodLabel := ctx.Translate(comparison.FoodLabelKey)
	if withCount == 0 || withoutCount == 0 {
		return Answer{
			Message: ctx.Translatef(messageQuestionInsufficient, foodLabel),
		}
	}

	result := FoodComparison{
		Metric:       ctx.Translate(comparison.MetricLabelKey),
		WithMean:     RoundHundredths(withTotal / float64(withCount)),
		WithoutMean:  RoundHundredths(withoutTotal / float64(withoutCount)),
		WithCount:    withCount,
		WithoutCount: withoutCount,
	}
	return Answer{
		Sufficient: true,
		Comparison: &result,
		Message: ctx.Translatef(
			messageQuestionFoodMetric,
			result.Metric, foodLabel, result.WithMean, foodLabel, result.WithoutMean,
		),
	}
}

// FoldText lowercases with Unicode case folding and strips combining marks,
// so "Sueño" and "sueno" compare equal.
func FoldText(value string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, value)
	if err != nil {
		stripped = value
	}
	return cases.Fold().String(stripped)
}

func foldAll(values []string) []string {
	folded := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := FoldText(strings.TrimSpace(value)); trimmed != "" {
			folded = append(folded, trimmed)
		}
	}
	return folded
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

func anyContainsAny(values []string, needles []string) bool {
	for _, value := range values {
		if containsAny(value, needles) {
			return true
		}
	}
	return false
}
