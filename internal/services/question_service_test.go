package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/terraincognita07/healthjournal/internal/models"
)

func cheeseRecords() []models.DailyRecord {
	return []models.DailyRecord{
		{Date: datePtr(2024, time.March, 1), SleepQuality: intPtr(4), Meals: models.MealLog{models.MealDinner: {"Manchego Cheese"}}},
		{Date: datePtr(2024, time.March, 2), SleepQuality: intPtr(6), Meals: models.MealLog{models.MealBreakfast: {"Tostada con QUESO"}}},
		{Date: datePtr(2024, time.March, 3), SleepQuality: intPtr(8), Meals: models.MealLog{models.MealLunch: {"Salad"}}},
		{Date: datePtr(2024, time.March, 4), SleepQuality: intPtr(8), Meals: models.MealLog{}},
		{Date: datePtr(2024, time.March, 5), Meals: models.MealLog{models.MealDinner: {"cheese"}}},
	}
}

func TestAskCheeseSleepComparison(t *testing.T) {
	engine := NewQuestionEngine(translatorStub{}, "en")

	answer := engine.Ask("Does eating cheese affect my sleep?", cheeseRecords())
	if !answer.Matched || !answer.Sufficient {
		t.Fatalf("expected a sufficient match, got %+v", answer)
	}
	if answer.Comparison.WithMean != 5 || answer.Comparison.WithoutMean != 8 {
		t.Fatalf("expected means 5 and 8, got %+v", answer.Comparison)
	}
	if answer.Comparison.WithCount != 2 || answer.Comparison.WithoutCount != 2 {
		t.Fatalf("records without sleep quality must be skipped, got %+v", answer.Comparison)
	}
	want := "en:question.food_metric_answer|en:metric.sleep_quality|en:food.cheese|5.00|en:food.cheese|8.00"
	if answer.Message != want {
		t.Fatalf("message = %q, want %q", answer.Message, want)
	}
}

func TestAskCheeseSleepComparisonUnevenGroups(t *testing.T) {
	engine := NewQuestionEngine(translatorStub{}, "en")
	records := []models.DailyRecord{
		{Date: datePtr(2024, time.March, 1), SleepQuality: intPtr(4), Meals: models.MealLog{models.MealDinner: {"queso fresco"}}},
		{Date: datePtr(2024, time.March, 2), SleepQuality: intPtr(6), Meals: models.MealLog{models.MealLunch: {"Cheese sandwich"}}},
		{Date: datePtr(2024, time.March, 3), SleepQuality: intPtr(7), Meals: models.MealLog{models.MealLunch: {"Rice"}}},
		{Date: datePtr(2024, time.March, 4), SleepQuality: intPtr(8), Meals: models.MealLog{}},
		{Date: datePtr(2024, time.March, 5), SleepQuality: intPtr(9), Meals: models.MealLog{models.MealBreakfast: {"Toast"}}},
	}

	answer := engine.Ask("does cheese affect my sleep", records)
	want := &FoodComparison{Metric: "en:metric.sleep_quality", WithMean: 5, WithoutMean: 8, WithCount: 2, WithoutCount: 3}
	if diff := cmp.Diff(want, answer.Comparison); diff != "" {
		t.Fatalf("comparison mismatch (-want +got):\n%s", diff)
	}

	withoutCheese := engine.Ask("does cheese affect my sleep", records[2:])
	if !withoutCheese.Matched || withoutCheese.Sufficient || withoutCheese.Comparison != nil {
		t.Fatalf("expected insufficient data without any cheese records, got %+v", withoutCheese)
	}
	if !strings.HasPrefix(withoutCheese.Message, "en:question.insufficient_data") {
		t.Fatalf("unexpected message %q", withoutCheese.Message)
	}
}

func TestAskMatchesSpanishWithoutAccents(t *testing.T) {
	engine := NewQuestionEngine(translatorStub{}, "es")

	for _, query := range []string{"¿El queso afecta mi sueño?", "el QUESO y el sueno", "Cheese and how I SLEPT"} {
		answer := engine.Ask(query, cheeseRecords())
		if answer.Pattern != "cheese-sleep-quality" {
			t.Fatalf("query %q: expected cheese pattern, got %+v", query, answer)
		}
	}
}

func TestAskInsufficientData(t *testing.T) {
	engine := NewQuestionEngine(translatorStub{}, "en")
	onlyCheese := []models.DailyRecord{
		{Date: datePtr(2024, time.March, 1), SleepQuality: intPtr(4), Meals: models.MealLog{models.MealDinner: {"Cheese"}}},
	}

	for _, records := range [][]models.DailyRecord{nil, onlyCheese} {
		answer := engine.Ask("does cheese affect sleep", records)
		if !answer.Matched || answer.Sufficient || answer.Comparison != nil {
			t.Fatalf("expected an insufficient-data answer, got %+v", answer)
		}
		if !strings.HasPrefix(answer.Message, "en:question.insufficient_data") {
			t.Fatalf("unexpected message %q", answer.Message)
		}
	}
}

func TestAskUnsupportedQuestion(t *testing.T) {
	engine := NewQuestionEngine(translatorStub{}, "en")

	for _, query := range []string{"", "   ", "How much water did I drink?", "Does cheese make me happy?"} {
		answer := engine.Ask(query, cheeseRecords())
		if answer.Matched {
			t.Fatalf("query %q: expected no match, got %+v", query, answer)
		}
		if answer.Message != "en:question.unsupported" {
			t.Fatalf("query %q: unexpected message %q", query, answer.Message)
		}
	}
}

func TestRegisterAddsPatternsInOrder(t *testing.T) {
	engine := NewQuestionEngine(translatorStub{}, "en")
	engine.Register(QuestionPattern{
		Name:    "record-count",
		Matches: func(query string) bool { return strings.Contains(query, "how many") },
		Answer: func(ctx *QuestionContext) Answer {
			return Answer{Sufficient: true, Message: ctx.Translate("record.count")}
		},
	})

	if names := engine.Patterns(); len(names) != 2 || names[1] != "record-count" {
		t.Fatalf("unexpected patterns %v", names)
	}
	answer := engine.Ask("How many days?", cheeseRecords())
	if answer.Pattern != "record-count" || answer.Message != "en:record.count" {
		t.Fatalf("unexpected answer %+v", answer)
	}
}

func TestFoldText(t *testing.T) {
	cases := map[string]string{
		"Sueño":   "sueno",
		"QUESO":   "queso",
		"Crème":   "creme",
		"Straße":  "strasse",
		"already": "already",
	}
	for raw, want := range cases {
		if got := FoldText(raw); got != want {
			t.Fatalf("FoldText(%q) = %q, want %q", raw, got, want)
		}
	}
}
