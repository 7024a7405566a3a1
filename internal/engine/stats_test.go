package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/campusq/survey-backend/internal/model"
)

func subWith(studentID int, answers map[int]Answer, comment string) Submission {
	return Submission{StudentID: studentID, Answers: answers, Comment: comment}
}

func TestAggregateSingleAnswer(t *testing.T) {
	// One single_answer question with options A,B,C; four submissions answer
	// A, A, B, C.
	q := model.Question{
		ID: 1, QuestionText: "favorite", QuestionType: model.QuestionTypeSingleAnswer,
		Options: []model.Option{
			{ID: 1, Text: "A"}, {ID: 2, Text: "B"}, {ID: 3, Text: "C"},
		},
	}
	subs := []Submission{
		subWith(1, map[int]Answer{1: {OptionIDs: []int{1}}}, ""),
		subWith(2, map[int]Answer{1: {OptionIDs: []int{1}}}, ""),
		subWith(3, map[int]Answer{1: {OptionIDs: []int{2}}}, ""),
		subWith(4, map[int]Answer{1: {OptionIDs: []int{3}}}, ""),
	}

	stats, err := Aggregate(SurveyInfo{}, []model.Question{q}, subs)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	qs := stats.Questions[0]
	if qs.TotalAnswers != 4 {
		t.Fatalf("TotalAnswers = %d, want 4", qs.TotalAnswers)
	}

	want := []OptionStat{
		{OptionID: 1, Text: "A", Count: 2, Percentage: 50},
		{OptionID: 2, Text: "B", Count: 1, Percentage: 25},
		{OptionID: 3, Text: "C", Count: 1, Percentage: 25},
	}
	if !reflect.DeepEqual(qs.Options, want) {
		t.Errorf("Options = %+v, want %+v", qs.Options, want)
	}

	// Closure: counts sum to N, percentages sum to 100 within rounding error.
	countSum, pctSum := 0, 0
	for _, o := range qs.Options {
		countSum += o.Count
		pctSum += o.Percentage
	}
	if countSum != 4 {
		t.Errorf("count sum = %d, want 4", countSum)
	}
	if diff := pctSum - 100; diff < -len(qs.Options) || diff > len(qs.Options) {
		t.Errorf("percentage sum = %d, outside rounding bound", pctSum)
	}
}

func TestAggregateMultipleChoice(t *testing.T) {
	// Options X,Y; one submission selects both, the other only X.
	q := model.Question{
		ID: 1, QuestionType: model.QuestionTypeMultipleChoice,
		Options: []model.Option{{ID: 1, Text: "X"}, {ID: 2, Text: "Y"}},
	}
	subs := []Submission{
		subWith(1, map[int]Answer{1: {OptionIDs: []int{1, 2}}}, ""),
		subWith(2, map[int]Answer{1: {OptionIDs: []int{1}}}, ""),
	}

	stats, err := Aggregate(SurveyInfo{}, []model.Question{q}, subs)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	qs := stats.Questions[0]
	if qs.TotalAnswers != 2 {
		t.Fatalf("TotalAnswers = %d, want 2", qs.TotalAnswers)
	}
	if qs.Options[0].Count != 2 || qs.Options[0].Percentage != 100 {
		t.Errorf("X = %+v, want count 2 (100%%)", qs.Options[0])
	}
	if qs.Options[1].Count != 1 || qs.Options[1].Percentage != 50 {
		t.Errorf("Y = %+v, want count 1 (50%%)", qs.Options[1])
	}
}

func TestAggregateRatings(t *testing.T) {
	// Ratings 5,5,4,3,5 → rating-5: 3 (60%), rating-4: 1 (20%), rating-3: 1 (20%).
	q := model.Question{ID: 1, QuestionType: model.QuestionTypePercentage}
	ratings := []int{5, 5, 4, 3, 5}
	var subs []Submission
	for i, r := range ratings {
		subs = append(subs, subWith(i+1, map[int]Answer{1: {Rating: r}}, ""))
	}

	stats, err := Aggregate(SurveyInfo{}, []model.Question{q}, subs)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	qs := stats.Questions[0]
	if qs.TotalAnswers != 5 {
		t.Fatalf("TotalAnswers = %d, want 5", qs.TotalAnswers)
	}
	if !reflect.DeepEqual(qs.Ratings, ratings) {
		t.Errorf("Ratings = %v, want submission order %v", qs.Ratings, ratings)
	}

	wantHist := []RatingBucket{
		{Rating: 1, Count: 0, Percentage: 0},
		{Rating: 2, Count: 0, Percentage: 0},
		{Rating: 3, Count: 1, Percentage: 20},
		{Rating: 4, Count: 1, Percentage: 20},
		{Rating: 5, Count: 3, Percentage: 60},
	}
	if !reflect.DeepEqual(qs.Histogram, wantHist) {
		t.Errorf("Histogram = %+v, want %+v", qs.Histogram, wantHist)
	}
}

func TestAggregateOpenText(t *testing.T) {
	q := model.Question{ID: 1, QuestionType: model.QuestionTypeOpenText}
	subs := []Submission{
		subWith(1, map[int]Answer{1: {Text: " first "}}, ""),
		subWith(2, map[int]Answer{}, ""), // did not answer
		subWith(3, map[int]Answer{1: {Text: "second"}}, ""),
	}

	stats, err := Aggregate(SurveyInfo{}, []model.Question{q}, subs)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	qs := stats.Questions[0]
	if qs.TotalAnswers != 2 {
		t.Fatalf("TotalAnswers = %d, want 2", qs.TotalAnswers)
	}
	if !reflect.DeepEqual(qs.TextAnswers, []string{"first", "second"}) {
		t.Errorf("TextAnswers = %v", qs.TextAnswers)
	}
}

func TestAggregateZeroSubmissions(t *testing.T) {
	questions := sampleQuestions()

	stats, err := Aggregate(SurveyInfo{RequiredParticipants: 50}, questions, nil)
	if err != nil {
		t.Fatalf("Aggregate on empty input: %v", err)
	}

	if stats.TotalResponses != 0 || stats.CompletionRate != 0 {
		t.Errorf("TotalResponses = %d, CompletionRate = %d, want 0/0", stats.TotalResponses, stats.CompletionRate)
	}
	if len(stats.Questions) != len(questions) {
		t.Fatalf("got %d question stats, want %d (no question may be omitted)", len(stats.Questions), len(questions))
	}
	for _, qs := range stats.Questions {
		if qs.TotalAnswers != 0 {
			t.Errorf("question %d: TotalAnswers = %d, want 0", qs.QuestionID, qs.TotalAnswers)
		}
		for _, o := range qs.Options {
			if o.Count != 0 || o.Percentage != 0 {
				t.Errorf("question %d option %d: %+v, want zeros", qs.QuestionID, o.OptionID, o)
			}
		}
	}
	if len(stats.Comments) != 0 {
		t.Errorf("Comments = %v, want empty", stats.Comments)
	}
}

func TestAggregateCompletionRate(t *testing.T) {
	q := model.Question{ID: 1, QuestionType: model.QuestionTypeOpenText}

	subs := make([]Submission, 30)
	for i := range subs {
		subs[i] = subWith(i+1, map[int]Answer{1: {Text: "x"}}, "")
	}

	stats, err := Aggregate(SurveyInfo{RequiredParticipants: 20}, []model.Question{q}, subs)
	if err != nil {
		t.Fatal(err)
	}
	// Overshoot above 100% is intentional and must not be clamped.
	if stats.CompletionRate != 150 {
		t.Errorf("CompletionRate = %d, want 150", stats.CompletionRate)
	}
}

func TestAggregateComments(t *testing.T) {
	q := model.Question{ID: 1, QuestionType: model.QuestionTypeOpenText}
	subs := []Submission{
		subWith(1, map[int]Answer{1: {Text: "a"}}, "  loved it  "),
		subWith(2, map[int]Answer{1: {Text: "b"}}, ""),
		subWith(3, map[int]Answer{1: {Text: "c"}}, "\t"),
		subWith(4, map[int]Answer{1: {Text: "d"}}, "too long"),
	}

	stats, err := Aggregate(SurveyInfo{}, []model.Question{q}, subs)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(stats.Comments, []string{"loved it", "too long"}) {
		t.Errorf("Comments = %v", stats.Comments)
	}
}

func TestAggregateDeterminism(t *testing.T) {
	questions := sampleQuestions()
	subs := []Submission{
		subWith(1, map[int]Answer{1: {OptionIDs: []int{10}}, 2: {Text: "hi"}, 3: {Rating: 4}}, "c1"),
		subWith(2, map[int]Answer{1: {OptionIDs: []int{10, 11}}, 3: {Rating: 5}}, ""),
	}
	info := SurveyInfo{Title: "t", RequiredParticipants: 10}

	first, err := Aggregate(info, questions, subs)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Aggregate(info, questions, subs)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Aggregate is not deterministic over identical input")
	}
}

func TestAggregateContractBreaches(t *testing.T) {
	q := model.Question{
		ID: 1, QuestionType: model.QuestionTypeSingleAnswer,
		Options: []model.Option{{ID: 1, Text: "A"}},
	}

	// Answer for a question that is not part of the survey.
	_, err := Aggregate(SurveyInfo{}, []model.Question{q}, []Submission{
		subWith(1, map[int]Answer{99: {Text: "?"}}, ""),
	})
	if !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("unknown question id: got %v, want ErrUnknownQuestion", err)
	}

	// Answer selecting an option the question does not own.
	_, err = Aggregate(SurveyInfo{}, []model.Question{q}, []Submission{
		subWith(1, map[int]Answer{1: {OptionIDs: []int{42}}}, ""),
	})
	if !errors.Is(err, ErrUnknownOption) {
		t.Errorf("foreign option id: got %v, want ErrUnknownOption", err)
	}
}
