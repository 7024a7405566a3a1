package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/campusq/survey-backend/internal/model"
)

// SurveyInfo is the survey metadata echoed into the statistics output.
type SurveyInfo struct {
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	OwnerName            string             `json:"owner_name"`
	RequiredParticipants int                `json:"required_participants"`
	TargetGender         model.TargetGender `json:"target_gender"`
	TargetAcademicYears  []int              `json:"target_academic_years"`
	TargetDepartmentIDs  []int              `json:"target_department_ids"`
}

// OptionStat is the per-option tally for a choice question. Percentage is
// rounded independently per option: multiple_choice percentages need not
// sum to 100 (a respondent may pick several options), single_answer
// percentages sum to ~100 modulo rounding.
type OptionStat struct {
	OptionID   int    `json:"option_id"`
	Text       string `json:"text"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// RatingBucket is one bar of the 1-5 rating histogram.
type RatingBucket struct {
	Rating     int `json:"rating"`
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

// QuestionStat is the per-question summary. Exactly one of the per-type
// sections is populated, matching QuestionType.
type QuestionStat struct {
	QuestionID   int                `json:"question_id"`
	QuestionText string             `json:"question_text"`
	QuestionType model.QuestionType `json:"question_type"`
	TotalAnswers int                `json:"total_answers"`
	Options      []OptionStat       `json:"options,omitempty"`
	TextAnswers  []string           `json:"text_answers,omitempty"`
	Ratings      []int              `json:"ratings,omitempty"`
	Histogram    []RatingBucket     `json:"histogram,omitempty"`
}

// SurveyStatistics is the display-ready aggregate over one survey's full
// submission set. It is recomputed on demand and never persisted here.
type SurveyStatistics struct {
	Survey         SurveyInfo     `json:"survey"`
	TotalResponses int            `json:"total_responses"`
	CompletionRate int            `json:"completion_rate"`
	Questions      []QuestionStat `json:"questions"`
	Comments       []string       `json:"comments"`
}

// Aggregate computes one QuestionStat per question plus the flat comment
// list. It is a pure function of its inputs: the same questions and
// submissions always yield structurally identical output. Zero submissions
// is not an error: every question reports an explicit zero state.
//
// A submission answer referencing a question absent from questions, or an
// option not owned by its question, is a caller contract breach and fails
// loudly.
func Aggregate(info SurveyInfo, questions []model.Question, submissions []Submission) (*SurveyStatistics, error) {
	byID := make(map[int]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for _, sub := range submissions {
		for qid, a := range sub.Answers {
			q, ok := byID[qid]
			if !ok {
				return nil, fmt.Errorf("submission by student %d: question %d: %w", sub.StudentID, qid, ErrUnknownQuestion)
			}
			if err := ValidateAnswer(q, a); err != nil {
				return nil, fmt.Errorf("submission by student %d: %w", sub.StudentID, err)
			}
		}
	}

	stats := &SurveyStatistics{
		Survey:         info,
		TotalResponses: len(submissions),
		CompletionRate: percentage(len(submissions), info.RequiredParticipants),
		Questions:      make([]QuestionStat, 0, len(questions)),
		Comments:       collectComments(submissions),
	}

	for _, q := range questions {
		stats.Questions = append(stats.Questions, aggregateQuestion(q, submissions))
	}

	return stats, nil
}

func aggregateQuestion(q model.Question, submissions []Submission) QuestionStat {
	stat := QuestionStat{
		QuestionID:   q.ID,
		QuestionText: q.QuestionText,
		QuestionType: q.QuestionType,
	}

	switch q.QuestionType {
	case model.QuestionTypeMultipleChoice, model.QuestionTypeSingleAnswer:
		counts := make(map[int]int, len(q.Options))
		for _, sub := range submissions {
			a, ok := answerFor(q, sub)
			if !ok {
				continue
			}
			stat.TotalAnswers++
			for _, id := range a.OptionIDs {
				counts[id]++
			}
		}
		stat.Options = make([]OptionStat, 0, len(q.Options))
		for _, opt := range q.Options {
			stat.Options = append(stat.Options, OptionStat{
				OptionID:   opt.ID,
				Text:       opt.Text,
				Count:      counts[opt.ID],
				Percentage: percentage(counts[opt.ID], stat.TotalAnswers),
			})
		}

	case model.QuestionTypeOpenText:
		stat.TextAnswers = []string{}
		for _, sub := range submissions {
			a, ok := answerFor(q, sub)
			if !ok {
				continue
			}
			stat.TotalAnswers++
			stat.TextAnswers = append(stat.TextAnswers, strings.TrimSpace(a.Text))
		}

	case model.QuestionTypePercentage:
		stat.Ratings = []int{}
		counts := [6]int{} // index 1..5
		for _, sub := range submissions {
			a, ok := answerFor(q, sub)
			if !ok {
				continue
			}
			stat.TotalAnswers++
			stat.Ratings = append(stat.Ratings, a.Rating)
			counts[a.Rating]++
		}
		stat.Histogram = make([]RatingBucket, 0, 5)
		for rating := 1; rating <= 5; rating++ {
			stat.Histogram = append(stat.Histogram, RatingBucket{
				Rating:     rating,
				Count:      counts[rating],
				Percentage: percentage(counts[rating], stat.TotalAnswers),
			})
		}
	}

	return stat
}

// answerFor returns the submission's non-empty answer for q, if any.
// Submissions are expected to omit empty answers, but the emptiness check
// is repeated here so externally stored data cannot skew counts.
func answerFor(q model.Question, sub Submission) (Answer, bool) {
	a, ok := sub.Answers[q.ID]
	if !ok || isEmpty(q, a) {
		return Answer{}, false
	}
	return a, true
}

func collectComments(submissions []Submission) []string {
	comments := []string{}
	for _, sub := range submissions {
		if c := strings.TrimSpace(sub.Comment); c != "" {
			comments = append(comments, c)
		}
	}
	return comments
}

// percentage rounds 100*count/total, guarding the total == 0 case. The
// overshoot case (count > total, e.g. participation above target) is
// intentionally not clamped.
func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(total)))
}
