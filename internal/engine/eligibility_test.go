package engine

import (
	"testing"

	"github.com/campusq/survey-backend/internal/model"
)

func TestIsEligible(t *testing.T) {
	student := model.Student{
		ID: 1, Gender: model.GenderFemale, AcademicYear: 2, DepartmentID: 7,
	}

	cases := []struct {
		name   string
		survey model.Survey
		want   bool
	}{
		{
			name:   "open to everyone",
			survey: model.Survey{TargetGender: model.TargetGenderAll},
			want:   true,
		},
		{
			name:   "unset target gender means all",
			survey: model.Survey{},
			want:   true,
		},
		{
			name:   "gender match",
			survey: model.Survey{TargetGender: model.TargetGenderFemale},
			want:   true,
		},
		{
			name:   "gender mismatch",
			survey: model.Survey{TargetGender: model.TargetGenderMale},
			want:   false,
		},
		{
			name:   "year in target set",
			survey: model.Survey{TargetGender: model.TargetGenderAll, TargetAcademicYears: []int{1, 2}},
			want:   true,
		},
		{
			name:   "year outside target set",
			survey: model.Survey{TargetGender: model.TargetGenderAll, TargetAcademicYears: []int{3, 4}},
			want:   false,
		},
		{
			name:   "department in target set",
			survey: model.Survey{TargetGender: model.TargetGenderAll, TargetDepartmentIDs: []int{7, 9}},
			want:   true,
		},
		{
			name:   "department outside target set",
			survey: model.Survey{TargetGender: model.TargetGenderAll, TargetDepartmentIDs: []int{9}},
			want:   false,
		},
		{
			name: "all three rules must hold",
			survey: model.Survey{
				TargetGender:        model.TargetGenderFemale,
				TargetAcademicYears: []int{2},
				TargetDepartmentIDs: []int{8},
			},
			want: false,
		},
		{
			name: "all three rules hold",
			survey: model.Survey{
				TargetGender:        model.TargetGenderFemale,
				TargetAcademicYears: []int{2, 3},
				TargetDepartmentIDs: []int{7},
			},
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsEligible(student, tc.survey); got != tc.want {
				t.Errorf("IsEligible() = %v, want %v", got, tc.want)
			}
		})
	}
}
