package engine

import "github.com/campusq/survey-backend/internal/model"

// IsEligible reports whether a student falls inside a survey's target
// audience. A student is eligible iff their gender matches the target (or
// the target is "all"), their academic year is in the target set (or the
// set is empty, meaning any), and their department is in the target set
// (or the set is empty).
func IsEligible(student model.Student, survey model.Survey) bool {
	return genderMatches(student.Gender, survey.TargetGender) &&
		intInSetOrAny(student.AcademicYear, survey.TargetAcademicYears) &&
		intInSetOrAny(student.DepartmentID, survey.TargetDepartmentIDs)
}

func genderMatches(g model.Gender, target model.TargetGender) bool {
	switch target {
	case model.TargetGenderAll, "":
		return true
	case model.TargetGenderMale:
		return g == model.GenderMale
	case model.TargetGenderFemale:
		return g == model.GenderFemale
	}
	return false
}

func intInSetOrAny(v int, set []int) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
