package model

import "time"

// Gender represents the student's registered gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Student represents a student account (a survey respondent).
type Student struct {
	ID           int       `json:"id"`
	StudentNo    string    `json:"student_no"`
	Name         string    `json:"name"`
	Gender       Gender    `json:"gender"`
	AcademicYear int       `json:"academic_year"`
	DepartmentID int       `json:"department_id"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StudentLoginRequest is the payload for student authentication.
type StudentLoginRequest struct {
	StudentNo string `json:"student_no" binding:"required,min=4,max=20"`
	Password  string `json:"password" binding:"required,min=4,max=128"`
}

// StudentLoginResponse is returned after successful student login.
type StudentLoginResponse struct {
	Token   string  `json:"token"`
	Student Student `json:"student"`
}

// CreateStudentRequest is the payload for creating a new student account.
type CreateStudentRequest struct {
	StudentNo    string `json:"student_no" binding:"required,min=4,max=20"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Gender       Gender `json:"gender" binding:"required,oneof=male female"`
	AcademicYear int    `json:"academic_year" binding:"required,min=1,max=6"`
	DepartmentID int    `json:"department_id" binding:"required"`
	Password     string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateStudentRequest is the payload for updating an existing student.
type UpdateStudentRequest struct {
	StudentNo    string `json:"student_no" binding:"required,min=4,max=20"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Gender       Gender `json:"gender" binding:"required,oneof=male female"`
	AcademicYear int    `json:"academic_year" binding:"required,min=1,max=6"`
	DepartmentID int    `json:"department_id" binding:"required"`
	Password     string `json:"password" binding:"omitempty,min=6,max=128"`
}
