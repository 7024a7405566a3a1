package model

// Department is a university department students belong to.
type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// DepartmentRequest is the payload for creating or updating a department.
type DepartmentRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Code string `json:"code" binding:"required,min=2,max=10"`
}
