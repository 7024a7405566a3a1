package model

import "time"

// AdminRole distinguishes platform administrators from survey-owning staff.
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "superadmin"
	RoleStaff      AdminRole = "staff"
)

// Admin represents an administrative user (survey-owning staff or platform admin).
type Admin struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         AdminRole `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminLoginRequest is the payload for admin authentication.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// AdminLoginResponse is returned after successful admin login.
type AdminLoginResponse struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// CreateAdminRequest is the payload for creating a new admin user.
type CreateAdminRequest struct {
	Name     string    `json:"name" binding:"required,min=2,max=100"`
	Email    string    `json:"email" binding:"required,email"`
	Role     AdminRole `json:"role" binding:"required,oneof=superadmin staff"`
	Password string    `json:"password" binding:"required,min=6,max=128"`
}
