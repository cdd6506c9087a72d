package model

const (
	EntityName = "user"

	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
	RoleHOD     = "hod"
)

var Roles = []string{RoleStudent, RoleFaculty, RoleAdmin, RoleHOD}

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func (u User) Key() string {
	return u.ID
}

func (u User) Clone() User {
	return u
}
