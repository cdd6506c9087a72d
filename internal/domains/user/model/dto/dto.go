package dto

import (
	"net/http"
	"roomify/internal/domains/user/model"
	"roomify/shared"
	"roomify/shared/constant"
	"strings"
)

// UserFilter narrows the directory. Department matches case-insensitively.
type UserFilter struct {
	Role       string
	Department string
}

func (f *UserFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Role = query.Get(constant.RequestParamRole)
	f.Department = query.Get(constant.RequestParamDepartment)
}

func (f UserFilter) Match(user model.User) bool {
	if f.Role != constant.Empty && user.Role != f.Role {
		return false
	}

	return f.Department == constant.Empty || strings.EqualFold(user.Department, f.Department)
}

type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func (r *UserResponse) FromModel(m model.User) {
	*r = UserResponse{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Role:       m.Role,
		Department: m.Department,
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, m := range models {
		r.Users[i].FromModel(m)
	}
}
