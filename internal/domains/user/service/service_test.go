package service_test

import (
	"context"
	"roomify/infras/memstore"
	"roomify/infras/otel/mocks"
	"roomify/internal/domains/user/model"
	"roomify/internal/domains/user/model/dto"
	"roomify/internal/domains/user/service"
	gDto "roomify/shared/dto"
	"roomify/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) service.User {
	t.Helper()

	store := memstore.New(mocks.NewOtel())
	err := store.Update(context.Background(), func(tx *memstore.State) error {
		for _, u := range []model.User{
			{ID: "user1", Name: "Sam", Role: model.RoleStudent, Department: "Computer Science"},
			{ID: "fac1", Name: "Jordan", Role: model.RoleFaculty, Department: "Computer Science"},
			{ID: "admin", Name: "Admin", Role: model.RoleAdmin, Department: "Administration"},
		} {
			if err := tx.Users.Insert(u); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)

	return service.New(store, mocks.NewOtel())
}

func TestUserService_Get(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name     string
		id       string
		wantRole string
		wantErr  func(error) bool
	}{
		{name: "known user", id: "fac1", wantRole: model.RoleFaculty},
		{name: "unknown user", id: "ghost", wantErr: failure.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id, res.ID)
			assert.Equal(t, tt.wantRole, res.Role)
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	svc := newService(t)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 2, Limit: 2}, dto.UserFilter{})

	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "user1", res.Users[0].ID)
}

func TestUserService_GetAll_Filtered(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name   string
		filter dto.UserFilter
		params gDto.QueryParams
		ids    []string
	}{
		{name: "by department", filter: dto.UserFilter{Department: "computer science"}, ids: []string{"fac1", "user1"}},
		{name: "by role", filter: dto.UserFilter{Role: model.RoleAdmin}, ids: []string{"admin"}},
		{name: "descending", params: gDto.QueryParams{SortDir: gDto.SortDirDesc}, ids: []string{"user1", "fac1", "admin"}},
		{name: "no match", filter: dto.UserFilter{Role: model.RoleHOD}, ids: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.GetAll(context.Background(), tt.params, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(res.Users))
			for _, u := range res.Users {
				ids = append(ids, u.ID)
			}

			assert.Equal(t, tt.ids, ids)
		})
	}
}
