package store

import (
	"testing"

	"github.com/bookwell/bookwell/model"
)

func TestListUsers(t *testing.T) {
	s := createTestStore(t)
	for _, username := range []string{"host", "reader"} {
		if _, err := s.CreateUser(&model.User{
			Username:     username,
			PasswordHash: "hash",
			Role:         model.RoleUser,
		}); err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
	}

	users, err := s.ListUsers(&model.FindUser{})
	if err != nil {
		t.Fatalf("Failed to list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}

	role := model.RoleUser
	users, err = s.ListUsers(&model.FindUser{Role: &role})
	if err != nil {
		t.Fatalf("Failed to list users: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("Expected 2 users with role USER, got %d", len(users))
	}
}

func TestUpdateUserRoleAndStatus(t *testing.T) {
	s := createTestStore(t)
	user, err := s.CreateUser(&model.User{
		Username:     "reader",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	role := model.RoleAdmin
	updated, err := s.UpdateUser(user.ID, &model.UserUpdateRequest{Role: &role})
	if err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}
	if updated.Role != model.RoleAdmin {
		t.Errorf("Expected role ADMIN, got %s", updated.Role)
	}
	if updated.RowStatus != model.Normal {
		t.Errorf("Expected row status untouched, got %s", updated.RowStatus)
	}

	status := model.Archived
	updated, err = s.UpdateUser(user.ID, &model.UserUpdateRequest{RowStatus: &status})
	if err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}
	if updated.RowStatus != model.Archived {
		t.Errorf("Expected row status ARCHIVED, got %s", updated.RowStatus)
	}
	if updated.Role != model.RoleAdmin {
		t.Errorf("Expected role untouched, got %s", updated.Role)
	}

	// The cache must not serve the stale row.
	fetched, err := s.GetUser(&model.FindUser{ID: &user.ID})
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if fetched.RowStatus != model.Archived || fetched.Role != model.RoleAdmin {
		t.Errorf("Stale user after update: role=%s status=%s", fetched.Role, fetched.RowStatus)
	}

	// An empty update changes nothing.
	updated, err = s.UpdateUser(user.ID, &model.UserUpdateRequest{})
	if err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}
	if updated.Role != model.RoleAdmin || updated.RowStatus != model.Archived {
		t.Errorf("Empty update changed the user: role=%s status=%s", updated.Role, updated.RowStatus)
	}
}
