package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

func TestUserCreate(t *testing.T) {
	users := newMemUsers()
	svc := NewUserService(users, bcrypt.MinCost, zerolog.Nop())

	u, err := svc.Create(context.Background(), CreateUserInput{FirstName: "Op", Email: "op@x.com", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != model.RoleOperator || !utils.IsBcryptHash(users.byID[u.ID].Password) {
		t.Errorf("user = %+v", users.byID[u.ID])
	}

	hash, _ := utils.HashPassword("pre", bcrypt.MinCost)
	u2, err := svc.Create(context.Background(), CreateUserInput{FirstName: "Ad", Email: "ad@x.com", Password: hash, Role: model.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if users.byID[u2.ID].Password != hash {
		t.Error("pre-hashed password was re-hashed")
	}

	if _, err := svc.Create(context.Background(), CreateUserInput{FirstName: "X", Email: "x@x.com"}); !errors.Is(err, model.ErrValidation) {
		t.Errorf("no password: err = %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateUserInput{FirstName: "X", Email: "x@x.com", Password: "p", Role: "root"}); !errors.Is(err, model.ErrValidation) {
		t.Errorf("bad role: err = %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateUserInput{FirstName: "Op", Email: "op@x.com", Password: "p"}); !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("duplicate: err = %v", err)
	}
}

func TestUserUpdatePasswordChange(t *testing.T) {
	hash, _ := utils.HashPassword("old", bcrypt.MinCost)
	users := newMemUsers(
		model.User{ID: 1, FirstName: "Ana", Email: "ana@x.com", Password: hash, Role: model.RoleOperator},
		model.User{ID: 2, FirstName: "Leg", Email: "leg@x.com", Password: "legacy", Role: model.RoleOperator},
	)
	svc := NewUserService(users, bcrypt.MinCost, zerolog.Nop())
	ctx := context.Background()

	base := UpdateUserInput{FirstName: "Ana", LastName: "Paz", Email: "ana@x.com"}

	in := base
	in.NewPassword = "new"
	if err := svc.Update(ctx, 1, in); !errors.Is(err, model.ErrValidation) {
		t.Errorf("missing current: err = %v", err)
	}
	in.CurrentPassword = "nope"
	if err := svc.Update(ctx, 1, in); !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("wrong current: err = %v", err)
	}
	in.CurrentPassword = "old"
	if err := svc.Update(ctx, 1, in); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !utils.ClassifyCredential(users.byID[1].Password).Verify("new") {
		t.Error("new password not stored")
	}
	if users.byID[1].Role != model.RoleOperator || users.byID[1].LastName != "Paz" {
		t.Errorf("user = %+v", users.byID[1])
	}

	legacy := UpdateUserInput{FirstName: "Leg", Email: "leg@x.com", CurrentPassword: "legacy", NewPassword: "fresh", Role: model.RoleAdmin}
	if err := svc.Update(ctx, 2, legacy); err != nil {
		t.Fatalf("legacy update: %v", err)
	}
	if users.byID[2].Role != model.RoleAdmin || !utils.IsBcryptHash(users.byID[2].Password) {
		t.Errorf("user = %+v", users.byID[2])
	}

	if err := svc.Update(ctx, 9, base); !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("missing: err = %v", err)
	}
}

func TestUserDelete(t *testing.T) {
	svc := NewUserService(newMemUsers(model.User{ID: 1, Email: "a@x.com"}), bcrypt.MinCost, zerolog.Nop())
	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("err = %v", err)
	}
}
