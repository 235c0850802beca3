package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"social-service/internal/shared/apperr"
)

type signupShape struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,max=30,username"`
	Password string `validate:"required,min=8,max=100"`
	Bio      string `validate:"omitempty,max=200"`
}

func valid() signupShape {
	return signupShape{
		Email:    "alice@example.com",
		Username: "alice_01",
		Password: "hunter22!",
	}
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*signupShape)
		wantErr bool
	}{
		{"valid payload", func(*signupShape) {}, false},
		{"underscore in username allowed", func(s *signupShape) { s.Username = "a_b_c" }, false},
		{"username with space", func(s *signupShape) { s.Username = "ali ce" }, true},
		{"username with dash", func(s *signupShape) { s.Username = "ali-ce" }, true},
		{"username too short", func(s *signupShape) { s.Username = "ab" }, true},
		{"username too long", func(s *signupShape) { s.Username = strings.Repeat("a", 31) }, true},
		{"bad email", func(s *signupShape) { s.Email = "nope" }, true},
		{"password too short", func(s *signupShape) { s.Password = "short" }, true},
		{"bio over 200 chars", func(s *signupShape) { s.Bio = strings.Repeat("x", 201) }, true},
		{"empty bio allowed", func(s *signupShape) { s.Bio = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := Struct(s)
			if tt.wantErr {
				require.ErrorIs(t, err, apperr.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestVar(t *testing.T) {
	require.NoError(t, Var("abc", "min=3", "q"))
	require.ErrorIs(t, Var("ab", "min=3", "q"), apperr.ErrValidation)
}
