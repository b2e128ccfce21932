package main

import (
	"bytes"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevtoken_MintsVerifiableToken(t *testing.T) {
	cmd := newCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--user", "user-1", "--employee", "emp-1", "--role", "HR", "--secret", "s3cret", "--ttl", "10m"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "expires at")

	token := bytes.TrimSpace(out.Bytes())
	decoded, err := jwtauth.VerifyToken(jwtauth.New("HS256", []byte("s3cret"), nil), string(token))
	require.NoError(t, err)

	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	identity, err := jwt.IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "hr", string(identity.Role))
	require.NotNil(t, identity.EmployeeID)
	assert.Equal(t, "emp-1", *identity.EmployeeID)
}

func TestDevtoken_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing user", []string{"--secret", "s"}},
		{"missing secret", []string{"--user", "u", "--secret", ""}},
		{"unknown role", []string{"--user", "u", "--secret", "s", "--role", "ceo"}},
		{"zero ttl", []string{"--user", "u", "--secret", "s", "--ttl", "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCommand()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			assert.Error(t, cmd.Execute())
		})
	}
}
