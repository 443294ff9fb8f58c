package authenticator_test

import (
	"testing"
	"time"

	"github.com/thready-lab/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(authenticator.KindApp, time.Minute, "abc")
	require.Nil(t, err)

	var msg string
	err = engine.Verify(authenticator.KindApp, token, &msg)
	require.NoError(t, err)
	require.Equal(t, "abc", msg)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(authenticator.KindApp, -time.Minute, "abc")
	require.Nil(t, err)

	var msg string
	err = engine.Verify(authenticator.KindApp, token, &msg)
	require.Error(t, err)
}

func TestJWTWrongKind(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(authenticator.KindSession, time.Minute, "abc")
	require.Nil(t, err)

	var msg string
	err = engine.Verify(authenticator.KindApp, token, &msg)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := authenticator.NewTokenEngine("secret").
		Generate(authenticator.KindApp, time.Minute, "abc")
	require.Nil(t, err)

	var msg string
	err = authenticator.NewTokenEngine("another").
		Verify(authenticator.KindApp, token, &msg)
	require.Error(t, err)
}

func TestJWTMalformed(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")

	var msg string
	err := engine.Verify(authenticator.KindApp, "not-a-token", &msg)
	require.Error(t, err)
}

func TestJWTStructObject(t *testing.T) {
	type info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(
		authenticator.KindSession, time.Minute, info{ID: "u1", Email: "u1@example.com"})
	require.Nil(t, err)

	var got info
	err = engine.Verify(authenticator.KindSession, token, &got)
	require.NoError(t, err)
	require.Equal(t, info{ID: "u1", Email: "u1@example.com"}, got)
}
