package authenticator

import "time"

// Token kinds. The kind is written into the subject claim, so a token of one
// kind never verifies as another even though both are signed with the same
// secret.
const (
	KindApp     = "app"
	KindSession = "session"
)

type TokenEngine interface {
	Generate(kind string, expiration time.Duration, obj any) (string, error)
	Verify(kind, token string, obj any) error
}
