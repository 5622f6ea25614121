package auth

import "context"

// AuthVerifier verifica una firma/token de wallet y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
