package auth

import "context"

// Principal is the authenticated admin operator.
type Principal struct {
	Username string
	Method   string
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the operator set by Middleware, or nil.
func PrincipalFromContext(ctx context.Context) *Principal {
	if p, ok := ctx.Value(principalKey{}).(*Principal); ok {
		return p
	}
	return nil
}

// Username is a convenience for audit fields; it returns "" when unauthenticated.
func Username(ctx context.Context) string {
	if p := PrincipalFromContext(ctx); p != nil {
		return p.Username
	}
	return ""
}
