package services

import "context"

type ctxKey string

const principalIDKey ctxKey = "principalID"

// ContextWithPrincipalID attaches a verified principal ID to the request
// context. The transport layer calls this after validating the access
// token; there is no ambient global holding the current principal.
func ContextWithPrincipalID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, principalIDKey, id)
}

// PrincipalIDFromContext extracts the verified principal ID attached to
// the request context, if any.
func PrincipalIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(principalIDKey).(string)
	return id, ok && id != ""
}
