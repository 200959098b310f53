package security

import "context"

// Identity is the caller as read from the bearer token. Token is kept so
// calls to the hosted backend can act on the caller's behalf.
type Identity struct {
	Subject string
	Name    string
	Email   string
	Token   string
}

// Author is the name recorded as created_by.
func (i Identity) Author() string {
	switch {
	case i.Name != "":
		return i.Name
	case i.Email != "":
		return i.Email
	default:
		return i.Subject
	}
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// AuthorFrom returns the caller recorded on ctx, or fallback when the
// request was anonymous.
func AuthorFrom(ctx context.Context, fallback string) string {
	if identity, ok := IdentityFrom(ctx); ok && identity.Author() != "" {
		return identity.Author()
	}
	return fallback
}
