package middleware

import (
	"context"
	"net/http"

	"github.com/jaekwang-park/taskboard/internal/model"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	slotKey      contextKey = "principal_slot"
)

// principalSlot lets an outer middleware observe the principal that an inner
// one attached to a derived context.
type principalSlot struct {
	userID string
}

func withSlot(ctx context.Context, s *principalSlot) context.Context {
	return context.WithValue(ctx, slotKey, s)
}

// slotFor returns r carrying a principal slot, reusing one an outer
// middleware already installed.
func slotFor(r *http.Request) (*http.Request, *principalSlot) {
	if s, ok := r.Context().Value(slotKey).(*principalSlot); ok {
		return r, s
	}
	s := &principalSlot{}
	return r.WithContext(withSlot(r.Context(), s)), s
}

func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	if s, ok := ctx.Value(slotKey).(*principalSlot); ok {
		s.userID = p.ID
	}
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(model.Principal)
	return p, ok && p.ID != ""
}

// UserID returns the authenticated user's ID, or "" when the request carries
// no principal.
func UserID(r *http.Request) string {
	p, _ := PrincipalFrom(r.Context())
	return p.ID
}
