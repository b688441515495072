package auth

import (
	"context"
	"net/http"
	"strings"
)

const isAdminKey contextKey = "is_admin"

// WithIsAdmin stores the admin flag in the context.
func WithIsAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// IsAdminFromContext returns whether the authenticated operator is an admin.
// Returns false when not set.
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}

// ParseAdminEmails splits a comma-separated ADMIN_EMAILS value into a list,
// trimming whitespace and dropping empty entries.
func ParseAdminEmails(s string) []string {
	var emails []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			emails = append(emails, part)
		}
	}
	return emails
}

// EmailLookup resolves a user ID to the account's email address.
type EmailLookup func(ctx context.Context, userID string) (string, error)

// AdminMiddleware marks the request context with the admin flag when the
// authenticated user's email is in adminEmails. It never rejects requests
// itself; handlers decide what non-admin access means.
func AdminMiddleware(adminEmails []string, lookup EmailLookup) func(http.Handler) http.Handler {
	set := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		set[e] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isAdmin := false
			if userID, ok := UserIDFromContext(r.Context()); ok && len(set) > 0 {
				if email, err := lookup(r.Context(), userID); err == nil {
					isAdmin = set[email]
				}
			}
			ctx := WithIsAdmin(r.Context(), isAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
