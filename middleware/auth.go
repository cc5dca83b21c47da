package middleware

import (
	"fmt"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/blogem/enquiry-desk/userctx"
)

// Session keys shared with the auth controller
const (
	SessionUserID        = "user_id"
	SessionUserEmail     = "user_email"
	SessionUserNickname  = "user_nickname"
	SessionRedirectAfter = "redirect_after_login"
)

// LoginPath is where anonymous admin requests are sent
const LoginPath = "/admin-login/"

// RequireAuth ensures the user is authenticated.
// If not authenticated, redirects to the login page and stores the intended destination.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		userID := sess.Get(SessionUserID)

		if userID == nil {
			// Only GETs are safe to replay after login
			if r.Method == http.MethodGet {
				sess.Set(SessionRedirectAfter, r.URL.RequestURI())
			}
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}

		ctx := userctx.SetUserID(r.Context(), fmt.Sprint(userID))
		if email, ok := sess.Get(SessionUserEmail).(string); ok {
			ctx = userctx.SetUserEmail(ctx, email)
		}
		if nickname, ok := sess.Get(SessionUserNickname).(string); ok {
			ctx = userctx.SetUserNickname(ctx, nickname)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
