package userctx

import "context"

// Context key type
type contextKey string

const (
	userEmailKey    contextKey = "user_email"
	userIDKey       contextKey = "user_id"
	userNicknameKey contextKey = "user_nickname"
)

// SetUserEmail adds user email to request context
func SetUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey, email)
}

// GetUserEmail retrieves user email from request context
func GetUserEmail(ctx context.Context) string {
	email, ok := ctx.Value(userEmailKey).(string)
	if !ok || email == "" {
		return "anonymous"
	}
	return email
}

// SetUserID adds user ID to request context
func SetUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// GetUserID retrieves user ID from request context
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// SetUserNickname adds the display name to request context
func SetUserNickname(ctx context.Context, nickname string) context.Context {
	return context.WithValue(ctx, userNicknameKey, nickname)
}

// GetUserNickname retrieves the display name, falling back to the email
func GetUserNickname(ctx context.Context) string {
	if nickname, ok := ctx.Value(userNicknameKey).(string); ok && nickname != "" {
		return nickname
	}
	return GetUserEmail(ctx)
}
