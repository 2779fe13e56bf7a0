package middleware

import (
	"context"

	"scholarhub/internal/policy"
)

type ContextKey string

const (
	ContextUserID    ContextKey = "user_id"
	ContextIsAdmin   ContextKey = "is_admin"
	ContextRequestID ContextKey = "request_id"
)

// PrincipalFromCtx возвращает принципала запроса или nil, если запрос
// не аутентифицирован.
func PrincipalFromCtx(ctx context.Context) *policy.Principal {
	userID, ok := ctx.Value(ContextUserID).(int)
	if !ok {
		return nil
	}
	isAdmin, _ := ctx.Value(ContextIsAdmin).(bool)
	return &policy.Principal{ID: userID, IsAdmin: isAdmin}
}
