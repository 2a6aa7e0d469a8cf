package middleware

import "context"

// ContextKey is the private type for request-scoped values.
type ContextKey string

const (
	// WalletAddressCtxKey holds the authenticated wallet address set by JWTAuth.
	WalletAddressCtxKey = ContextKey("wallet_address")
	// RequestIDCtxKey holds the id assigned by RequestID.
	RequestIDCtxKey = ContextKey("request_id")
)

// WalletAddress returns the authenticated wallet address, if any.
func WalletAddress(ctx context.Context) (string, bool) {
	addr, ok := ctx.Value(WalletAddressCtxKey).(string)
	return addr, ok && addr != ""
}

// RequestIDFromContext returns the request id or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDCtxKey).(string)
	return id
}
