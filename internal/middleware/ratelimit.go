package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/ratelimit"
)

var errRateLimited = errors.New("rate limit exceeded, retry later")

// RateLimitInterceptor rejects calls beyond the limiter's budget with
// CodeResourceExhausted. Calls are keyed by peer host. When the limiter itself
// fails the call is let through.
func RateLimitInterceptor(limiter ratelimit.Limiter) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			key := peerHost(req.Peer().Addr)

			allowed, err := limiter.Allow(ctx, key)
			if err != nil {
				slog.Warn("Rate limiter unavailable, allowing request",
					"procedure", req.Spec().Procedure,
					"peer", key,
					"error", err,
				)
				return next(ctx, req)
			}
			if !allowed {
				return nil, connect.NewError(connect.CodeResourceExhausted, errRateLimited)
			}

			return next(ctx, req)
		}
	}
}

func peerHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
