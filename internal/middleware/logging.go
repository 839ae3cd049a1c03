package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs one line per RPC.
// Client-caused failures (any code but Internal and Unknown) are warnings.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("peer", req.Peer().Addr),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}

			level, msg := slog.LevelInfo, "RPC ok"
			if err != nil {
				msg = "RPC error"
				level = slog.LevelError
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					attrs = append(attrs,
						slog.String("code", connectErr.Code().String()),
						slog.String("error", connectErr.Message()),
					)
					if code := connectErr.Code(); code != connect.CodeInternal && code != connect.CodeUnknown {
						level = slog.LevelWarn
					}
				} else {
					attrs = append(attrs, slog.Any("error", err))
				}
			}

			slog.LogAttrs(ctx, level, msg, attrs...)
			return resp, err
		}
	}
}
