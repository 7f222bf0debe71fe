// Package logger builds configured slog.Logger instances.
//
// The factory supports JSON and text output, static attributes, and dynamic
// attribute extraction from context (request ids, tenant ids) via a handler
// decorator that runs only on the logging hot path.
//
//	log := logger.New(
//	    logger.WithProduction("brandkit"),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
package logger
