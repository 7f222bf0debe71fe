// Package httpserver wraps net/http.Server with graceful shutdown, signal
// handling, and env-driven configuration.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server exited", "error", err)
//	}
package httpserver
