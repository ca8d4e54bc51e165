// Package server is the HTTP runtime shared by the tuner daemon.
//
// It owns everything that is not domain logic: the listener, the middleware
// chain, probes, metrics, structured error responses and graceful shutdown.
// Domain handlers are passed in as a map of ServeMux patterns:
//
//	s := server.New(
//	    server.WithName("tunerd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /motorcycle/{id}": h.GetMotorcycle,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Middleware
//
// Every configured handler runs inside, outermost first: Prometheus RED
// metrics labelled by route pattern, API version negotiation
// (Accept: application/vnd.motolab.tuner.v1+json, echoed as X-API-Version),
// X-Request-Id propagation, panic recovery, a token bucket rate limiter
// (golang.org/x/time/rate) and debug request logging.
//
// # System Endpoints
//
//	GET /health   liveness
//	GET /ready    503 until the listener is bound and again during shutdown
//	GET /metrics  Prometheus exposition
//	GET /         name, version and route listing
//
// System endpoints bypass the middleware chain.
//
// # Errors
//
// Failures produced by the server itself (405, 429, 500, malformed input)
// are JSON ErrorResponse bodies. WriteErrorFromErr maps a
// *errors.StructuredError to a status via HTTPStatusFromCode.
//
// # Configuration
//
// Defaults come from package defaults and can be overridden with ADDRESS,
// PORT, SHUTDOWN_TIMEOUT_SECONDS, RATE_LIMIT and RATE_LIMIT_BURST.
//
// # Lifecycle
//
// Run installs SIGINT/SIGTERM handling and blocks. Start binds before
// reporting ready, sends READY=1 to systemd when running as a notify
// service, and on cancellation sends STOPPING=1 and drains connections for
// up to ShutdownTimeout.
package server
