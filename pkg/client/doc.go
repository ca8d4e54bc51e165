// Package client is a typed HTTP client for the tunerd API.
//
// The transport is tuned the same way for every call: pooled connections,
// TLS 1.2 or newer, and the connect, handshake and header timeouts from
// pkg/defaults. Every method takes a context.
//
//	c := client.New("http://127.0.0.1:8080")
//	bike, err := c.AddUpgrade(ctx, "v4", motorcycle.Upgrade{Name: "Exhaust", Cost: 500, HPGain: 15})
//	if errors.Is(err, motorcycle.ErrCapacityExceeded) {
//	    // the build already has ten upgrades
//	}
//
// Non-2xx responses are returned as *errors.StructuredError. The daemon's
// empty 404 becomes NOT_FOUND, its plain-text 400s become CAPACITY_EXCEEDED or
// UPGRADE_NOT_FOUND, and structured JSON errors keep their own code.
package client
