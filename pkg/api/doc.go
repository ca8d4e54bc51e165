// Package api wires the garage handlers into the reusable pkg/server package
// and runs the tunerd daemon.
//
// # Usage
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/motolab/tuner/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET    /motorcycle/{id}                - current build
//   - POST   /motorcycle/{id}/upgrade        - install an upgrade
//   - DELETE /motorcycle/{id}/upgrade/{name} - remove the first upgrade with that name
//   - GET    /motorcycle/{id}/report         - build report
//   - GET    /motorcycle/{id}/plan?budget=N  - suggested parts within a budget
//   - GET    /motorcycles                    - summary of every build
//   - GET    /catalog                        - parts catalog
//
// System endpoints (not rate limited):
//   - GET /health, GET /ready, GET /metrics
//
// # Configuration
//
// Besides the server variables (ADDRESS, PORT, RATE_LIMIT, ...) the daemon
// reads SEED_FILE, a Garage document in JSON or YAML. Without it the registry
// holds the two stock builds "r1" and "v4".
//
//	kind: Garage
//	apiVersion: tuner.motolab.dev/v1
//	motorcycles:
//	  r1:
//	    model: Yamaha R1
//	    base_hp: 200
//	    weight_kg: 201
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/motolab/tuner/pkg/api.version=1.0.0'"
package api
