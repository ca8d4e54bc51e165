// Package cli implements the tuner command-line interface.
//
// # Commands
//
// serve - run the daemon in-process:
//
//	tuner serve [--address 127.0.0.1] [--port 8080] [--seed garage.yaml]
//
// get, list, report - read builds from a running daemon:
//
//	tuner get r1
//	tuner list --format table
//	tuner report r1 v4 --format yaml --output report.yaml
//
// report wraps the reports in a BuildReport document (kind: BuildReport,
// apiVersion: tuner.motolab.dev/v1).
//
// plan, catalog - parts suggestions:
//
//	tuner plan --budget 1500 r1
//	tuner catalog
//
// upgrade - modify a build:
//
//	tuner upgrade add --name "Full Exhaust" --manufacturer Akrapovič --stage 2 \
//	    --cost 2499.99 --hp-gain 8 --weight-reduction 4.5 --installation-time 2 v4
//	tuner upgrade remove v4 "Full Exhaust"
//
// Adding to a build that already has ten upgrades fails with
// "Maximum upgrades reached"; removing a name that is not installed fails with
// "Upgrade not found". The build is unchanged in both cases.
//
// simulate - offline, no daemon needed:
//
//	tuner simulate --seed garage.yaml [--budget 1000] [--snapshot out.yaml]
//
// # Global Flags
//
//	--server, -s   tunerd base URL (default http://127.0.0.1:8080, env TUNER_SERVER)
//	--timeout      per-request timeout (default 15s)
//	--output, -o   output file path (default: stdout)
//	--format, -t   output format: json, yaml, table (default: json)
//	--log-level    debug, info, warn, error (env LOG_LEVEL)
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/motolab/tuner/pkg/cli.version=1.0.0'"
package cli
