// Package header provides the common header carried by tuner documents.
//
// Every document the tuner reads or writes (garage seed files, build reports)
// starts with the same three fields:
//
//	kind: Garage
//	apiVersion: tuner.motolab.dev/v1
//	metadata:
//	  timestamp: "2026-01-15T10:30:00Z"
//	  version: v0.4.0
//
// Create a header with functional options:
//
//	h := header.New(
//	    header.WithKind(header.KindBuildReport),
//	    header.WithMetadata("motorcycle", "r1"),
//	)
//
// Or stamp an embedded header in place:
//
//	var report Report
//	report.Init(header.KindBuildReport, header.APIVersion, version)
//
// Readers call Validate to reject documents of the wrong kind before decoding
// the rest of the payload.
package header
