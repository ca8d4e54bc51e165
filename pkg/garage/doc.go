// Package garage exposes the motorcycle registry over HTTP.
//
// Routes, as ServeMux patterns:
//
//	GET    /motorcycle/{id}                  build as JSON, 404 with empty body when unknown
//	POST   /motorcycle/{id}/upgrade          install the Upgrade in the body
//	DELETE /motorcycle/{id}/upgrade/{name}   remove the first upgrade with that name
//	GET    /motorcycle/{id}/report           build report with stage and manufacturer breakdowns
//	GET    /motorcycle/{id}/plan?budget=N    parts from the catalog that fit the budget
//	GET    /motorcycles                      summary of every build
//	GET    /catalog                          the parts catalog
//
// Domain failures keep their plain-text form: an unknown build is a bare 404,
// a full build answers 400 "Maximum upgrades reached" and a missing upgrade
// answers 400 "Upgrade not found". Malformed requests get the server's JSON
// ErrorResponse.
package garage
