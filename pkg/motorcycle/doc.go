// Package motorcycle models a motorcycle build and the upgrades installed on it.
//
// A Motorcycle carries fixed base specs (model, base horsepower, weight) and
// an ordered list of at most MaxUpgrades upgrades. Two derived fields are kept
// in step with that list:
//
//	total_cost        = Σ cost
//	performance_index = (base_hp + Σ hp_gain) / (weight_kg − Σ weight_reduction) × 100
//
// Both are recomputed inside AddUpgrade and RemoveUpgrade before they return,
// so a caller holding the record never sees one without the other. Final
// weight is not clamped: a build whose weight reductions reach or pass the
// base weight reports an infinite or negative index.
//
// Motorcycle is not safe for concurrent use. Callers that share a record
// serialize mutations themselves (see package registry) and hand readers a
// Clone.
//
// Failures are *errors.StructuredError values matched with errors.Is:
//
//	if err := bike.AddUpgrade(u); errors.Is(err, motorcycle.ErrCapacityExceeded) {
//	    ...
//	}
package motorcycle
