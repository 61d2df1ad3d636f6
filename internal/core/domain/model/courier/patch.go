package courier

import "dispatch/internal/core/domain/model/kernel"

// Patch lists the updatable courier fields. A nil field is absent and left untouched;
// a present field replaces the current value wholesale.
type Patch struct {
	Type         *Type
	Regions      *[]int64
	WorkingHours *[]kernel.TimeInterval
}

// IsEmpty reports whether no field is present.
func (p Patch) IsEmpty() bool {
	return p.Type == nil && p.Regions == nil && p.WorkingHours == nil
}

// AffectsEligibility reports whether applying the patch may invalidate current assignments.
// Every updatable field takes part in the eligibility check, so any non-empty patch does.
func (p Patch) AffectsEligibility() bool {
	return !p.IsEmpty()
}
