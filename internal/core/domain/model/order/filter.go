package order

// Filter is the typed predicate used to query orders from the store.
// Zero-value fields do not restrict the result; results are ordered by ascending id.
type Filter struct {
	// ID restricts to a single order.
	ID *int64
	// CourierID restricts to orders assigned to the courier.
	CourierID *int64
	// Unassigned restricts to orders without a courier.
	Unassigned bool
	// Incomplete restricts to orders that are not completed.
	Incomplete bool
	// Completed restricts to completed orders.
	Completed bool
	// Regions restricts to orders in any of the regions. An empty non-nil slice matches nothing.
	Regions []int64
	// ForUpdate locks the matched rows until the unit of work ends.
	ForUpdate bool
	// SkipLocked skips rows locked by other units of work. Only meaningful with ForUpdate.
	SkipLocked bool
}
