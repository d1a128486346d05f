package model

// SearchState lives only inside one multi-hop search call.
type SearchState struct {
	CurrentPoint     Coordinate
	PathSoFar        []Coordinate
	VehiclesUsed     []string
	LastRouteIndex   int
	CurrentVehicleID string
	Hops             int // vehicle boardings so far
}

// SearchResult is the raw outcome of a multi-hop search before assembly.
// VehiclesUsed preserves boarding order and may contain consecutive
// duplicates; the assembler deduplicates for profile lookups.
type SearchResult struct {
	Path         []Coordinate
	VehiclesUsed []string
}
