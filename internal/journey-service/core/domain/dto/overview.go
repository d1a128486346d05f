package dto

type FleetOverviewDto struct {
	RegisteredVehicles int           `json:"registeredVehicles"`
	ReportingVehicles  int           `json:"reportingVehicles"` // fix within the last 5 minutes
	RecordedPoints     int64         `json:"recordedPoints"`
	Cache              CacheStatsDto `json:"cache"`
}

type CacheStatsDto struct {
	Entries int `json:"entries"`
	Fresh   int `json:"fresh"`
	Stale   int `json:"stale"`
}
