package domain

// Targeting describes who should see the ads of a campaign or ad set. It is
// stored locally as JSONB and JSON-encoded into a single form parameter when
// sent to the remote platform.
type Targeting struct {
	GeoLocations       *GeoLocations   `json:"geo_locations,omitempty"`
	AgeMin             int             `json:"age_min,omitempty"`
	AgeMax             int             `json:"age_max,omitempty"`
	Genders            []int           `json:"genders,omitempty"`
	Locales            []int           `json:"locales,omitempty"`
	Interests          []TargetingSpec `json:"interests,omitempty"`
	Behaviors          []TargetingSpec `json:"behaviors,omitempty"`
	CustomAudiences    []TargetingSpec `json:"custom_audiences,omitempty"`
	PublisherPlatforms []string        `json:"publisher_platforms,omitempty"`
	DevicePlatforms    []string        `json:"device_platforms,omitempty"`
}

// GeoLocations narrows targeting to countries, regions or cities.
type GeoLocations struct {
	Countries []string         `json:"countries,omitempty"`
	Regions   []map[string]any `json:"regions,omitempty"`
	Cities    []map[string]any `json:"cities,omitempty"`
}

// TargetingSpec is an id/name pair referencing a platform-defined audience
// attribute such as an interest or behavior.
type TargetingSpec struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}
