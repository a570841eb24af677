package dto

// FileStat describes one stored artifact in the stats listing.
type FileStat struct {
	Filename       string  `json:"filename"`
	Type           string  `json:"type"`
	SizeKB         float64 `json:"size_kb"`
	AgeHours       float64 `json:"age_hours"`
	RemainingHours float64 `json:"remaining_hours"`
}

// StatsResponse aggregates the current store contents.
type StatsResponse struct {
	TotalFiles     int        `json:"total_files"`
	HTMLFiles      int        `json:"html_files"`
	PDFFiles       int        `json:"pdf_files"`
	TotalSizeMB    float64    `json:"total_size_mb"`
	MaxAgeHours    float64    `json:"max_age_hours"`
	MaxFileSizeMB  float64    `json:"max_file_size_mb"`
	APIKeyRequired bool       `json:"api_key_required"`
	PDFEnabled     bool       `json:"pdf_enabled"`
	Files          []FileStat `json:"files"`
}

// HealthResponse reports service liveness. GotenbergConnected is null when
// PDF rendering is disabled.
type HealthResponse struct {
	Status             string `json:"status"`
	PDFEnabled         bool   `json:"pdf_enabled"`
	GotenbergConnected *bool  `json:"gotenberg_connected"`
}

// IndexResponse is the static service metadata served at the root.
type IndexResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Docs      string            `json:"docs"`
	Endpoints map[string]string `json:"endpoints"`
	Config    IndexConfig       `json:"config"`
}

// IndexConfig summarises the non-secret runtime configuration.
type IndexConfig struct {
	MaxFileSizeMB  float64 `json:"max_file_size_mb"`
	MaxAgeHours    float64 `json:"max_age_hours"`
	APIKeyRequired bool    `json:"api_key_required"`
	PDFEnabled     bool    `json:"pdf_enabled"`
}
