package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Output
	OutputDir string `json:"output_dir"`

	// Sheet catalog file; empty uses the built-in catalog
	CatalogFile string `json:"catalog_file,omitempty"`

	// Defaults applied to doors defined on the command line
	DefaultDoorType       DoorType `json:"default_door_type"`
	DefaultFrameThickness float64  `json:"default_frame_thickness"`
	DefaultLeafThickness  float64  `json:"default_leaf_thickness"`

	// Extra artefacts written by generate alongside the face DXFs
	ExportPDF    bool `json:"export_pdf"`
	ExportLabels bool `json:"export_labels"`
	ExportXLSX   bool `json:"export_xlsx"`

	RecentSchedules []string `json:"recent_schedules"`
}

// DefaultAppConfig returns an AppConfig populated with the door defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		OutputDir:             "output",
		DefaultDoorType:       DoorSingle,
		DefaultFrameThickness: DefaultFrameThickness,
		DefaultLeafThickness:  DefaultLeafThickness,
		ExportPDF:             false,
		ExportLabels:          false,
		ExportXLSX:            false,
		RecentSchedules:       []string{},
	}
}

// ApplyToOptions fills zero-valued thicknesses in opts from the config.
func (c AppConfig) ApplyToOptions(opts *DoorOptions) {
	if opts.FrameThickness == 0 {
		opts.FrameThickness = c.DefaultFrameThickness
	}
	if opts.LeafThickness == 0 {
		opts.LeafThickness = c.DefaultLeafThickness
	}
}

// AddRecentSchedule records path as the most recently used schedule,
// keeping at most ten entries without duplicates.
func (c *AppConfig) AddRecentSchedule(path string) {
	list := []string{path}
	for _, p := range c.RecentSchedules {
		if p != path {
			list = append(list, p)
		}
	}
	if len(list) > 10 {
		list = list[:10]
	}
	c.RecentSchedules = list
}
