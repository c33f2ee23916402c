package model

// AnalysisSettings collects every tolerance, threshold, and weight used by
// the geometry engine so the scoring model can be tuned and tested without
// touching the geometry code. All distances are inches, all angles degrees,
// all weights dimensionless.
type AnalysisSettings struct {
	Contact   ContactSettings   `json:"contact" toml:"contact"`
	Placement PlacementSettings `json:"placement" toml:"placement"`
	Integrity IntegritySettings `json:"integrity" toml:"integrity"`
}

// ContactSettings governs the contact and support graph builder.
type ContactSettings struct {
	// GapTol is the maximum face-to-face gap that still counts as touching.
	GapTol float64 `json:"gap_tol" toml:"gap_tol"`
	// MinOverlap is the minimum extent overlap required on both cross axes
	// for an axis to qualify as a contact axis.
	MinOverlap float64 `json:"min_overlap" toml:"min_overlap"`
	// SupportGapTol is the vertical tolerance between a bottom face and the
	// top face beneath it for a support relationship.
	SupportGapTol float64 `json:"support_gap_tol" toml:"support_gap_tol"`
	// MinSupportOverlap is the minimum horizontal overlap on each of X and Z
	// for a support relationship.
	MinSupportOverlap float64 `json:"min_support_overlap" toml:"min_support_overlap"`
	// GroundTol is how close a part's underside must be to y=0 to count as
	// resting on the floor.
	GroundTol float64 `json:"ground_tol" toml:"ground_tol"`
	// LinkTol expands fastener bounding boxes when testing which wood parts
	// a fastener engages.
	LinkTol float64 `json:"link_tol" toml:"link_tol"`
}

// PlacementSettings governs the automatic fastener placement search.
type PlacementSettings struct {
	// MinAxisAlignment is the minimum dot product between a candidate
	// insertion direction and the normalized center-to-center delta.
	MinAxisAlignment float64 `json:"min_axis_alignment" toml:"min_axis_alignment"`
	// MaxAxisOverlap rejects directions along which the two parts
	// interpenetrate more than this; screws go across seams, not through
	// deeply overlapped volumes.
	MaxAxisOverlap float64 `json:"max_axis_overlap" toml:"max_axis_overlap"`
	// MinPlanarOverlap is the minimum shared extent on each axis of the
	// perpendicular plane's overlap rectangle.
	MinPlanarOverlap float64 `json:"min_planar_overlap" toml:"min_planar_overlap"`
	// MinInterval is the minimum thickness of material a cast line must
	// cross in each part.
	MinInterval float64 `json:"min_interval" toml:"min_interval"`
	// HeadProtrusion is how far the screw head sits proud of the first
	// part's entry face.
	HeadProtrusion float64 `json:"head_protrusion" toml:"head_protrusion"`
	// TipMargin is the minimum material left between the screw tip and the
	// second part's far face.
	TipMargin float64 `json:"tip_margin" toml:"tip_margin"`
	// MinPenetration and MinPenetrationFrac set the per-part depth floor:
	// a screw must sink max(MinPenetration, MinPenetrationFrac*length) of
	// true cross-section into each part.
	MinPenetration     float64 `json:"min_penetration" toml:"min_penetration"`
	MinPenetrationFrac float64 `json:"min_penetration_frac" toml:"min_penetration_frac"`
	// EdgeClearance is the minimum distance from a screw to the edge of the
	// shared overlap region, to avoid edge blow-out.
	EdgeClearance float64 `json:"edge_clearance" toml:"edge_clearance"`
	// SpacingFrac scales the two-screw spacing threshold to the overlap
	// rectangle's larger dimension; MinSpacing is the absolute floor.
	SpacingFrac float64 `json:"spacing_frac" toml:"spacing_frac"`
	MinSpacing  float64 `json:"min_spacing" toml:"min_spacing"`
	// Samples is the number of points tested along the screw span for true
	// footprint penetration. Accuracy/performance tradeoff.
	Samples int `json:"samples" toml:"samples"`
	// Scoring weights for candidate screws.
	DepthWeight     float64 `json:"depth_weight" toml:"depth_weight"`
	ClearanceWeight float64 `json:"clearance_weight" toml:"clearance_weight"`
	SeamWeight      float64 `json:"seam_weight" toml:"seam_weight"`
}

// IntegritySettings governs the structural integrity scorer.
type IntegritySettings struct {
	// WeakThreshold flags parts scoring below it.
	WeakThreshold float64 `json:"weak_threshold" toml:"weak_threshold"`

	// Per-part combination weights.
	SupportWeight     float64 `json:"support_weight" toml:"support_weight"`
	PatternWeight     float64 `json:"pattern_weight" toml:"pattern_weight"`
	ContactWeight     float64 `json:"contact_weight" toml:"contact_weight"`
	SlendernessLimit  float64 `json:"slenderness_limit" toml:"slenderness_limit"`
	SlendernessWeight float64 `json:"slenderness_weight" toml:"slenderness_weight"`
	LinkWeight        float64 `json:"link_weight" toml:"link_weight"`
	LinkCap           float64 `json:"link_cap" toml:"link_cap"`
	GroundedBonus     float64 `json:"grounded_bonus" toml:"grounded_bonus"`
	CantileverWeight  float64 `json:"cantilever_weight" toml:"cantilever_weight"`
	PressureWeight    float64 `json:"pressure_weight" toml:"pressure_weight"`

	// Assembly combination weights.
	PartAverageWeight   float64 `json:"part_average_weight" toml:"part_average_weight"`
	SupportAvgWeight    float64 `json:"support_avg_weight" toml:"support_avg_weight"`
	ConnectivityWeight  float64 `json:"connectivity_weight" toml:"connectivity_weight"`
	SymmetryWeight      float64 `json:"symmetry_weight" toml:"symmetry_weight"`
	GroundedRatioWeight float64 `json:"grounded_ratio_weight" toml:"grounded_ratio_weight"`
	BridgingWeight      float64 `json:"bridging_weight" toml:"bridging_weight"`
	ComponentPenalty    float64 `json:"component_penalty" toml:"component_penalty"`
	WeakRatioPenalty    float64 `json:"weak_ratio_penalty" toml:"weak_ratio_penalty"`
	TopHeavyThreshold   float64 `json:"top_heavy_threshold" toml:"top_heavy_threshold"`
	TopHeavyPenalty     float64 `json:"top_heavy_penalty" toml:"top_heavy_penalty"`

	// ScoreFloor keeps a non-empty assembly's score strictly above zero.
	ScoreFloor float64 `json:"score_floor" toml:"score_floor"`
	// WoodDensity estimates weight from volume, lb per cubic inch.
	WoodDensity float64 `json:"wood_density" toml:"wood_density"`
}

// DefaultSettings returns the tuned defaults. Exported constants live here
// rather than scattered through the geometry code so tests and the TOML
// settings file can override them coherently.
func DefaultSettings() AnalysisSettings {
	return AnalysisSettings{
		Contact: ContactSettings{
			GapTol:            0.06,
			MinOverlap:        0.4,
			SupportGapTol:     0.12,
			MinSupportOverlap: 0.3,
			GroundTol:         0.1,
			LinkTol:           0.05,
		},
		Placement: PlacementSettings{
			MinAxisAlignment:   0.55,
			MaxAxisOverlap:     0.75,
			MinPlanarOverlap:   0.6,
			MinInterval:        0.25,
			HeadProtrusion:     0.03,
			TipMargin:          0.05,
			MinPenetration:     0.35,
			MinPenetrationFrac: 0.3,
			EdgeClearance:      0.25,
			SpacingFrac:        0.4,
			MinSpacing:         0.75,
			Samples:            31,
			DepthWeight:        1.0,
			ClearanceWeight:    0.4,
			SeamWeight:         0.5,
		},
		Integrity: IntegritySettings{
			WeakThreshold:       0.48,
			SupportWeight:       0.34,
			PatternWeight:       0.16,
			ContactWeight:       0.14,
			SlendernessLimit:    12,
			SlendernessWeight:   0.15,
			LinkWeight:          0.06,
			LinkCap:             0.18,
			GroundedBonus:       0.10,
			CantileverWeight:    0.25,
			PressureWeight:      0.20,
			PartAverageWeight:   0.62,
			SupportAvgWeight:    0.08,
			ConnectivityWeight:  0.08,
			SymmetryWeight:      0.08,
			GroundedRatioWeight: 0.07,
			BridgingWeight:      0.07,
			ComponentPenalty:    0.12,
			WeakRatioPenalty:    0.20,
			TopHeavyThreshold:   0.6,
			TopHeavyPenalty:     0.15,
			ScoreFloor:          0.08,
			WoodDensity:         0.016,
		},
	}
}
