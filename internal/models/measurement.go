package models

import "time"

// Measurement is one body-composition snapshot (bioimpedance scale export).
// All analysis fields are optional; only weight and the date are always set.
type Measurement struct {
	ID       string `json:"id"`
	ClientID string `json:"cliente_id"`

	MeasuredAt time.Time `json:"data_misurazione"`

	WeightKg          float64  `json:"peso_kg"`
	BodyFatPct        *float64 `json:"grasso_percentuale,omitempty"`
	BMI               *float64 `json:"bmi,omitempty"`
	SkeletalMusclePct *float64 `json:"muscolo_scheletrico_percentuale,omitempty"`
	MuscleMassKg      *float64 `json:"massa_muscolare_kg,omitempty"`
	ProteinPct        *float64 `json:"proteine_percentuale,omitempty"`
	BasalMetabolism   *float64 `json:"metabolismo_basale_kcal,omitempty"`
	VisceralFatLevel  *float64 `json:"grasso_viscerale_livello,omitempty"`
	HydrationPct      *float64 `json:"idratazione_percentuale,omitempty"`
	BoneMassKg        *float64 `json:"massa_ossea_kg,omitempty"`
	MetabolicAge      *int     `json:"eta_metabolica,omitempty"`

	Notes     string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
