// Package alert derives civil-protection alerts from weather observations.
package alert

import (
	"encoding/json"
	"time"
)

// TypeTag is the fixed identifier of an alert type. Every alert of the same
// type carries the same tag, so it also serves as the alert log's
// de-duplication key.
type TypeTag int

const (
	TagExtremeHeat TypeTag = 1001
	TagHeavyRain   TypeTag = 1002
	TagStorm       TypeTag = 1003
	TagFloodRisk   TypeTag = 1004
	TagStrongWind  TypeTag = 1005
	TagWindGusts   TypeTag = 1006
)

type Type string

const (
	TypeExtremeHeat Type = "ExtremeHeat"
	TypeHeavyRain   Type = "HeavyRain"
	TypeStorm       Type = "Storm"
	TypeFloodRisk   Type = "FloodRisk"
	TypeStrongWind  Type = "StrongWind"
	TypeWindGusts   Type = "WindGusts"
)

// Tag returns the type tag for t, or 0 for an unknown type.
func (t Type) Tag() TypeTag {
	switch t {
	case TypeExtremeHeat:
		return TagExtremeHeat
	case TypeHeavyRain:
		return TagHeavyRain
	case TypeStorm:
		return TagStorm
	case TypeFloodRisk:
		return TagFloodRisk
	case TypeStrongWind:
		return TagStrongWind
	case TypeWindGusts:
		return TagWindGusts
	}
	return 0
}

// Severity is ordered: Informational < Attention < MaximumAlert.
type Severity int

const (
	Informational Severity = iota + 1
	Attention
	MaximumAlert
)

func (s Severity) String() string {
	switch s {
	case Informational:
		return "Informational"
	case Attention:
		return "Attention"
	case MaximumAlert:
		return "MaximumAlert"
	}
	return "Unknown"
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// TimeLayout is the minute-precision layout alerts are rendered with.
const TimeLayout = "2006-01-02 15:04"

// Alert is a single issued alert. InstanceID is unique per alert; TypeTag is
// shared by every alert of the same Type.
type Alert struct {
	TypeTag      TypeTag   `json:"type_tag"`
	InstanceID   string    `json:"instance_id"`
	Type         Type      `json:"type"`
	Severity     Severity  `json:"severity"`
	Description  string    `json:"description"`
	IssuedAt     time.Time `json:"issued_at"`
	Neighborhood string    `json:"neighborhood"`
	City         string    `json:"city"`
}

// IssuedAtText renders IssuedAt with TimeLayout.
func (a Alert) IssuedAtText() string {
	return a.IssuedAt.Format(TimeLayout)
}
