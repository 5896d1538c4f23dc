package model

// Kitchen is a household: the tenant scope every pantry row belongs to.
type Kitchen struct {
	BaseModel
	Name           string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	InvitationCode string `gorm:"type:varchar(50);uniqueIndex" json:"invitation_code"`

	// Alert window settings, read by the scheduled alert check.
	AlertsEnabled   bool `gorm:"default:true" json:"alerts_enabled"`
	AlertTimeHour   int  `gorm:"default:8" json:"alert_time_hour"`
	AlertTimeMinute int  `gorm:"default:0" json:"alert_time_minute"`
}
