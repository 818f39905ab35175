package models

// Lookup records one terminal resolution for the recent-searches view.
type Lookup struct {
	BaseUUIDModel
	Query            string `gorm:"type:varchar(255);not null;index" json:"query"`
	Kind             string `gorm:"type:varchar(16);not null"        json:"kind"` // 'zip' or 'address'
	Status           string `gorm:"type:varchar(32);not null"        json:"status"`
	ResultCount      int    `gorm:"not null"                         json:"resultCount"`
	FormattedAddress string `gorm:"type:varchar(255)"                json:"formattedAddress,omitempty"`
}

type CompassTopic struct {
	ID         string `json:"id"`
	ShortTitle string `json:"short_title"`
	Title      string `json:"title,omitempty"`
}

type CompassAnswer struct {
	TopicID string  `json:"topic_id"`
	Value   float64 `json:"value"`
}
