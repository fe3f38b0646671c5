package models

// ClickEventModel records one tracked click on a link, with requester metadata.
type ClickEventModel struct {
	Base
	UserID  string `json:"userId"  gorm:"index;not null"`
	LinkID  string `json:"linkId"  gorm:"index;not null"`
	IP      string `json:"ip"`
	UA      string `json:"ua"      gorm:"type:text"`
	Referer string `json:"referer"`
	Country string `json:"country"`
}

func (ClickEventModel) TableName() string { return "click_events" }
