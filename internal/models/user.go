package models

// Theme holds the public profile appearance settings for a user.
type Theme struct {
	BackgroundColor string `json:"backgroundColor"`
	ButtonColor     string `json:"buttonColor"`
	ButtonTextColor string `json:"buttonTextColor"`
	FontFamily      string `json:"fontFamily"`
}

// DefaultTheme mirrors the defaults applied at registration.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: "#ffffff",
		ButtonColor:     "#000000",
		ButtonTextColor: "#ffffff",
		FontFamily:      "Inter",
	}
}

// SocialLinks holds the optional social profile URLs shown on the public page.
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	GitHub    string `json:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Website   string `json:"website,omitempty"`
}

// UserModel represents an account that owns a public link page.
type UserModel struct {
	Base
	Email       string      `json:"email"       gorm:"uniqueIndex;not null"`
	Password    string      `json:"-"           gorm:"not null"`
	Username    string      `json:"username"    gorm:"uniqueIndex;not null"`
	DisplayName string      `json:"displayName"`
	Bio         string      `json:"bio"         gorm:"type:text"`
	Avatar      string      `json:"avatar"`
	IsAdmin     bool        `json:"isAdmin"     gorm:"default:false"`
	IsActive    bool        `json:"isActive"    gorm:"default:true"`
	Theme       Theme       `json:"theme"       gorm:"serializer:json;type:longtext"`
	SocialLinks SocialLinks `json:"socialLinks" gorm:"serializer:json;type:longtext"`
}

func (UserModel) TableName() string { return "users" }
