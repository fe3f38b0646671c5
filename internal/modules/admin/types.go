package admin

import (
	"errors"

	"github.com/linkdeck/core/internal/models"
)

// DashboardStats is the admin overview payload.
type DashboardStats struct {
	TotalUsers  int64        `json:"totalUsers"`
	ActiveUsers int64        `json:"activeUsers"`
	TotalLinks  int64        `json:"totalLinks"`
	ActiveLinks int64        `json:"activeLinks"`
	TotalClicks int64        `json:"totalClicks"`
	ClicksToday int64        `json:"clicksToday"`
	DailyClicks []DailyCount `json:"dailyClicks"`
	TopUsers    []TopUser    `json:"topUsers"`
}

type DailyCount struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

// TopUser ranks an account by accumulated clicks across its links.
type TopUser struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	LinkCount   int64  `json:"linkCount"`
	TotalClicks int64  `json:"totalClicks"`
}

// UserDetail extends the account record with its links and usage counters.
type UserDetail struct {
	models.UserModel
	Links       []models.LinkModel `json:"links"`
	LinkCount   int64              `json:"linkCount"`
	TotalClicks int64              `json:"totalClicks"`
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfTarget   = errors.New("cannot modify your own account here")
)
