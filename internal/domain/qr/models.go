package qr

import "time"

type Link struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	TargetURL string    `json:"targetUrl"`
	Label     string    `json:"label"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Stats struct {
	Slug       string     `json:"slug"`
	TotalScans int        `json:"totalScans"`
	Daily      []DayCount `json:"daily"`
}
