package domain

import "time"

// Budget is the posted budget range of a project.
type Budget struct {
	Minimum float64
	Maximum float64
}

// BidStats summarizes bidding activity on a project.
type BidStats struct {
	Count   int
	Average float64
}

// Project represents a marketplace project listing.
type Project struct {
	ID           int64
	Title        string
	Description  string
	Type         string
	Status       string
	OwnerID      int64
	Budget       Budget
	CurrencyCode string
	Bids         BidStats
	Submitted    time.Time
}

// User represents the authenticated marketplace user.
type User struct {
	ID          int64
	Username    string
	DisplayName string
	Email       string
	Status      string
}

// Contest represents a marketplace contest listing.
type Contest struct {
	ID           int64
	Title        string
	Prize        float64
	CurrencyCode string
	EntryCount   int
}

// JobCategory is a skill/job category a project can be tagged with.
type JobCategory struct {
	ID   int64
	Name string
}

// Filter narrows a project search. Zero values mean "no constraint".
type Filter struct {
	MinBudget float64
	MaxBudget float64
	SkillIDs  []int64
	Limit     int
}
