// Package webusage fetches account-level usage from the Anthropic usage API.
//
// This is a companion to the local snapshot: when available it is displayed
// alongside the derived numbers, never reconciled with them. A failed fetch
// degrades to "remote usage unavailable" without affecting the local path.
package webusage

import "time"

// Usage is the account-level usage report.
type Usage struct {
	FiveHour   Window     `json:"five_hour"`
	SevenDay   Window     `json:"seven_day"`
	ExtraUsage ExtraUsage `json:"extra_usage"`

	// FetchedAt is stamped by the client when the response arrives.
	FetchedAt time.Time `json:"fetched_at"`
}

// Window is the usage within one rolling window.
type Window struct {
	// Utilization is the fraction of the window's allowance used, 0..1.
	Utilization float64 `json:"utilization"`

	// ResetsAt is the ISO-8601 timestamp of the window's next reset.
	ResetsAt string `json:"resets_at"`
}

// ExtraUsage describes pay-as-you-go overflow usage.
type ExtraUsage struct {
	IsEnabled    bool    `json:"is_enabled"`
	MonthlyLimit float64 `json:"monthly_limit"` // cents
	UsedCredits  float64 `json:"used_credits"`  // cents
	Utilization  float64 `json:"utilization"`
}
