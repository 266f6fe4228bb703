package model

// EarningsSummary is the read-only earnings view for a rider.
type EarningsSummary struct {
	TotalEarning   int64 `json:"totalEarning"`
	TotalCashedOut int64 `json:"totalCashedOut"`
	PendingAmount  int64 `json:"pendingAmount"`
	TodayEarning   int64 `json:"todayEarning"`
	WeeklyEarning  int64 `json:"weeklyEarning"`
	MonthlyEarning int64 `json:"monthlyEarning"`
}

// CompletedParcel is a delivered parcel annotated with its earning value for
// the rider-facing completed-deliveries listing.
type CompletedParcel struct {
	Parcel       *Parcel `json:"parcel"`
	EarningValue int64   `json:"earningValue"`
}
