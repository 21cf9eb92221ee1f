package domain

import (
	"fmt"
)

var (
	MessageSuccessGetDonorStats        = "donor stats retrieved successfully"
	MessageSuccessGetDonors            = "donors retrieved successfully"
	MessageSuccessGetOrganizationStats = "organization stats retrieved successfully"
	MessageSuccessGetLeaderboard       = "leaderboard retrieved successfully"
	MessageSuccessGetMonthlyChart      = "monthly chart retrieved successfully"

	MessageFailedGetDonorStats        = "failed to retrieve donor stats"
	MessageFailedGetDonors            = "failed to retrieve donors"
	MessageFailedGetOrganizationStats = "failed to retrieve organization stats"
	MessageFailedGetLeaderboard       = "failed to retrieve leaderboard"
	MessageFailedGetMonthlyChart      = "failed to retrieve monthly chart"

	ErrDonorIDsRequired = fmt.Errorf("%w: donor_ids must not be empty", ErrValidation)
	ErrNoDonorsFound    = fmt.Errorf("%w: no donors found", ErrNotFound)
)

type (
	DonorStats struct {
		FullName        string           `json:"full_name"`
		TotalDonations  int              `json:"totalDonations"`
		ItemsDonated    int              `json:"itemsDonated"`
		LastDonation    *string          `json:"lastDonation"`
		ImpactScore     int              `json:"impactScore"`
		RecentDonations []RecentDonation `json:"recentDonations"`
	}

	DonorIDsRequest struct {
		DonorIDs []string `json:"donor_ids"`
	}

	OrganizationStats struct {
		Name           string `json:"name"`
		TotalPickups   int    `json:"totalPickups"`
		PendingPickups int    `json:"pendingPickups"`
		CompletedToday int    `json:"completedToday"`
	}

	LeaderboardEntry struct {
		DonorID      string `json:"donorId"`
		FullName     string `json:"fullName"`
		ItemsDonated int    `json:"itemsDonated"`
	}

	MonthlyItems struct {
		Month string `json:"month"`
		Items int    `json:"items"`
	}
)
