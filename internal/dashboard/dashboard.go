package dashboard

// Stats is the aggregate the dashboard landing page renders.
type Stats struct {
	TotalCreated  int64 `json:"total_created"`
	TotalArchived int64 `json:"total_archived"`
	CreatedToday  int64 `json:"created_today"`
	OpenToday     int64 `json:"open_today"`
	Open          int64 `json:"open"`
	ArchivedToday int64 `json:"archived_today"`
}
