package routes

const (
	// Health
	Health = "/health"

	// Dashboard
	Dashboard = "/api/v1/dashboard"

	// Projects
	ProjectsBase      = "/api/v1/projects"
	ProjectsAvailable = "/api/v1/projects/available"
	ProjectsClaim     = "/api/v1/projects/claim"
	ProjectsProgress  = "/api/v1/projects/progress"

	// Funds
	FundsFlow         = "/api/v1/funds/flow"
	FundUpdatesBase   = "/api/v1/fund-updates"
	FundUpdatesReview = "/api/v1/fund-updates/review"

	// Alerts
	AlertsBase    = "/api/v1/alerts"
	AlertsResolve = "/api/v1/alerts/resolve"

	// Citizen feedback
	FeedbackBase   = "/api/v1/feedback"
	FeedbackStatus = "/api/v1/feedback/status"

	// Contractor <-> collector messaging
	CommunicationsBase = "/api/v1/communications"
	CommunicationsRead = "/api/v1/communications/read"

	// Progress imagery
	ImagesBase = "/api/v1/images"
)
