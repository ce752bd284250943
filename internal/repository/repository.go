package repository

import "gorm.io/gorm"

// Repository aggregates every table-level repository.
type Repository struct {
	Contest     ContestRepository
	EmailLog    EmailLogRepository
	UserProfile UserProfileRepository
	Newsletter  NewsletterRepository
	Maintenance MaintenanceRepository
}

// NewRepository creates the repository aggregate over one connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Contest:     NewContestRepo(db),
		EmailLog:    NewEmailLogRepo(db),
		UserProfile: NewUserProfileRepo(db),
		Newsletter:  NewNewsletterRepo(db),
		Maintenance: NewMaintenanceRepo(db),
	}
}
