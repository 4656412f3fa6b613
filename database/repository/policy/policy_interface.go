package policyRepo

import "tempo/models"

// PolicyRepository defines methods for scheduling policy data access.
type PolicyRepository interface {
	// GetByUserID retrieves the stored policy for a user.
	// Returns nil without error when the user has never saved one.
	GetByUserID(userID string) (*models.PolicyRecord, error)
	// Upsert inserts or replaces the policy record for a user.
	Upsert(rec *models.PolicyRecord) error
	// Delete removes the stored policy for a user.
	Delete(userID string) error
}
