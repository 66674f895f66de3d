package domain

import "time"

// AuditFields holds standard audit information for owner-scoped entities.
// CreatedBy and LastUpdatedBy carry the shop owner's user ID as issued by the
// external identity provider.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
