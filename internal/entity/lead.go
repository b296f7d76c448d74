package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lead statuses. WON and LOST are legacy values still present in old rows;
// reports read them, the write path only accepts the current set.
const (
	LeadStatusNew           = "NEW"
	LeadStatusContacted     = "CONTACTED"
	LeadStatusQualified     = "QUALIFIED"
	LeadStatusProposal      = "PROPOSAL"
	LeadStatusSold          = "SOLD"
	LeadStatusNotInterested = "NOT_INTERESTED"
	LeadStatusNoResponse    = "NO_RESPONSE"
	LeadStatusInvalidNumber = "INVALID_NUMBER"

	LeadStatusWonLegacy  = "WON"
	LeadStatusLostLegacy = "LOST"
)

const (
	LeadSourceWebsite     = "WEBSITE"
	LeadSourceReferral    = "REFERRAL"
	LeadSourceSocialMedia = "SOCIAL_MEDIA"
	LeadSourceEmail       = "EMAIL"
	LeadSourcePhone       = "PHONE"
	LeadSourceReassigned  = "REASSIGNED"
	LeadSourceOther       = "OTHER"
)

var ErrLeadNotFound = errors.New("lead not found")

type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	OwnerID   string    `json:"owner_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLead creates a lead in the NEW status, assigned to ownerID and
// attributed to createdBy (they may differ).
func NewLead(name, phone, source, ownerID, createdBy string) (*Lead, error) {
	if phone == "" {
		return nil, errors.New("phone is required")
	}
	if ownerID == "" {
		return nil, errors.New("owner_id is required")
	}
	if createdBy == "" {
		createdBy = ownerID
	}
	if !IsValidLeadSource(source) {
		source = LeadSourceOther
	}

	return &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Status:    LeadStatusNew,
		Source:    source,
		OwnerID:   ownerID,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// WritableLeadStatuses is the set accepted by the status-update surface.
var WritableLeadStatuses = []string{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusProposal,
	LeadStatusSold,
	LeadStatusNotInterested,
	LeadStatusNoResponse,
	LeadStatusInvalidNumber,
}

func IsWritableLeadStatus(status string) bool {
	for _, s := range WritableLeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidLeadSource(source string) bool {
	switch source {
	case LeadSourceWebsite, LeadSourceReferral, LeadSourceSocialMedia,
		LeadSourceEmail, LeadSourcePhone, LeadSourceReassigned, LeadSourceOther:
		return true
	}
	return false
}

// DailyStatusCount is one (day, status) cell of the chart query,
// day truncated to the UTC calendar day boundary.
type DailyStatusCount struct {
	Day    time.Time
	Status string
	Count  int
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, scope LeadScope, r DateRange, limit int) ([]*Lead, error)
	UpdateStatus(ctx context.Context, id, status string) error

	// Aggregation queries. Counts are exact server-side COUNTs so they stay
	// correct past any fetch page size.
	Count(ctx context.Context, scope LeadScope, r DateRange) (int, error)
	CountByStatusIn(ctx context.Context, scope LeadScope, r DateRange, statuses ...string) (int, error)
	DailyStatusCounts(ctx context.Context, scope LeadScope, r DateRange) ([]DailyStatusCount, error)
	FetchForGrouping(ctx context.Context, scope LeadScope, r DateRange, limit int) ([]*Lead, error)
}

// LeadScope restricts which leads a query considers: all, owned by a
// marketer, or created by a marketer. OwnerID and CreatorID are mutually
// exclusive within a single query.
type LeadScope struct {
	OwnerID   string
	CreatorID string
}

func ScopeAll() LeadScope              { return LeadScope{} }
func ScopeOwner(id string) LeadScope   { return LeadScope{OwnerID: id} }
func ScopeCreator(id string) LeadScope { return LeadScope{CreatorID: id} }

// DateRange is inclusive on both ends; a nil bound means unbounded on
// that side.
type DateRange struct {
	From *time.Time
	To   *time.Time
}
