package usecase

import (
	"context"
	"errors"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

// LeadUseCase covers lead capture and the CRM's lead CRUD. Captured
// website leads land on a default owner (the marketing inbox account)
// until a marketer claims them.
type LeadUseCase struct {
	Leads          entity.LeadRepositoryInterface
	Profiles       entity.ProfileRepositoryInterface
	DefaultOwnerID string
}

func NewLeadUseCase(
	leads entity.LeadRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	defaultOwnerID string,
) *LeadUseCase {
	return &LeadUseCase{
		Leads:          leads,
		Profiles:       profiles,
		DefaultOwnerID: defaultOwnerID,
	}
}

// Capture logs a lead from the public website form.
func (uc *LeadUseCase) Capture(ctx context.Context, input CaptureLeadInput) (*entity.Lead, error) {
	source := input.Source
	if source == "" {
		source = entity.LeadSourceWebsite
	}

	lead, err := entity.NewLead(input.Name, input.Phone, source, uc.DefaultOwnerID, uc.DefaultOwnerID)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}
	lead.Email = input.Email

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return lead, nil
}

// Create logs a lead on behalf of a marketer or admin. The owner defaults
// to the actor; only admins may assign someone else.
func (uc *LeadUseCase) Create(ctx context.Context, actorID string, input CreateLeadInput) (*entity.Lead, error) {
	actor, err := uc.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role == entity.RoleCustomer {
		return nil, &AuthorizationError{Message: "marketer or administrator role required"}
	}

	ownerID := input.OwnerID
	if ownerID == "" {
		ownerID = actor.ID
	} else if ownerID != actor.ID && !actor.IsAdmin() {
		return nil, &AuthorizationError{Message: "only administrators can assign leads to others"}
	}

	lead, err := entity.NewLead(input.Name, input.Phone, input.Source, ownerID, actor.ID)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return lead, nil
}

// List returns the actor's leads. Non-admins are always scoped to the
// leads they own, whatever scope the request asked for.
func (uc *LeadUseCase) List(ctx context.Context, actorID string, scope entity.LeadScope, r entity.DateRange, limit int) ([]*entity.Lead, error) {
	actor, err := uc.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		scope = entity.ScopeOwner(actor.ID)
	}
	if limit <= 0 || limit > GroupingCap {
		limit = GroupingCap
	}

	leads, err := uc.Leads.List(ctx, scope, r, limit)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return leads, nil
}

// UpdateStatus mutates a lead's pipeline status. Allowed to the lead's
// owner or an admin, and only into the writable status set.
func (uc *LeadUseCase) UpdateStatus(ctx context.Context, actorID, leadID, status string) error {
	if !entity.IsWritableLeadStatus(status) {
		return &DomainError{Code: CodeValidation, Message: "unknown lead status: " + status}
	}

	actor, err := uc.loadActor(ctx, actorID)
	if err != nil {
		return err
	}

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return &DomainError{Code: "LEAD_NOT_FOUND", Message: "unknown lead"}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if lead.OwnerID != actor.ID && !actor.IsAdmin() {
		return &AuthorizationError{Message: "only the lead owner or an administrator can change its status"}
	}

	if err := uc.Leads.UpdateStatus(ctx, leadID, status); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return nil
}

func (uc *LeadUseCase) loadActor(ctx context.Context, actorID string) (*entity.Profile, error) {
	if actorID == "" {
		return nil, &AuthorizationError{Message: "authentication required"}
	}
	actor, err := uc.Profiles.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, entity.ErrProfileNotFound) {
			return nil, &AuthorizationError{Message: "unknown actor"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return actor, nil
}
