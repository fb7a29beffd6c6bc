package service

import (
	"context"
	"fmt"
	"log"

	"escape-portal/internal/events"
	"escape-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

type RosterSessionStore interface {
	Create(ctx context.Context, session *models.Session) (string, error)
	FindByID(ctx context.Context, id string) (*models.Session, error)
	Update(ctx context.Context, id string, update bson.M) error
}

type RosterTeamStore interface {
	Create(ctx context.Context, team *models.Team) (string, error)
	UpdateName(ctx context.Context, id, teamName string) error
}

type RosterMemberStore interface {
	Create(ctx context.Context, member *models.TeamMember) (string, error)
	Update(ctx context.Context, id string, member *models.TeamMember) error
	Delete(ctx context.Context, id string) error
	FindByTeam(ctx context.Context, teamID string) ([]models.TeamMember, error)
}

type MemberInput struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	IsLeader  bool   `json:"is_leader"`
	Attended  bool   `json:"attended"`
	Certified bool   `json:"certified"`
}

type RosterInput struct {
	SessionID        string        `json:"session_id,omitempty"`
	OrganisationID   string        `json:"organisation_id"`
	RoundID          string        `json:"round_id"`
	Date             string        `json:"date"`
	StartTime        string        `json:"start_time"`
	FacilitatorName  string        `json:"facilitator_name"`
	TeamName         string        `json:"team_name"`
	Members          []MemberInput `json:"members"`
	DeletedMemberIDs []string      `json:"deleted_member_ids"`
}

type RosterService struct {
	Sessions  RosterSessionStore
	Teams     RosterTeamStore
	Members   RosterMemberStore
	publisher events.Publisher
}

func NewRosterService(sessions RosterSessionStore, teams RosterTeamStore, members RosterMemberStore, publisher events.Publisher) *RosterService {
	return &RosterService{Sessions: sessions, Teams: teams, Members: members, publisher: publisher}
}

// Save reconciles a session's team roster against the submitted form state.
//
// Session is the root of the relationship: the team carries the session id
// and the session caches the team id, back-patched after team creation.
// Every roster mutation ends by rewriting the session's cached member count
// so session cards never show a stale number.
func (s *RosterService) Save(ctx context.Context, in RosterInput) (*models.Session, error) {
	if err := validateRoster(in); err != nil {
		return nil, err
	}

	sessionID := in.SessionID
	teamID := ""

	if sessionID == "" {
		session := &models.Session{
			OrganisationID:  in.OrganisationID,
			RoundID:         in.RoundID,
			Date:            in.Date,
			StartTime:       in.StartTime,
			FacilitatorName: in.FacilitatorName,
			TeamName:        in.TeamName,
		}
		id, err := s.Sessions.Create(ctx, session)
		if err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		sessionID = id
	} else {
		existing, err := s.Sessions.FindByID(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
		}
		teamID = existing.TeamID
		update := bson.M{
			"date":             in.Date,
			"start_time":       in.StartTime,
			"facilitator_name": in.FacilitatorName,
			"team_name":        in.TeamName,
		}
		if err := s.Sessions.Update(ctx, sessionID, update); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}

	if teamID == "" {
		team := &models.Team{
			OrganisationID: in.OrganisationID,
			RoundID:        in.RoundID,
			SessionID:      sessionID,
			TeamName:       in.TeamName,
		}
		id, err := s.Teams.Create(ctx, team)
		if err != nil {
			return nil, fmt.Errorf("failed to save team: %w", err)
		}
		teamID = id
		if err := s.Sessions.Update(ctx, sessionID, bson.M{"team_id": teamID}); err != nil {
			return nil, fmt.Errorf("failed to save team: %w", err)
		}
	} else {
		if err := s.Teams.UpdateName(ctx, teamID, in.TeamName); err != nil {
			return nil, fmt.Errorf("failed to save team: %w", err)
		}
	}

	for _, memberID := range in.DeletedMemberIDs {
		if err := s.Members.Delete(ctx, memberID); err != nil {
			return nil, fmt.Errorf("failed to delete team member: %w", err)
		}
	}

	for i := range in.Members {
		m := in.Members[i]
		member := &models.TeamMember{
			TeamID:    teamID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Email:     m.Email,
			Mobile:    m.Mobile,
			IsLeader:  m.IsLeader,
			Attended:  m.Attended,
			Certified: m.Certified,
		}
		if m.ID != "" {
			if err := s.Members.Update(ctx, m.ID, member); err != nil {
				return nil, fmt.Errorf("failed to update team member: %w", err)
			}
		} else {
			if _, err := s.Members.Create(ctx, member); err != nil {
				return nil, fmt.Errorf("failed to add team member: %w", err)
			}
		}
	}

	if err := s.Sessions.Update(ctx, sessionID, bson.M{"team_members_count": len(in.Members)}); err != nil {
		return nil, fmt.Errorf("failed to update member count: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRosterSaved(ctx, sessionID, len(in.Members)); err != nil {
			log.Printf("Warning: failed to publish roster saved event: %v", err)
		}
	}

	return s.Sessions.FindByID(ctx, sessionID)
}

func validateRoster(in RosterInput) error {
	if in.Date == "" {
		return fmt.Errorf("%w: session date is required", ErrValidation)
	}
	if in.StartTime == "" {
		return fmt.Errorf("%w: start time is required", ErrValidation)
	}
	if in.TeamName == "" {
		return fmt.Errorf("%w: team name is required", ErrValidation)
	}
	if in.FacilitatorName == "" {
		return fmt.Errorf("%w: facilitator name is required", ErrValidation)
	}
	if len(in.Members) > models.MaxTeamMembers {
		return fmt.Errorf("%w: a team can have at most %d members", ErrValidation, models.MaxTeamMembers)
	}
	for _, m := range in.Members {
		if m.FirstName != "" && m.Email != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: at least one team member with a first name and email is required", ErrValidation)
}

// TeamMembers loads the current roster for a session's team.
func (s *RosterService) TeamMembers(ctx context.Context, sessionID string) ([]models.TeamMember, error) {
	session, err := s.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	if session.TeamID == "" {
		return nil, nil
	}
	return s.Members.FindByTeam(ctx, session.TeamID)
}
