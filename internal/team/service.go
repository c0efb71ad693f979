package team

import (
	"fmt"
	"log/slog"

	errors "github.com/bcits/ticketdesk/internal"
	teamDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/team"
)

type RepositoryAPI interface {
	GetAll(accountID int64) ([]*teamDatamodel.Team, error)
	GetByID(accountID, id int64) (*teamDatamodel.Team, error)
	GetByName(accountID int64, name string) (*teamDatamodel.Team, error)
	Create(team *teamDatamodel.Team) error
	Update(team *teamDatamodel.Team) error
	SoftDelete(accountID, id int64) error
	MemberCount(teamID int64) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll(accountID int64) ([]*Team, error) {
	rows, err := s.repo.GetAll(accountID)
	if err != nil {
		s.logger.Error("failed to list teams", "account_id", accountID, "error", err)
		return nil, err
	}

	teams := make([]*Team, 0, len(rows))
	for _, row := range rows {
		t := FromDataModel(row)
		if count, err := s.repo.MemberCount(row.ID); err == nil {
			t.MemberCount = count
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func (s *Service) GetByID(accountID, id int64) (*Team, error) {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrTeamNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(actorID, accountID int64, dto CreateTeamDTO) (*Team, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(accountID, dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError(
			fmt.Sprintf("team %q already exists in this account", dto.Name),
			errors.ErrCodeDuplicateTeamName)
	}

	row := &teamDatamodel.Team{
		Name:        dto.Name,
		Description: dto.Description,
		AccountID:   accountID,
		IsActive:    true,
		CreatedBy:   &actorID,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create team", "name", dto.Name, "error", err)
		return nil, err
	}

	s.logger.Info("team created", "team_id", row.ID, "account_id", accountID)
	return FromDataModel(row), nil
}

func (s *Service) Update(accountID, id int64, dto UpdateTeamDTO) (*Team, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrTeamNotFound
	}

	if dto.Name != nil && *dto.Name != row.Name {
		existing, err := s.repo.GetByName(accountID, *dto.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errors.NewConflictError(
				fmt.Sprintf("team %q already exists in this account", *dto.Name),
				errors.ErrCodeDuplicateTeamName)
		}
		row.Name = *dto.Name
	}
	if dto.Description != nil {
		row.Description = *dto.Description
	}
	if dto.IsActive != nil {
		row.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update team", "team_id", id, "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(accountID, id int64) error {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return err
	}
	if row == nil {
		return errors.ErrTeamNotFound
	}

	if err := s.repo.SoftDelete(accountID, id); err != nil {
		s.logger.Error("failed to delete team", "team_id", id, "error", err)
		return err
	}

	s.logger.Info("team deleted", "team_id", id, "account_id", accountID)
	return nil
}
