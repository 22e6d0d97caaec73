package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository"
)

type Profiles struct {
	users  repository.UserRepo
	skills repository.SkillRepo
}

func NewProfiles(users repository.UserRepo, skills repository.SkillRepo) *Profiles {
	return &Profiles{users: users, skills: skills}
}

// UsernameCheck is the answer to an availability query.
type UsernameCheck struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func (p *Profiles) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, apperr.Validation("invalid user id")
	}
	u, err := p.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

// CheckUsername reports whether name is free for selfID. Matching is
// case-insensitive and selfID's own username counts as available.
func (p *Profiles) CheckUsername(ctx context.Context, name string, selfID int64) (*UsernameCheck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("username is required")
	}
	if _, err := validateUsername(name); err != nil {
		return &UsernameCheck{Username: name, Available: false, Reason: apperr.MessageOf(err)}, nil
	}

	taken, err := p.users.UsernameTaken(ctx, name, selfID)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	res := &UsernameCheck{Username: name, Available: !taken}
	if taken {
		res.Reason = "username already taken"
	}
	return res, nil
}

func (p *Profiles) requireUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return apperr.Auth("authentication required")
	}
	u, err := p.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return apperr.NotFound("user not found")
	}
	return nil
}

// AddSaved bookmarks skillID for userID. Saving twice keeps one entry.
func (p *Profiles) AddSaved(ctx context.Context, userID, skillID int64) ([]int64, error) {
	if err := p.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if skillID <= 0 {
		return nil, apperr.Validation("skillId is required")
	}
	sk, err := p.skills.GetSkillByID(ctx, skillID)
	if err != nil {
		return nil, fmt.Errorf("lookup skill: %w", err)
	}
	if sk == nil {
		return nil, apperr.NotFound("skill not found")
	}
	if err := p.users.AddUserSkill(ctx, userID, skillID, repository.SkillsSaved); err != nil {
		return nil, fmt.Errorf("save skill: %w", err)
	}
	return p.ListSavedIDs(ctx, userID)
}

func (p *Profiles) RemoveSaved(ctx context.Context, userID, skillID int64) ([]int64, error) {
	if err := p.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if skillID <= 0 {
		return nil, apperr.Validation("skillId is required")
	}
	if err := p.users.RemoveUserSkill(ctx, userID, skillID, repository.SkillsSaved); err != nil {
		return nil, fmt.Errorf("unsave skill: %w", err)
	}
	return p.ListSavedIDs(ctx, userID)
}

func (p *Profiles) ListSavedIDs(ctx context.Context, userID int64) ([]int64, error) {
	if userID <= 0 {
		return nil, apperr.Auth("authentication required")
	}
	ids, err := p.users.ListUserSkillIDs(ctx, userID, repository.SkillsSaved)
	if err != nil {
		return nil, fmt.Errorf("list saved skills: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
