package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/metrics"
	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/assets"
	"github.com/garnizeh/skillswap/pkg/repository"
)

const MinUsernameLength = 4

type Onboarding struct {
	users    repository.UserRepo
	skills   repository.SkillRepo
	uploader assets.Uploader
	logger   *slog.Logger
}

func NewOnboarding(users repository.UserRepo, skills repository.SkillRepo, uploader assets.Uploader, logger *slog.Logger) *Onboarding {
	return &Onboarding{users: users, skills: skills, uploader: uploader, logger: logger}
}

// OnboardingInput is the normalized onboarding form. A nil Bio leaves the
// stored bio untouched.
type OnboardingInput struct {
	Username     string
	SkillsWanted []string
	Bio          *string
	Photo        *assets.File
}

// validateUsername trims name and enforces the minimum length.
func validateUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < MinUsernameLength {
		return name, apperr.Validation(fmt.Sprintf("username must be at least %d characters", MinUsernameLength))
	}
	return name, nil
}

// Complete finishes onboarding for userID. A failed photo upload is logged
// and the rest of the profile is still saved.
func (o *Onboarding) Complete(ctx context.Context, userID int64, in OnboardingInput) (*models.User, error) {
	if userID <= 0 {
		return nil, apperr.Auth("authentication required")
	}

	username, err := validateUsername(in.Username)
	if err != nil {
		return nil, err
	}

	u, err := o.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("onboarding: load user: %w", err)
	}
	if u == nil {
		return nil, apperr.Auth("user no longer exists")
	}

	taken, err := o.users.UsernameTaken(ctx, username, userID)
	if err != nil {
		return nil, fmt.Errorf("onboarding: check username: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("username already taken")
	}

	wanted := make([]int64, 0, len(in.SkillsWanted))
	for _, name := range in.SkillsWanted {
		if strings.TrimSpace(name) == "" {
			continue
		}
		sk, err := resolveSkill(ctx, o.skills, models.Skill{Name: name, Category: DefaultCategory, CreatedBy: userID})
		if err != nil {
			return nil, err
		}
		if !slices.Contains(wanted, sk.ID) {
			wanted = append(wanted, sk.ID)
		}
	}

	if in.Photo != nil {
		photoURL, err := o.uploader.Upload(ctx, *in.Photo)
		if err != nil {
			metrics.UploadFailures.Inc()
			uerr := apperr.Upstream("photo upload failed", err)
			o.logger.Warn("onboarding: photo upload failed", slog.Int64("user_id", userID), slog.Any("err", uerr))
		} else {
			u.PhotoURL = photoURL
		}
	}

	u.Username = &username
	if in.Bio != nil {
		u.Bio = strings.TrimSpace(*in.Bio)
	}
	u.Onboarded = true

	if err := o.users.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("username already taken")
		}
		return nil, fmt.Errorf("onboarding: update profile: %w", err)
	}
	if err := o.users.ReplaceUserSkills(ctx, userID, repository.SkillsWanted, wanted); err != nil {
		return nil, fmt.Errorf("onboarding: save wanted skills: %w", err)
	}

	updated, err := o.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("onboarding: reload user: %w", err)
	}
	if updated == nil {
		return nil, apperr.NotFound("user not found")
	}
	return updated, nil
}
