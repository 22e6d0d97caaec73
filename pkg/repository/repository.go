package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/skillswap/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookups return (nil, nil) when nothing matches. Writes that would break a
// uniqueness invariant return an error wrapping ErrDuplicate.

var ErrDuplicate = errors.New("duplicate key")

// Skill relation kinds stored on a user.
const (
	SkillsOffered = "offered"
	SkillsWanted  = "wanted"
	SkillsSaved   = "saved"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UsernameTaken matches case-insensitively and ignores excludeID.
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, u *models.User) error
	AddUserSkill(ctx context.Context, userID, skillID int64, kind string) error
	RemoveUserSkill(ctx context.Context, userID, skillID int64, kind string) error
	ListUserSkillIDs(ctx context.Context, userID int64, kind string) ([]int64, error)
	ReplaceUserSkills(ctx context.Context, userID int64, kind string, skillIDs []int64) error
}

type SkillRepo interface {
	CreateSkill(ctx context.Context, s *models.Skill) (int64, error)
	GetSkillByID(ctx context.Context, id int64) (*models.Skill, error)
	GetSkillBySlug(ctx context.Context, slug string) (*models.Skill, error)
	ListSkills(ctx context.Context, category string, limit, offset int) ([]models.Skill, error)
	CountSkills(ctx context.Context, category string) (int64, error)
}

type OfferingRepo interface {
	CreateOffering(ctx context.Context, o *models.SkillOffering) (int64, error)
	GetOfferingBySlug(ctx context.Context, slug string) (*models.SkillOffering, error)
	ListOfferings(ctx context.Context, userID int64) ([]models.SkillOffering, error)
}

type ChatRepo interface {
	// GetOrCreateChat returns the chat for the unordered pair, creating it on first use.
	GetOrCreateChat(ctx context.Context, a, b int64) (*models.Chat, error)
	GetChat(ctx context.Context, id int64) (*models.Chat, error)
	ListChatsByUser(ctx context.Context, userID int64) ([]models.Chat, error)
}

type MessageRepo interface {
	CreateMessage(ctx context.Context, m *models.Message) (int64, error)
	ListMessages(ctx context.Context, chatID int64) ([]models.Message, error)
}

type RequestRepo interface {
	CreateRequest(ctx context.Context, r *models.Request) (int64, error)
	GetRequest(ctx context.Context, id int64) (*models.Request, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]models.Request, error)
	UpdateRequestStatus(ctx context.Context, id int64, status string) (*models.Request, error)
}

// RequestFilter selects requests; zero fields match everything.
type RequestFilter struct {
	OwnerID     int64
	RequesterID int64
	Status      string
}

type ReportRepo interface {
	CreateReport(ctx context.Context, r *models.Report) (int64, error)
	ListReports(ctx context.Context) ([]models.Report, error)
}

// Store bundles the document-backed repositories one storage driver provides.
type Store interface {
	UserRepo
	SkillRepo
	OfferingRepo
	ChatRepo
	MessageRepo
}
