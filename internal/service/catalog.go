package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository"
)

const (
	DefaultCategory  = "general"
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type Catalog struct {
	skills    repository.SkillRepo
	offerings repository.OfferingRepo
	users     repository.UserRepo
	now       func() time.Time
}

func NewCatalog(skills repository.SkillRepo, offerings repository.OfferingRepo, users repository.UserRepo) *Catalog {
	return &Catalog{skills: skills, offerings: offerings, users: users, now: time.Now}
}

type OfferingInput struct {
	Description string
	ImageURL    string
	VideoURL    string
}

type CreateSkillInput struct {
	UserID      int64
	Category    string
	Name        string
	Description string
	VideoURL    string
	Offering    *OfferingInput
}

// SkillPage is one page of the catalog.
type SkillPage struct {
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Items  []models.Skill `json:"items"`
}

// resolveSkill returns the skill whose slug matches name, creating it when
// it does not exist yet.
func resolveSkill(ctx context.Context, skills repository.SkillRepo, sk models.Skill) (*models.Skill, error) {
	sk.Name = strings.TrimSpace(sk.Name)
	sk.Slug = slug.Make(sk.Name)
	if sk.Slug == "" {
		return nil, apperr.Validation(fmt.Sprintf("skill name %q has no usable characters", sk.Name))
	}

	existing, err := skills.GetSkillBySlug(ctx, sk.Slug)
	if err != nil {
		return nil, fmt.Errorf("lookup skill %s: %w", sk.Slug, err)
	}
	if existing != nil {
		return existing, nil
	}

	if sk.Category == "" {
		sk.Category = DefaultCategory
	}
	id, err := skills.CreateSkill(ctx, &sk)
	if errors.Is(err, repository.ErrDuplicate) {
		// lost a race with a concurrent create
		existing, err = skills.GetSkillBySlug(ctx, sk.Slug)
		if err != nil {
			return nil, fmt.Errorf("lookup skill %s after conflict: %w", sk.Slug, err)
		}
		if existing == nil {
			return nil, fmt.Errorf("skill %s vanished after conflict", sk.Slug)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create skill %s: %w", sk.Slug, err)
	}
	sk.ID = id
	return &sk, nil
}

// CreateSkill resolves the skill by slug and, when offering details are
// given, publishes an offering for the caller and marks the skill as offered.
func (c *Catalog) CreateSkill(ctx context.Context, in CreateSkillInput) (*models.Skill, *models.SkillOffering, error) {
	if in.UserID <= 0 {
		return nil, nil, apperr.Auth("authentication required")
	}
	name, category := strings.TrimSpace(in.Name), strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return nil, nil, apperr.Validation("name and category are required")
	}

	sk, err := resolveSkill(ctx, c.skills, models.Skill{
		Category:    strings.ToLower(category),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		VideoURL:    strings.TrimSpace(in.VideoURL),
		CreatedBy:   in.UserID,
	})
	if err != nil {
		return nil, nil, err
	}
	if in.Offering == nil {
		return sk, nil, nil
	}

	o := &models.SkillOffering{
		SkillID:     sk.ID,
		UserID:      in.UserID,
		Description: strings.TrimSpace(in.Offering.Description),
		ImageURL:    strings.TrimSpace(in.Offering.ImageURL),
		VideoURL:    strings.TrimSpace(in.Offering.VideoURL),
	}
	if err := c.createOffering(ctx, o, sk.Name); err != nil {
		return nil, nil, err
	}
	if err := c.users.AddUserSkill(ctx, in.UserID, sk.ID, repository.SkillsOffered); err != nil {
		return nil, nil, fmt.Errorf("mark skill offered: %w", err)
	}

	return sk, o, nil
}

// createOffering picks a slug from the skill name and user id, suffixing it
// with the current unix millis when taken.
func (c *Catalog) createOffering(ctx context.Context, o *models.SkillOffering, skillName string) error {
	base := slug.Make(skillName + " " + strconv.FormatInt(o.UserID, 10))
	o.Slug = base

	existing, err := c.offerings.GetOfferingBySlug(ctx, base)
	if err != nil {
		return fmt.Errorf("lookup offering %s: %w", base, err)
	}
	if existing != nil {
		o.Slug = base + "-" + strconv.FormatInt(c.now().UnixMilli(), 10)
	}

	id, err := c.offerings.CreateOffering(ctx, o)
	if errors.Is(err, repository.ErrDuplicate) {
		o.Slug = base + "-" + strconv.FormatInt(c.now().UnixNano(), 10)
		id, err = c.offerings.CreateOffering(ctx, o)
	}
	if err != nil {
		return fmt.Errorf("create offering: %w", err)
	}
	o.ID = id
	return nil
}

func (c *Catalog) ListSkills(ctx context.Context, category string, limit, offset int) (*SkillPage, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	limit = min(limit, MaxPageLimit)
	offset = max(offset, 0)
	category = strings.ToLower(strings.TrimSpace(category))

	total, err := c.skills.CountSkills(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("count skills: %w", err)
	}
	items, err := c.skills.ListSkills(ctx, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	if items == nil {
		items = []models.Skill{}
	}

	return &SkillPage{Total: total, Limit: limit, Offset: offset, Items: items}, nil
}

func (c *Catalog) GetSkill(ctx context.Context, id int64) (*models.Skill, error) {
	if id <= 0 {
		return nil, apperr.Validation("invalid skill id")
	}
	sk, err := c.skills.GetSkillByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get skill: %w", err)
	}
	if sk == nil {
		return nil, apperr.NotFound("skill not found")
	}
	return sk, nil
}

// ListOfferings lists every offering, or only userID's when it is set.
func (c *Catalog) ListOfferings(ctx context.Context, userID int64) ([]models.SkillOffering, error) {
	out, err := c.offerings.ListOfferings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list offerings: %w", err)
	}
	if out == nil {
		out = []models.SkillOffering{}
	}
	return out, nil
}

func (c *Catalog) GetOffering(ctx context.Context, offeringSlug string) (*models.SkillOffering, error) {
	offeringSlug = strings.TrimSpace(offeringSlug)
	if offeringSlug == "" {
		return nil, apperr.Validation("slug is required")
	}
	o, err := c.offerings.GetOfferingBySlug(ctx, offeringSlug)
	if err != nil {
		return nil, fmt.Errorf("get offering: %w", err)
	}
	if o == nil {
		return nil, apperr.NotFound("offering not found")
	}
	return o, nil
}
