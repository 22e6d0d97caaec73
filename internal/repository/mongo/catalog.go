package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garnizeh/skillswap/internal/models"
)

func (s *Store) CreateSkill(ctx context.Context, sk *models.Skill) (int64, error) {
	if sk == nil {
		return 0, fmt.Errorf("skill is nil")
	}

	id, err := s.nextID(ctx, collSkills)
	if err != nil {
		return 0, err
	}
	doc := *sk
	doc.ID = id
	doc.CreatedAt = now()
	if _, err := s.db.Collection(collSkills).InsertOne(ctx, doc); err != nil {
		return 0, mapErr("create skill", err)
	}
	return id, nil
}

func (s *Store) GetSkillByID(ctx context.Context, id int64) (*models.Skill, error) {
	return s.findSkill(ctx, bson.M{"_id": id})
}

func (s *Store) GetSkillBySlug(ctx context.Context, slug string) (*models.Skill, error) {
	return s.findSkill(ctx, bson.M{"slug": slug})
}

func (s *Store) findSkill(ctx context.Context, filter bson.M) (*models.Skill, error) {
	var sk models.Skill
	if err := s.db.Collection(collSkills).FindOne(ctx, filter).Decode(&sk); err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &sk, nil
}

func categoryFilter(category string) bson.M {
	if category == "" {
		return bson.M{}
	}
	return bson.M{"category": category}
}

func (s *Store) ListSkills(ctx context.Context, category string, limit, offset int) ([]models.Skill, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cur, err := s.db.Collection(collSkills).Find(ctx, categoryFilter(category), opts)
	if err != nil {
		return nil, err
	}
	var out []models.Skill
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CountSkills(ctx context.Context, category string) (int64, error) {
	return s.db.Collection(collSkills).CountDocuments(ctx, categoryFilter(category))
}

func (s *Store) CreateOffering(ctx context.Context, o *models.SkillOffering) (int64, error) {
	if o == nil {
		return 0, fmt.Errorf("offering is nil")
	}

	id, err := s.nextID(ctx, collOfferings)
	if err != nil {
		return 0, err
	}
	doc := *o
	doc.ID = id
	doc.CreatedAt = now()
	if _, err := s.db.Collection(collOfferings).InsertOne(ctx, doc); err != nil {
		return 0, mapErr("create offering", err)
	}
	return id, nil
}

func (s *Store) GetOfferingBySlug(ctx context.Context, slug string) (*models.SkillOffering, error) {
	var o models.SkillOffering
	if err := s.db.Collection(collOfferings).FindOne(ctx, bson.M{"slug": slug}).Decode(&o); err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (s *Store) ListOfferings(ctx context.Context, userID int64) ([]models.SkillOffering, error) {
	filter := bson.M{}
	if userID != 0 {
		filter["user_id"] = userID
	}
	cur, err := s.db.Collection(collOfferings).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.SkillOffering
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
