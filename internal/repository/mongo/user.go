package mongo

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository"
)

var skillFields = map[string]string{
	repository.SkillsOffered: "skills_offered",
	repository.SkillsWanted:  "skills_wanted",
	repository.SkillsSaved:   "saved_skills",
}

func skillField(kind string) (string, error) {
	f, ok := skillFields[kind]
	if !ok {
		return "", fmt.Errorf("unknown skill relation %q", kind)
	}
	return f, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	id, err := s.nextID(ctx, collUsers)
	if err != nil {
		return 0, err
	}
	doc := *u
	doc.ID = id
	doc.Email = strings.ToLower(strings.TrimSpace(u.Email))
	doc.CreatedAt = now()
	doc.UpdatedAt = doc.CreatedAt
	// $addToSet and $pull need real arrays, never null
	doc.SkillsOffered = orEmpty(u.SkillsOffered)
	doc.SkillsWanted = orEmpty(u.SkillsWanted)
	doc.SavedSkills = orEmpty(u.SavedSkills)

	if _, err := s.db.Collection(collUsers).InsertOne(ctx, doc); err != nil {
		return 0, mapErr("create user", err)
	}
	return id, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.db.Collection(collUsers).FindOne(ctx, filter).Decode(&u); err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	u.SkillsOffered = orEmpty(u.SkillsOffered)
	u.SkillsWanted = orEmpty(u.SkillsWanted)
	u.SavedSkills = orEmpty(u.SavedSkills)
	return &u, nil
}

// UsernameTaken runs an anchored, regex-escaped, case-insensitive match.
func (s *Store) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	filter := bson.M{
		"username": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(username) + "$", Options: "i"},
		"_id":      bson.M{"$ne": excludeID},
	}
	n, err := s.db.Collection(collUsers).CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) UpdateProfile(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	set := bson.M{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"bio":        u.Bio,
		"photo_url":  u.PhotoURL,
		"onboarded":  u.Onboarded,
		"updated_at": now(),
	}
	update := bson.M{"$set": set}
	if u.Username != nil {
		set["username"] = *u.Username
	} else {
		update["$unset"] = bson.M{"username": ""}
	}
	_, err := s.db.Collection(collUsers).UpdateOne(ctx, bson.M{"_id": u.ID}, update)
	return mapErr("update profile", err)
}

func (s *Store) AddUserSkill(ctx context.Context, userID, skillID int64, kind string) error {
	field, err := skillField(kind)
	if err != nil {
		return err
	}
	_, err = s.db.Collection(collUsers).UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$addToSet": bson.M{field: skillID}})
	return err
}

func (s *Store) RemoveUserSkill(ctx context.Context, userID, skillID int64, kind string) error {
	field, err := skillField(kind)
	if err != nil {
		return err
	}
	_, err = s.db.Collection(collUsers).UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{field: skillID}})
	return err
}

func (s *Store) ListUserSkillIDs(ctx context.Context, userID int64, kind string) ([]int64, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil || u == nil {
		return []int64{}, err
	}
	switch kind {
	case repository.SkillsOffered:
		return u.SkillsOffered, nil
	case repository.SkillsWanted:
		return u.SkillsWanted, nil
	case repository.SkillsSaved:
		return u.SavedSkills, nil
	}
	return nil, fmt.Errorf("unknown skill relation %q", kind)
}

func (s *Store) ReplaceUserSkills(ctx context.Context, userID int64, kind string, skillIDs []int64) error {
	field, err := skillField(kind)
	if err != nil {
		return err
	}
	_, err = s.db.Collection(collUsers).UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{field: dedupe(skillIDs)}})
	return err
}

func orEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func dedupe(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
