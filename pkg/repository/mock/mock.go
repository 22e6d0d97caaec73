// Package mock provides map-backed repositories for service and handler tests.
package mock

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/internal/repository/memory"
	"github.com/garnizeh/skillswap/pkg/repository"
)

// Mocks bundles one fake per repository contract. Requests and reports use
// the real in-memory stores.
type Mocks struct {
	Store    *Store
	Requests *memory.RequestStore
	Reports  *memory.ReportStore
}

func NewMocks() *Mocks {
	return &Mocks{
		Store:    NewStore(),
		Requests: memory.NewRequestStore(),
		Reports:  memory.NewReportStore(),
	}
}

// Store implements repository.Store. Set an *Err field to make the matching
// method fail.
type Store struct {
	mu sync.Mutex

	users     map[int64]*models.User
	skills    map[int64]*models.Skill
	offerings map[int64]*models.SkillOffering
	chats     map[int64]*models.Chat
	messages  []models.Message
	nextID    int64

	CreateUserErr     error
	GetUserErr        error
	UpdateProfileErr  error
	CreateSkillErr    error
	CreateOfferingErr error
	CreateMessageErr  error
	ListErr           error
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users:     map[int64]*models.User{},
		skills:    map[int64]*models.Skill{},
		offerings: map[int64]*models.SkillOffering{},
		chats:     map[int64]*models.Chat{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddUser stores u directly and returns its id.
func (s *Store) AddUser(u models.User) int64 {
	id, _ := s.CreateUser(context.Background(), &u)
	return id
}

// AddSkill stores sk directly and returns its id.
func (s *Store) AddSkill(sk models.Skill) int64 {
	id, _ := s.CreateSkill(context.Background(), &sk)
	return id
}

// User returns a copy of the stored user, or nil.
func (s *Store) User(id int64) *models.User {
	u, _ := s.GetUserByID(context.Background(), id)
	return u
}

// UserCount reports how many users are stored.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.SkillsOffered = slices.Clone(u.SkillsOffered)
	c.SkillsWanted = slices.Clone(u.SkillsWanted)
	c.SavedSkills = slices.Clone(u.SavedSkills)
	if u.Username != nil {
		name := *u.Username
		c.Username = &name
	}
	return &c
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateUserErr != nil {
		return 0, s.CreateUserErr
	}
	email := strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range s.users {
		if existing.Email == email {
			return 0, repository.ErrDuplicate
		}
	}
	c := copyUser(u)
	c.ID = s.id()
	c.Email = email
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	s.users[c.ID] = c
	return c.ID, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetUserErr != nil {
		return nil, s.GetUserErr
	}
	if u, ok := s.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetUserErr != nil {
		return nil, s.GetUserErr
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *Store) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID != excludeID && u.Username != nil && strings.EqualFold(*u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) UpdateProfile(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateProfileErr != nil {
		return s.UpdateProfileErr
	}
	cur, ok := s.users[u.ID]
	if !ok {
		return nil
	}
	if u.Username != nil {
		for _, other := range s.users {
			if other.ID != u.ID && other.Username != nil && strings.EqualFold(*other.Username, *u.Username) {
				return repository.ErrDuplicate
			}
		}
	}
	next := copyUser(u)
	next.Email, next.PasswordHash, next.CreatedAt = cur.Email, cur.PasswordHash, cur.CreatedAt
	next.SkillsOffered, next.SkillsWanted, next.SavedSkills = cur.SkillsOffered, cur.SkillsWanted, cur.SavedSkills
	next.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = next
	return nil
}

func (s *Store) skillList(u *models.User, kind string) *[]int64 {
	switch kind {
	case repository.SkillsOffered:
		return &u.SkillsOffered
	case repository.SkillsWanted:
		return &u.SkillsWanted
	default:
		return &u.SavedSkills
	}
}

func (s *Store) AddUserSkill(ctx context.Context, userID, skillID int64, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	l := s.skillList(u, kind)
	if !slices.Contains(*l, skillID) {
		*l = append(*l, skillID)
	}
	return nil
}

func (s *Store) RemoveUserSkill(ctx context.Context, userID, skillID int64, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	l := s.skillList(u, kind)
	*l = slices.DeleteFunc(*l, func(id int64) bool { return id == skillID })
	return nil
}

func (s *Store) ListUserSkillIDs(ctx context.Context, userID int64, kind string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	u, ok := s.users[userID]
	if !ok {
		return []int64{}, nil
	}
	out := slices.Clone(*s.skillList(u, kind))
	if out == nil {
		out = []int64{}
	}
	return out, nil
}

func (s *Store) ReplaceUserSkills(ctx context.Context, userID int64, kind string, skillIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	l := s.skillList(u, kind)
	*l = (*l)[:0]
	for _, id := range skillIDs {
		if !slices.Contains(*l, id) {
			*l = append(*l, id)
		}
	}
	return nil
}

func (s *Store) CreateSkill(ctx context.Context, sk *models.Skill) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateSkillErr != nil {
		return 0, s.CreateSkillErr
	}
	for _, existing := range s.skills {
		if existing.Slug == sk.Slug {
			return 0, repository.ErrDuplicate
		}
	}
	c := *sk
	c.ID = s.id()
	c.CreatedAt = time.Now().UTC()
	s.skills[c.ID] = &c
	return c.ID, nil
}

func (s *Store) GetSkillByID(ctx context.Context, id int64) (*models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sk, ok := s.skills[id]; ok {
		c := *sk
		return &c, nil
	}
	return nil, nil
}

func (s *Store) GetSkillBySlug(ctx context.Context, slug string) (*models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sk := range s.skills {
		if sk.Slug == slug {
			c := *sk
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) filteredSkills(category string) []models.Skill {
	out := []models.Skill{}
	for _, sk := range s.skills {
		if category == "" || strings.EqualFold(sk.Category, category) {
			out = append(out, *sk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ListSkills(ctx context.Context, category string, limit, offset int) ([]models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	all := s.filteredSkills(category)
	if offset >= len(all) {
		return []models.Skill{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (s *Store) CountSkills(ctx context.Context, category string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filteredSkills(category))), nil
}

func (s *Store) CreateOffering(ctx context.Context, o *models.SkillOffering) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateOfferingErr != nil {
		return 0, s.CreateOfferingErr
	}
	for _, existing := range s.offerings {
		if existing.Slug == o.Slug {
			return 0, repository.ErrDuplicate
		}
	}
	c := *o
	c.ID = s.id()
	c.CreatedAt = time.Now().UTC()
	s.offerings[c.ID] = &c
	return c.ID, nil
}

func (s *Store) GetOfferingBySlug(ctx context.Context, slug string) (*models.SkillOffering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.offerings {
		if o.Slug == slug {
			c := *o
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) ListOfferings(ctx context.Context, userID int64) ([]models.SkillOffering, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.SkillOffering{}
	for _, o := range s.offerings {
		if userID == 0 || o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetOrCreateChat(ctx context.Context, a, b int64) (*models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pair := models.OrderPair(a, b)
	for _, c := range s.chats {
		if c.Participants == pair {
			cp := *c
			return &cp, nil
		}
	}
	c := &models.Chat{ID: s.id(), Participants: pair, Unread: map[int64]int64{pair[0]: 0, pair[1]: 0}, CreatedAt: time.Now().UTC()}
	s.chats[c.ID] = c
	cp := *c
	return &cp, nil
}

func (s *Store) GetChat(ctx context.Context, id int64) (*models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.chats[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) ListChatsByUser(ctx context.Context, userID int64) ([]models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := []models.Chat{}
	for _, c := range s.chats {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateMessage(ctx context.Context, m *models.Message) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateMessageErr != nil {
		return 0, s.CreateMessageErr
	}
	c := *m
	c.ID = s.id()
	s.messages = append(s.messages, c)
	return c.ID, nil
}

func (s *Store) ListMessages(ctx context.Context, chatID int64) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := []models.Message{}
	for _, m := range s.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}
