package models

import "time"

// Request statuses. A request starts pending and moves once to accepted or declined.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

type User struct {
	ID            int64     `json:"id" bson:"_id"`
	Email         string    `json:"email" bson:"email"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	FirstName     string    `json:"firstName" bson:"first_name"`
	LastName      string    `json:"lastName" bson:"last_name"`
	Username      *string   `json:"username,omitempty" bson:"username,omitempty"`
	Bio           string    `json:"bio" bson:"bio"`
	PhotoURL      string    `json:"photoUrl,omitempty" bson:"photo_url"`
	SkillsOffered []int64   `json:"skillsOffered" bson:"skills_offered"`
	SkillsWanted  []int64   `json:"skillsWanted" bson:"skills_wanted"`
	SavedSkills   []int64   `json:"savedSkills" bson:"saved_skills"`
	Onboarded     bool      `json:"onboarded" bson:"onboarded"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updated_at"`
}

// DisplayName is the name shown to other users.
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

type Skill struct {
	ID          int64     `json:"id" bson:"_id"`
	Category    string    `json:"category" bson:"category"`
	Name        string    `json:"name" bson:"name"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description" bson:"description"`
	VideoURL    string    `json:"videoUrl,omitempty" bson:"video_url"`
	CreatedBy   int64     `json:"createdBy,omitempty" bson:"created_by"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

type SkillOffering struct {
	ID          int64     `json:"id" bson:"_id"`
	SkillID     int64     `json:"skillId" bson:"skill_id"`
	UserID      int64     `json:"userId" bson:"user_id"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description" bson:"description"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"image_url"`
	VideoURL    string    `json:"videoUrl,omitempty" bson:"video_url"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

type Request struct {
	ID            int64     `json:"id"`
	SkillID       int64     `json:"skillId"`
	OwnerID       int64     `json:"ownerId"`
	RequesterID   int64     `json:"requesterId"`
	SkillName     string    `json:"skillName,omitempty"`
	OwnerName     string    `json:"ownerName,omitempty"`
	RequesterName string    `json:"requesterName,omitempty"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Chat groups exactly two participants, stored low id first.
type Chat struct {
	ID            int64           `json:"id" bson:"_id"`
	Participants  [2]int64        `json:"participants" bson:"participants"`
	LastMessage   string          `json:"lastMessage" bson:"last_message"`
	LastMessageAt *time.Time      `json:"lastMessageAt,omitempty" bson:"last_message_at,omitempty"`
	Unread        map[int64]int64 `json:"unread" bson:"-"`
	CreatedAt     time.Time       `json:"createdAt" bson:"created_at"`
}

// HasParticipant reports whether userID belongs to the chat.
func (c *Chat) HasParticipant(userID int64) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}

// OrderPair returns the pair ordered low id first.
func OrderPair(a, b int64) [2]int64 {
	if a > b {
		a, b = b, a
	}
	return [2]int64{a, b}
}

type Message struct {
	ID       int64     `json:"id" bson:"_id"`
	ChatID   int64     `json:"chatId" bson:"chat_id"`
	SenderID int64     `json:"senderId" bson:"sender_id"`
	Content  string    `json:"content" bson:"content"`
	SentAt   time.Time `json:"sentAt" bson:"sent_at"`
}

type Report struct {
	ID             int64     `json:"id"`
	ReporterID     int64     `json:"reporterId,omitempty"`
	ReportedUserID int64     `json:"reportedUserId,omitempty"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"createdAt"`
}
