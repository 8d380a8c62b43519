package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action kinds. Apply and view are the qualifying kinds for streak
// continuity; the rest only award XP.
const (
	ActionSkip      = "skip"
	ActionApply     = "apply"
	ActionView      = "view"
	ActionLetter    = "letter"
	ActionRejection = "rejection"
	ActionInterview = "interview"
)

// Application statuses mirror the negotiation states reported by HH.ru.
const (
	ApplicationApplied   = "applied"
	ApplicationViewed    = "viewed"
	ApplicationRejected  = "rejected"
	ApplicationInterview = "interview"
)

// DateKeyLayout is the calendar-day format used for all streak math. Dates
// are stored as plain strings so day comparisons survive round-trips exactly.
const DateKeyLayout = "2006-01-02"

type User struct {
	ID         string `gorm:"primaryKey;size:36"`
	ExternalID string `gorm:"uniqueIndex;not null"`
	Name       string
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Resume is a locally cached copy of an HH.ru resume. Only published resumes
// participate in relevance scoring.
type Resume struct {
	ID         string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"index;not null"`
	ExternalID string `gorm:"uniqueIndex;not null"`
	Title      string
	Experience string   `gorm:"type:text"`
	Skills     []string `gorm:"serializer:json"`
	Published  bool
	CachedAt   time.Time
}

func (r *Resume) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Vacancy is a locally cached vacancy, keyed by its HH.ru id. Rows are
// immutable once cached except for the description backfill, which replaces a
// search snippet with the full text on demand.
type Vacancy struct {
	ID           string `gorm:"primaryKey;size:36"`
	ExternalID   string `gorm:"uniqueIndex;not null"`
	Title        string
	Company      string
	Salary       string
	Description  string   `gorm:"type:text"`
	Requirements []string `gorm:"serializer:json"`
	CachedAt     time.Time
}

func (v *Vacancy) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Application tracks one submitted negotiation and its employer response.
type Application struct {
	ID                string `gorm:"primaryKey;size:36"`
	UserID            string `gorm:"index;not null"`
	VacancyExternalID string `gorm:"index;not null"`
	ResumeExternalID  string
	Status            string `gorm:"index;default:applied"`
	Letter            string `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (a *Application) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// UserAction is an append-only event log entry. It is never mutated or
// deleted; streak recomputation treats it as the source of truth.
type UserAction struct {
	ID         string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"index;not null"`
	Kind       string `gorm:"index;not null"`
	XPAwarded  int
	OccurredAt time.Time
	// ActionDate is the calendar day of OccurredAt in the configured
	// timezone, in DateKeyLayout.
	ActionDate string `gorm:"size:10;index"`
}

func (a *UserAction) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// UserStats is the per-user progression aggregate. Mutated only by the
// gamification engine; created lazily on first use.
type UserStats struct {
	ID            string `gorm:"primaryKey;size:36"`
	UserID        string `gorm:"uniqueIndex;not null"`
	TotalXP       int    `gorm:"default:0"`
	Level         int    `gorm:"default:1"`
	CurrentStreak int    `gorm:"default:0"`
	LongestStreak int    `gorm:"default:0"`
	Applications  int    `gorm:"default:0"`
	Views         int    `gorm:"default:0"`
	Interviews    int    `gorm:"default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *UserStats) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Achievement is an unlocked badge. The (user, kind) pair is unique and
// insert-once: re-unlocking is a no-op.
type Achievement struct {
	ID         string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"uniqueIndex:idx_user_achievement;not null"`
	Kind       string `gorm:"uniqueIndex:idx_user_achievement;not null"`
	UnlockedAt time.Time
}

func (a *Achievement) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// SearchFilter is a saved vacancy search owned by one user.
type SearchFilter struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index;not null"`
	Name      string
	Params    string `gorm:"type:text"`
	CreatedAt time.Time
}

func (f *SearchFilter) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// ApplicationCounters aggregates employer responses for the forecast.
type ApplicationCounters struct {
	Total      int
	Viewed     int
	Rejected   int
	Interviews int
}

// DayActivity is one day of the activity feed shown alongside stats.
type DayActivity struct {
	Date    string
	Actions int
	XP      int
}
