package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Consent choices offered on the submission form. Question5 must hold one of
// these literals exactly.
const (
	ConsentPublish     = "Yes, go for it!"
	ConsentPrivate     = "I'd rather not — keeping it between us"
	ConsentReviewFirst = "Sure, but show me before you post"
)

func ConsentChoices() []string {
	return []string{ConsentPublish, ConsentPrivate, ConsentReviewFirst}
}

type Survey struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Email         string         `gorm:"not null;index" json:"email"`
	Question2     string         `gorm:"type:text;not null" json:"question2"`
	Question3     pq.StringArray `gorm:"type:text[];not null;index:,type:gin" json:"question3"`
	Question4     string         `gorm:"type:text;not null" json:"question4"`
	Question5     string         `gorm:"not null" json:"question5"`
	PhotoURL      *string        `json:"photoUrl"`
	PhotoFileName *string        `json:"photoFileName"`
	PhotoData     *string        `gorm:"type:text" json:"photoData,omitempty"`
	SubmittedAt   time.Time      `gorm:"index" json:"submittedAt"`
	IPAddress     string         `json:"ipAddress"`
	UserAgent     string         `json:"userAgent"`
	Archived      bool           `gorm:"not null;default:false;index" json:"archived"`
}

func (s *Survey) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now()
	}
	return nil
}

// HasPhoto reports whether the record carries an embedded photo.
func (s *Survey) HasPhoto() bool {
	return s.PhotoData != nil && *s.PhotoData != ""
}
