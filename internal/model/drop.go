package model

import "time"

const (
	DropStatusComingSoon = "coming_soon"
	DropStatusCurrent    = "current"
	DropStatusPast       = "past"
)

// ValidDropStatus reports whether s is one of the drop lifecycle states.
func ValidDropStatus(s string) bool {
	switch s {
	case DropStatusComingSoon, DropStatusCurrent, DropStatusPast:
		return true
	}
	return false
}

type Drop struct {
	ID            int64      `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Slug          string     `db:"slug" json:"slug"`
	Description   *string    `db:"description" json:"description"`
	Status        string     `db:"status" json:"status"`
	LaunchDate    *time.Time `db:"launch_date" json:"launch_date"`
	EndDate       *time.Time `db:"end_date" json:"end_date"`
	HeroImage     *string    `db:"hero_image" json:"hero_image"`
	BannerImage   *string    `db:"banner_image" json:"banner_image"`
	StoryContent  *string    `db:"story_content" json:"story_content"`
	TeaserContent *string    `db:"teaser_content" json:"teaser_content"`
	IsFeatured    bool       `db:"is_featured" json:"is_featured"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// DropSummary is a drop row with its product count, for the admin list.
type DropSummary struct {
	Drop
	ProductCount int64 `db:"product_count" json:"product_count"`
}
