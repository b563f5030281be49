package domain

// Banner Model (promotional banner, seeded by migration)
type Banner struct {
	ID          uint   `gorm:"primaryKey" json:"-"`          // Primary key
	BannerName  string `gorm:"not null" json:"banner_name"`  // Banner title
	BannerImage string `json:"banner_image"`                 // Banner image URL
	Description string `json:"description"`                  // Banner description
}
