package schema

import "time"

// Article represents the articles table - published content that
// donations target, keyed on-chain by its content hash
type Article struct {
	// ID is the platform article identifier
	ID uint64 `gorm:"column:id;primaryKey;type:bigint"`
	// AuthorID is the platform user who published the article
	AuthorID uint64 `gorm:"column:author_id;not null;type:bigint;index"`
	// DataHash is the content-addressed hash the curation URI resolves to
	DataHash string `gorm:"column:data_hash;not null;type:text;uniqueIndex:idx_articles_data_hash"`
	// Title is the article title
	Title string `gorm:"column:title;not null;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Article model
func (Article) TableName() string {
	return "articles"
}
