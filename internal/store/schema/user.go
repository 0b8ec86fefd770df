package schema

import "time"

// User represents the users table - the subset of platform account data
// needed to resolve on-chain addresses back to accounts
type User struct {
	// ID is the platform user identifier
	ID uint64 `gorm:"column:id;primaryKey;type:bigint"`
	// EthAddress is the user's lower-cased wallet address
	EthAddress *string `gorm:"column:eth_address;type:text;uniqueIndex:idx_users_eth_address"`
	// UserName is the display handle
	UserName string `gorm:"column:user_name;not null;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
