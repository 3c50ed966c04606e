package domain

// User Model
type User struct {
	ID       uint     `gorm:"primaryKey"`      // Primary key
	Username string   `gorm:"unique;not null"` // Unique username
	Password string   `gorm:"not null"`        // Hashed password
	Role     string   `gorm:"default:user"`    // Role: user or admin
	Wallets  []Wallet `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Wallets owned by the user
	Tasks    []Task   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Tasks owned by the user
}
