package models

const (
	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type Crop struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"not null"                 json:"name"`
	Quantity string  `gorm:"not null"                 json:"quantity"`
	Price    float64 `gorm:"not null"                 json:"price"`
	FarmerID uint    `gorm:"index;not null"           json:"farmer_id"`
}

type ForumPost struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title   string `gorm:"not null"                 json:"title"`
	Content string `gorm:"type:text;not null"       json:"content"`
	UserID  uint   `gorm:"index;not null"           json:"user_id"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"           json:"id"`
	Token     string `gorm:"unique;not null"      json:"token"`
	UserID    uint   `gorm:"index;not null"       json:"user_id"`
	JTI       string `gorm:"uniqueIndex;not null" json:"jti"`
	ExpiresAt int64  `gorm:"not null"             json:"expires_at"`
	Revoked   bool   `gorm:"default:false"        json:"revoked"`
}
