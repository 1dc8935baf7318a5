package models

type Instrumental struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Title     string  `gorm:"not null"                  json:"title"`
	Genre     string  `gorm:"not null;index"            json:"genre"`
	BPM       int     `gorm:"column:bpm;not null;index" json:"bpm"`
	CoverPath string  `gorm:"not null;default:''"       json:"coverPath"`
	AudioPath string  `gorm:"not null;default:''"       json:"audioPath"`
	Price     float64 `gorm:"not null"                  json:"price"`
}

type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserName string `gorm:"not null"                 json:"userName"`
	Email    string `gorm:"uniqueIndex;not null"     json:"email"`
	Password string `gorm:"not null"                 json:"-"`
	RoleID   uint   `gorm:"not null;index"           json:"roleId"`
	Role     Role   `gorm:"foreignKey:RoleID"        json:"-"`
}
