package model

// User maps to users.
type User struct {
	ID           string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string  `gorm:"type:varchar(255);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         Role    `gorm:"type:varchar(20);not null"                      json:"role"`
	Avatar       *string `gorm:"type:text"                                      json:"avatar"`
	ProfessorID  *string `gorm:"type:uuid"                                      json:"professor_id"`
	ClassGroup   *string `gorm:"type:varchar(100)"                              json:"class_group"`
	Timestamps
}

func (User) TableName() string { return "users" }
