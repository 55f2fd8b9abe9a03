// Package models defines domain models for the organization portal.
package models

import (
	"time"
)

// User represents a registered member of the organization.
type User struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	StaticID     string      `gorm:"column:static_id;uniqueIndex;not null;size:50" json:"static_id"`
	Nickname     string      `gorm:"not null;size:100" json:"nickname"`
	Password     string      `gorm:"not null;size:255" json:"-"`
	Role         string      `gorm:"size:20;default:USER" json:"role"` // 'USER' or 'ADMIN'
	RankID       uint        `gorm:"index" json:"rank_id"`
	Rank         *Rank       `gorm:"foreignKey:RankID" json:"rank,omitempty"`
	DepartmentID *uint       `gorm:"index" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	Reports []Report `gorm:"foreignKey:UserID" json:"reports,omitempty"`
}

// TableName specifies the table name for User model.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Rank is a named rank with a sort weight. Referenced by users, never owned.
type Rank struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Weight int    `gorm:"not null;default:0" json:"weight"`
}

// TableName specifies the table name for Rank model.
func (Rank) TableName() string {
	return "ranks"
}

// Department is a named organizational unit.
type Department struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null;size:100" json:"name"`
}

// TableName specifies the table name for Department model.
func (Department) TableName() string {
	return "departments"
}

// Role constants.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
