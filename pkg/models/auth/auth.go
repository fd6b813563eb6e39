package auth

import (
	"fmt"
	"time"
)

// ContentType identifies a model of an application.
type ContentType struct {
	ID       uint   `gorm:"primaryKey" label:"ID"`
	AppLabel string `gorm:"size:100;not null" label:"app label"`
	Model    string `gorm:"size:100;not null" label:"python model class name"`
}

func (ContentType) TableName() string {
	return "django_content_type"
}

func (c ContentType) String() string {
	return c.Model
}

// Permission grants an action on a content type.
type Permission struct {
	ID            uint         `gorm:"primaryKey" label:"ID"`
	Name          string       `gorm:"size:255;not null" label:"name"`
	ContentTypeID uint         `gorm:"not null"`
	ContentType   *ContentType `label:"content type"`
	Codename      string       `gorm:"size:100;not null" label:"codename"`
}

func (Permission) TableName() string {
	return "auth_permission"
}

func (p Permission) String() string {
	if p.ContentType == nil {
		return p.Name
	}
	return fmt.Sprintf("%s | %s | %s", p.ContentType.AppLabel, p.ContentType, p.Name)
}

// Group is a named set of permissions.
type Group struct {
	ID          uint         `gorm:"primaryKey" label:"ID"`
	Name        string       `gorm:"size:80;uniqueIndex" label:"name"`
	Permissions []Permission `gorm:"many2many:auth_group_permissions" label:"permissions"`
}

func (Group) TableName() string {
	return "auth_group"
}

func (g Group) String() string {
	return g.Name
}

// User is an account. Password is never exposed to reports.
type User struct {
	ID          uint      `gorm:"primaryKey" label:"ID"`
	Username    string    `gorm:"size:150;uniqueIndex" label:"username"`
	FirstName   string    `gorm:"size:30" label:"first name"`
	LastName    string    `gorm:"size:30" label:"last name"`
	Email       string    `gorm:"size:254" label:"email address"`
	Password    string    `gorm:"-"`
	IsStaff     bool      `label:"staff status"`
	IsActive    bool      `gorm:"default:true" label:"active"`
	DateJoined  time.Time `gorm:"autoCreateTime" label:"date joined"`
	LastLogin   *time.Time
	Groups      []Group      `gorm:"many2many:auth_user_groups" label:"groups"`
	Permissions []Permission `gorm:"many2many:auth_user_user_permissions" label:"user permissions"`
}

func (User) TableName() string {
	return "auth_user"
}

func (u User) String() string {
	return u.Username
}
