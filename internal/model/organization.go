// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OrgRole string

const (
	RoleOwner  OrgRole = "owner"
	RoleAdmin  OrgRole = "admin"
	RoleMember OrgRole = "member"
	RoleGuest  OrgRole = "guest"
)

// RoleLevel maps a role onto the fixed total order used by permission checks.
// Unknown roles map to 0 and are never granted anything.
func RoleLevel(role OrgRole) int {
	switch role {
	case RoleOwner:
		return 4
	case RoleAdmin:
		return 3
	case RoleMember:
		return 2
	case RoleGuest:
		return 1
	default:
		return 0
	}
}

// ValidRole reports whether role is one of the four accepted values.
func ValidRole(role OrgRole) bool {
	return RoleLevel(role) > 0
}

type MemberStatus string

const (
	MemberActive  MemberStatus = "active"
	MemberInvited MemberStatus = "invited"
	MemberRemoved MemberStatus = "removed"
)

type Organization struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string            `gorm:"type:text;not null" json:"name"`
	Slug      string            `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	OwnerID   uuid.UUID         `gorm:"type:uuid;not null" json:"owner_id"`
	Settings  datatypes.JSONMap `gorm:"type:jsonb" json:"settings"`
	IsActive  bool              `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Owner   User                 `gorm:"foreignKey:OwnerID" json:"-"`
	Members []OrganizationMember `gorm:"foreignKey:OrganizationID" json:"-"`
}

type OrganizationMember struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_org_user" json:"organization_id"`
	UserID         uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_org_user" json:"user_id"`
	Role           OrgRole      `gorm:"type:text;not null" json:"role"`
	Status         MemberStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	JoinedAt       time.Time    `json:"joined_at"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	User         User         `gorm:"foreignKey:UserID" json:"-"`
}

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDeclined  InvitationStatus = "declined"
	InvitationExpired   InvitationStatus = "expired"
	InvitationCancelled InvitationStatus = "cancelled"
)

// InvitationTTL is how long an invitation stays acceptable after creation.
const InvitationTTL = 7 * 24 * time.Hour

type OrganizationInvitation struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;not null" json:"organization_id"`
	Email          string           `gorm:"type:citext;not null" json:"email"`
	Role           OrgRole          `gorm:"type:text;not null" json:"role"`
	InvitedByID    uuid.UUID        `gorm:"type:uuid;not null" json:"invited_by_id"`
	Token          string           `gorm:"type:text;uniqueIndex;not null" json:"-"`
	Status         InvitationStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	ExpiresAt      time.Time        `gorm:"not null" json:"expires_at"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	InvitedBy    User         `gorm:"foreignKey:InvitedByID" json:"-"`
}

// Expired reports whether the invitation's deadline has passed at now.
func (i *OrganizationInvitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
