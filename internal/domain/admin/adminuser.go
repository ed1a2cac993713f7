package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is an administrative role. Permissions per role live in the policy
// enforcer, not here.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleSupport    Role = "support"
	RoleFinance    Role = "finance"
	RoleDeveloper  Role = "developer"
)

var Roles = []Role{RoleSuperAdmin, RoleSupport, RoleFinance, RoleDeveloper}

func (r Role) IsValid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

var (
	ErrInvalidRole     = errors.New("invalid admin role")
	ErrSubjectRequired = errors.New("admin subject is required")
)

// User grants an identity-provider subject an administrative role.
type User struct {
	id        string
	subject   string
	email     string
	role      Role
	active    bool
	createdAt time.Time
}

func NewUser(subject, email string, role Role) (*User, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, ErrSubjectRequired
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &User{
		id:        uuid.NewString(),
		subject:   subject,
		email:     strings.ToLower(strings.TrimSpace(email)),
		role:      role,
		active:    true,
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructUser(id, subject, email string, role Role, active bool, createdAt time.Time) *User {
	return &User{id: id, subject: subject, email: email, role: role, active: active, createdAt: createdAt}
}

func (u *User) ID() string           { return u.id }
func (u *User) Subject() string      { return u.subject }
func (u *User) Email() string        { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) Active() bool         { return u.active }
func (u *User) CreatedAt() time.Time { return u.createdAt }

type Repository interface {
	Create(ctx context.Context, u *User) error
	// GetBySubject returns (nil, nil) when the subject is not an admin.
	GetBySubject(ctx context.Context, subject string) (*User, error)
}
