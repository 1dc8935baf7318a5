package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/epicbeats/internal/domain"
	"github.com/Skotchmaster/epicbeats/internal/models"
)

type UserRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{DB: db}
}

type userRow struct {
	ID       uint
	UserName string
	Email    string
	Password string
	RoleID   uint
	RoleName string
}

func (u userRow) summary() domain.UserSummary {
	return domain.UserSummary{
		ID:       u.ID,
		UserName: u.UserName,
		Email:    u.Email,
		RoleID:   u.RoleID,
		RoleName: u.RoleName,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepo) withRole(ctx context.Context, columns string) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("users").
		Select(columns).
		Joins("LEFT JOIN roles ON roles.id = users.role_id")
}

const summaryColumns = "users.id, users.user_name, users.email, users.role_id, roles.name AS role_name"

func (r *UserRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fail(ctx, "check user exists", err)
	}
	return n > 0, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.UserSummary, error) {
	var rows []userRow
	if err := r.withRole(ctx, summaryColumns).Where("users.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fail(ctx, "find user by id", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	s := rows[0].summary()
	return &s, nil
}

// FindByEmail is the only lookup that returns the password hash.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.UserWithCredentials, error) {
	var rows []userRow
	err := r.withRole(ctx, summaryColumns+", users.password").
		Where("users.email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fail(ctx, "find user by email", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &domain.UserWithCredentials{
		UserSummary:  rows[0].summary(),
		PasswordHash: rows[0].Password,
	}, nil
}

// EmailInUse ignores the row with id excludingUserID; pass 0 to check every user.
func (r *UserRepo) EmailInUse(ctx context.Context, email string, excludingUserID uint) (bool, error) {
	q := r.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", NormalizeEmail(email))
	if excludingUserID != 0 {
		q = q.Where("id <> ?", excludingUserID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fail(ctx, "check email in use", err)
	}
	return n > 0, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", NormalizeEmail(email)).
		Update("password", passwordHash)
	if res.Error != nil {
		return false, fail(ctx, "update password", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepo) UpdateEmail(ctx context.Context, id uint, email string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("email", NormalizeEmail(email))
	if res.Error != nil {
		return false, fail(ctx, "update email", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.NewUser) (uint, error) {
	row := models.User{
		UserName: u.UserName,
		Email:    NormalizeEmail(u.Email),
		Password: u.PasswordHash,
		RoleID:   u.RoleID,
	}
	if err := r.DB.WithContext(ctx).Omit("Role").Create(&row).Error; err != nil {
		return 0, fail(ctx, "create user", err)
	}
	return row.ID, nil
}

func (r *UserRepo) RoleIDByName(ctx context.Context, name string) (uint, bool, error) {
	var role models.Role
	res := r.DB.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&role)
	if res.Error != nil {
		return 0, false, fail(ctx, "find role", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}
	return role.ID, true, nil
}
