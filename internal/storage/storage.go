package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freightquote/internal/model"
	"freightquote/prometheus"

	"gorm.io/gorm"
)

// Sentinel errors translated to HTTP statuses at the handler boundary.
var (
	ErrNotFound        = errors.New("record not found")
	ErrNotQuoteOwner   = errors.New("caller does not own the quote")
	ErrBidNotPending   = errors.New("bid is not pending")
	ErrAlreadyAccepted = errors.New("quote already has an accepted bid")
)

// Storage implements typed entity operations over the relational store.
// It owns foreign-key wiring and default values, not route-level policy.
type Storage struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Users

func (s *Storage) CreateUser(ctx context.Context, u *model.User) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *Storage) GetUser(ctx context.Context, id uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	var u model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// Companies

func (s *Storage) CreateCompany(ctx context.Context, c *model.Company, actorID *uint) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if c.Status == "" {
		c.Status = model.CompanyStatusActive
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Create(&model.AuditLog{
			UserID:  actorID,
			Action:  "CREATE_COMPANY",
			Details: fmt.Sprintf("Created company %s (ID: %d)", c.Name, c.ID),
		}).Error
	})
}

func (s *Storage) UpdateCompany(ctx context.Context, c *model.Company, actorID *uint) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(c).Error; err != nil {
			return err
		}
		return tx.Create(&model.AuditLog{
			UserID:  actorID,
			Action:  "UPDATE_COMPANY",
			Details: fmt.Sprintf("Updated company %s (ID: %d)", c.Name, c.ID),
		}).Error
	})
}

func (s *Storage) GetCompany(ctx context.Context, id uint) (*model.Company, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	var c model.Company
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// GetCompanies lists companies, optionally filtered by type. Soft-deleted
// rows are excluded unless includeDeleted is set.
func (s *Storage) GetCompanies(ctx context.Context, companyType string, includeDeleted bool) ([]model.Company, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	query := s.db.WithContext(ctx).Model(&model.Company{})
	if companyType != "" {
		query = query.Where("type = ?", companyType)
	}
	if !includeDeleted {
		query = query.Where("status <> ?", model.CompanyStatusDeleted)
	}
	companies := []model.Company{}
	if err := query.Order("created_at desc").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// CountCompaniesByCNPJ counts companies sharing a tax id, excluding one row
// (used on update; pass 0 on create).
func (s *Storage) CountCompaniesByCNPJ(ctx context.Context, cnpj string, excludeID uint) (int64, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Company{}).
		Where("cnpj = ? AND id <> ?", cnpj, excludeID).
		Count(&count).Error
	return count, err
}

// Addresses

func (s *Storage) CreateAddress(ctx context.Context, a *model.Address) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if a.Country == "" {
		a.Country = "BR"
	}
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *Storage) GetAddresses(ctx context.Context, companyID uint) ([]model.Address, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	addresses := []model.Address{}
	err := s.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&addresses).Error
	return addresses, err
}

func (s *Storage) GetAddress(ctx context.Context, id uint) (*model.Address, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	var a model.Address
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *Storage) UpdateAddress(ctx context.Context, a *model.Address) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	return s.db.WithContext(ctx).Save(a).Error
}

// DeleteAddress removes an address unconditionally; ownership is checked
// one layer up.
func (s *Storage) DeleteAddress(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return s.db.WithContext(ctx).Delete(&model.Address{}, id).Error
}

// Audit log

func (s *Storage) CreateAuditLog(ctx context.Context, userID *uint, action, details string) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return s.db.WithContext(ctx).Create(&model.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}).Error
}

func (s *Storage) GetAuditLogs(ctx context.Context, limit, offset int) ([]model.AuditLog, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	logs := []model.AuditLog{}
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, err
}
