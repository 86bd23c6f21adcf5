package handler

import (
	"context"

	"freightquote/internal/model"
)

// Store is the persistence surface handlers depend on. Implemented by
// storage.Storage; tests substitute a mock.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	CreateCompany(ctx context.Context, c *model.Company, actorID *uint) error
	UpdateCompany(ctx context.Context, c *model.Company, actorID *uint) error
	GetCompany(ctx context.Context, id uint) (*model.Company, error)
	GetCompanies(ctx context.Context, companyType string, includeDeleted bool) ([]model.Company, error)
	CountCompaniesByCNPJ(ctx context.Context, cnpj string, excludeID uint) (int64, error)

	CreateAddress(ctx context.Context, a *model.Address) error
	GetAddresses(ctx context.Context, companyID uint) ([]model.Address, error)
	GetAddress(ctx context.Context, id uint) (*model.Address, error)
	UpdateAddress(ctx context.Context, a *model.Address) error
	DeleteAddress(ctx context.Context, id uint) error

	CreateQuote(ctx context.Context, clientID uint, q *model.Quote) error
	GetQuotes(ctx context.Context) ([]model.Quote, error)
	GetQuote(ctx context.Context, id uint) (*model.Quote, error)
	CloseQuote(ctx context.Context, quoteID uint) (*model.Quote, error)
	CountOpenQuotes(ctx context.Context) (int64, error)

	CreateBid(ctx context.Context, carrierID, quoteID uint, b *model.Bid) error
	GetBidsForQuote(ctx context.Context, quoteID uint) ([]model.Bid, error)
	AcceptBid(ctx context.Context, bidID, clientID uint) (*model.Bid, error)
	RejectBid(ctx context.Context, bidID, clientID uint) (*model.Bid, error)

	CreateAuditLog(ctx context.Context, userID *uint, action, details string) error
	GetAuditLogs(ctx context.Context, limit, offset int) ([]model.AuditLog, error)
}
