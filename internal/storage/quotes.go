package storage

import (
	"context"
	"fmt"
	"time"

	"freightquote/internal/model"
	"freightquote/prometheus"

	"gorm.io/gorm"
)

// CreateQuote inserts a quote owned by clientID with status "open"
func (s *Storage) CreateQuote(ctx context.Context, clientID uint, q *model.Quote) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	q.ClientID = clientID
	q.Status = model.QuoteStatusOpen
	return s.db.WithContext(ctx).Create(q).Error
}

// GetQuotes returns all quotes with their owning client and bids eagerly
// loaded, newest first. Role-based visibility filtering happens one layer up.
func (s *Storage) GetQuotes(ctx context.Context) ([]model.Quote, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	quotes := []model.Quote{}
	err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Bids").
		Order("created_at desc").
		Find(&quotes).Error
	return quotes, err
}

// GetQuote returns one quote with client and bids-with-carrier loaded
func (s *Storage) GetQuote(ctx context.Context, id uint) (*model.Quote, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	var q model.Quote
	err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Bids.Carrier").
		First(&q, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &q, nil
}

// CreateBid inserts a pending bid and moves the parent quote from "open" to
// "responded". The transition is gated on the current status so a later bid
// cannot regress a quote that already progressed. Both writes share one
// transaction.
func (s *Storage) CreateBid(ctx context.Context, carrierID, quoteID uint, b *model.Bid) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	b.CarrierID = carrierID
	b.QuoteID = quoteID
	b.Status = model.BidStatusPending
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quote model.Quote
		if err := tx.First(&quote, quoteID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		return tx.Model(&model.Quote{}).
			Where("id = ? AND status = ?", quoteID, model.QuoteStatusOpen).
			Update("status", model.QuoteStatusResponded).Error
	})
}

// CountOpenQuotes counts quotes still open for bidding, for metrics
func (s *Storage) CountOpenQuotes(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Quote{}).
		Where("status = ?", model.QuoteStatusOpen).
		Count(&count).Error
	return count, err
}

func (s *Storage) GetBidsForQuote(ctx context.Context, quoteID uint) ([]model.Bid, error) {
	defer prometheus.TrackDBOperation("select")(time.Now())
	bids := []model.Bid{}
	err := s.db.WithContext(ctx).Where("quote_id = ?", quoteID).Find(&bids).Error
	return bids, err
}

// AcceptBid marks a pending bid as accepted on behalf of the quote's owning
// client. The whole check-then-write sequence runs in one transaction so at
// most one bid per quote can ever be accepted. The quote moves to
// "negotiation"; sibling bids are left untouched.
func (s *Storage) AcceptBid(ctx context.Context, bidID, clientID uint) (*model.Bid, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())
	var bid model.Bid
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bid, bidID).Error; err != nil {
			return notFound(err)
		}
		var quote model.Quote
		if err := tx.First(&quote, bid.QuoteID).Error; err != nil {
			return notFound(err)
		}
		if quote.ClientID != clientID {
			return ErrNotQuoteOwner
		}
		if bid.Status != model.BidStatusPending {
			return ErrBidNotPending
		}
		var accepted int64
		if err := tx.Model(&model.Bid{}).
			Where("quote_id = ? AND status = ?", bid.QuoteID, model.BidStatusAccepted).
			Count(&accepted).Error; err != nil {
			return err
		}
		if accepted > 0 {
			return ErrAlreadyAccepted
		}
		if err := tx.Model(&bid).Update("status", model.BidStatusAccepted).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Quote{}).
			Where("id = ?", quote.ID).
			Update("status", model.QuoteStatusNegotiation).Error; err != nil {
			return err
		}
		return tx.Create(&model.AuditLog{
			UserID:  &clientID,
			Action:  "ACCEPT_BID",
			Details: fmt.Sprintf("Accepted bid %d on quote %d", bid.ID, quote.ID),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	bid.Status = model.BidStatusAccepted
	return &bid, nil
}

// RejectBid marks a pending bid as rejected on behalf of the quote's owner
func (s *Storage) RejectBid(ctx context.Context, bidID, clientID uint) (*model.Bid, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())
	var bid model.Bid
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bid, bidID).Error; err != nil {
			return notFound(err)
		}
		var quote model.Quote
		if err := tx.First(&quote, bid.QuoteID).Error; err != nil {
			return notFound(err)
		}
		if quote.ClientID != clientID {
			return ErrNotQuoteOwner
		}
		if bid.Status != model.BidStatusPending {
			return ErrBidNotPending
		}
		return tx.Model(&bid).Update("status", model.BidStatusRejected).Error
	})
	if err != nil {
		return nil, err
	}
	bid.Status = model.BidStatusRejected
	return &bid, nil
}

// CloseQuote moves a quote to "closed" from any non-closed status
func (s *Storage) CloseQuote(ctx context.Context, quoteID uint) (*model.Quote, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())
	var quote model.Quote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&quote, quoteID).Error; err != nil {
			return notFound(err)
		}
		if quote.Status == model.QuoteStatusClosed {
			return nil
		}
		if err := tx.Model(&quote).Update("status", model.QuoteStatusClosed).Error; err != nil {
			return err
		}
		quote.Status = model.QuoteStatusClosed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
