package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gitlab.com/missiondax-platform/ledger_api/cache/uplines"
	"gitlab.com/missiondax-platform/ledger_api/model"
)

// CreateSeller registers a seller. The referral edge is validated and set
// here, once, and there is deliberately no way to change it afterwards.
func (service *Service) CreateSeller(referrerID *uint64) (*model.Seller, error) {
	if referrerID != nil {
		referrer := model.Seller{}
		if err := service.repo.ConnReader.First(&referrer, "id = ?", *referrerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownSeller
			}
			return nil, err
		}
	}

	seller := model.NewSeller(referrerID)
	if err := service.repo.Conn.Create(seller).Error; err != nil {
		return nil, err
	}
	uplines.Set(seller.ID, seller.ReferrerID)

	log.Info().
		Str("section", "service").
		Str("action", "CreateSeller").
		Uint64("seller_id", seller.ID).
		Msg("Seller created")
	return seller, nil
}

// GetSeller returns one seller by id
func (service *Service) GetSeller(sellerID uint64) (*model.Seller, error) {
	seller := model.Seller{}
	if err := service.repo.ConnReader.First(&seller, "id = ?", sellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownSeller
		}
		return nil, err
	}
	return &seller, nil
}

// UpdateSellerStatus moves a seller between pending/approved/suspended.
// Status gates referral credit from the moment it changes; commissions
// already issued are untouched.
func (service *Service) UpdateSellerStatus(sellerID uint64, status model.SellerStatus) (*model.Seller, error) {
	seller, err := service.GetSeller(sellerID)
	if err != nil {
		return nil, err
	}
	if seller.Status == status {
		return seller, nil
	}
	if err := service.repo.Conn.Model(seller).Update("status", status).Error; err != nil {
		return nil, err
	}
	seller.Status = status
	return seller, nil
}
