package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gitlab.com/missiondax-platform/ledger_api/cache/uplines"
	"gitlab.com/missiondax-platform/ledger_api/model"
)

// WalkReferralChain returns up to three approved ancestors of a seller,
// closest first. The walk stops at the first missing referrer and at the
// first ancestor that is not APPROVED: a pending or suspended seller
// breaks the chain, it is never skipped over.
//
// The referrer edge is immutable after seller creation, so the edges are
// cached forever; only the ancestor's current status is read fresh.
func (service *Service) WalkReferralChain(sellerID uint64) (model.ReferralChain, error) {
	chain := make(model.ReferralChain, 0, model.MaxReferralGenerations)
	seen := map[uint64]bool{sellerID: true}

	current := sellerID
	for generation := 1; generation <= model.MaxReferralGenerations; generation++ {
		referrerID, err := service.referrerOf(current)
		if err != nil {
			return nil, err
		}
		if referrerID == nil {
			break
		}
		// the graph is expected to be acyclic; this guard only keeps a
		// corrupted edge from looping the walk
		if seen[*referrerID] {
			log.Error().
				Str("section", "service").
				Str("action", "WalkReferralChain").
				Uint64("seller_id", sellerID).
				Uint64("referrer_id", *referrerID).
				Msg("Referral cycle detected, truncating chain")
			break
		}
		seen[*referrerID] = true

		ancestor := model.Seller{}
		if err := service.repo.ConnReader.First(&ancestor, "id = ?", *referrerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, err
		}
		if !ancestor.IsApproved() {
			break
		}
		chain = append(chain, ancestor.ID)
		current = ancestor.ID
	}
	return chain, nil
}

func (service *Service) referrerOf(sellerID uint64) (*uint64, error) {
	if referrerID, ok := uplines.Get(sellerID); ok {
		return referrerID, nil
	}
	seller := model.Seller{}
	if err := service.repo.ConnReader.First(&seller, "id = ?", sellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	uplines.Set(sellerID, seller.ReferrerID)
	return seller.ReferrerID, nil
}
