package domain

import (
	"github.com/tokenmart/backend/internal/entity"
	"github.com/tokenmart/backend/internal/model"
)

func convertToken(nft *entity.NonFungibleToken) model.Token {
	return model.Token{
		TokenID:     nft.TokenID,
		Name:        nft.Name,
		Description: nft.Description,
		Owner:       nft.Owner,
		Price:       nft.Price,
		ForSale:     nft.ForSale,
		CreatedAt:   nft.CreatedAt,
	}
}

func convertAuction(auction *entity.Auction) model.Auction {
	result := model.Auction{
		ID:         auction.ID,
		TokenID:    auction.TokenID,
		Seller:     auction.Seller,
		StartPrice: auction.StartPrice,
		EndTime:    auction.EndTime,
		HighestBid: auction.HighestBid,
		Active:     auction.Active,
	}

	if auction.HighestBidder.Valid {
		result.HighestBidder = auction.HighestBidder.String
	}

	return result
}

func convertNftTx(tx *entity.NftTx) model.NftTx {
	return model.NftTx{
		ID:          tx.ID,
		TokenID:     tx.TokenID,
		FromAddress: tx.FromAddress,
		ToAddress:   tx.ToAddress,
		Amount:      tx.Amount,
		Kind:        string(tx.Kind),
		CreatedAt:   tx.CreatedAt,
	}
}
