package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Query parameter parsing
	"time"     // Cache TTLs

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"lifetrack/internal/domain"  // Domain models
	"lifetrack/internal/service" // Business logic
	"lifetrack/internal/utils"   // Cache helpers
)

// Cache key builders for wallet data
func walletCacheKey(walletID uint) string {
	return "wallet:" + strconv.Itoa(int(walletID))
}

func walletListCacheKey(userID uint) string {
	return "wallets:user:" + strconv.Itoa(int(userID))
}

func txHistoryPrefix(userID uint) string {
	return "txhistory:user:" + strconv.Itoa(int(userID))
}

// txHistoryDefaultPrefix names the unfiltered listing view; filtered views are
// left to expire via TTL (simple version, matching the page invalidation)
func txHistoryDefaultPrefix(userID uint) string {
	return txHistoryPrefix(userID) + ":w=:t=:f=:o="
}

// invalidateWalletCache drops every cached view a wallet mutation can stale
func invalidateWalletCache(rdb *redis.Client, userID, walletID uint) {
	ctx := context.Background()
	_ = utils.DeleteCache(ctx, rdb, walletCacheKey(walletID))
	_ = utils.DeleteCache(ctx, rdb, walletListCacheKey(userID))
	utils.InvalidatePages(ctx, rdb, txHistoryDefaultPrefix(userID))
}

// CreateWalletHandler creates a wallet for the authenticated user
func CreateWalletHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		var req service.CreateWalletRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		wallet, err := svc.CreateWallet(userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, walletListCacheKey(userID))
		c.JSON(http.StatusCreated, gin.H{"message": "Wallet created", "wallet": wallet})
	}
}

// ListWalletsHandler returns all wallets of the authenticated user
func ListWalletsHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		ctx := context.Background()
		cacheKey := walletListCacheKey(userID)
		var cached []domain.Wallet
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"wallets": cached, "cached": true})
			return
		}
		wallets, err := svc.ListWallets(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, wallets, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"wallets": wallets, "cached": false})
	}
}

// GetWalletHandler returns one wallet with its most recent transactions
func GetWalletHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		walletID, ok := idParam(c, "id")
		if !ok {
			return
		}
		ctx := context.Background()
		cacheKey := walletCacheKey(walletID)
		var cached struct {
			Wallet       domain.Wallet        `json:"wallet"`       // The wallet
			Transactions []domain.Transaction `json:"transactions"` // Recent transactions
			OwnerID      uint                 `json:"owner_id"`     // Guard against serving a foreign wallet from cache
		}
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found && cached.OwnerID == userID {
			c.JSON(http.StatusOK, gin.H{"wallet": cached.Wallet, "transactions": cached.Transactions, "cached": true})
			return
		}
		wallet, txns, err := svc.GetWallet(userID, walletID, 5)
		if err != nil {
			respondError(c, err)
			return
		}
		cached.Wallet = *wallet
		cached.Transactions = txns
		cached.OwnerID = userID
		_ = utils.SetCache(ctx, rdb, cacheKey, cached, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"wallet": wallet, "transactions": txns, "cached": false})
	}
}

// UpdateWalletHandler applies a partial edit to a wallet
func UpdateWalletHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		walletID, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req service.UpdateWalletRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		wallet, err := svc.UpdateWallet(userID, walletID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateWalletCache(rdb, userID, walletID)
		c.JSON(http.StatusOK, gin.H{"message": "Wallet updated", "wallet": wallet})
	}
}

// DeleteWalletHandler removes a wallet and all its transactions
func DeleteWalletHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		walletID, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteWallet(userID, walletID); err != nil {
			respondError(c, err)
			return
		}
		invalidateWalletCache(rdb, userID, walletID)
		c.JSON(http.StatusOK, gin.H{"message": "Wallet deleted"})
	}
}
