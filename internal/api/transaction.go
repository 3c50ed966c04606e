package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Query parameter parsing
	"strings"  // Cache key assembly
	"time"     // Cache TTLs

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"lifetrack/internal/domain"  // Domain models
	"lifetrack/internal/service" // Business logic
	"lifetrack/internal/utils"   // Cache helpers
)

// CreateTransactionHandler records a financial event against one of the
// authenticated user's wallets and returns both the new transaction and the
// wallet's updated balance
func CreateTransactionHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		var req service.CreateTransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		txn, wallet, err := svc.CreateTransaction(userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateWalletCache(rdb, userID, wallet.ID)
		c.JSON(http.StatusCreated, gin.H{"message": "Transaction created", "transaction": txn, "wallet": wallet})
	}
}

// ListTransactionsHandler returns the authenticated user's transactions across
// all wallets, with optional filtering by wallet, type or date range
func ListTransactionsHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size if valid
			}
		}
		filters := service.TransactionFilters{
			Type: c.Query("type"), // income or expense
			From: c.Query("from"), // Inclusive start date
			To:   c.Query("to"),   // Inclusive end date
		}
		if w := c.Query("wallet_id"); w != "" {
			if v, err := strconv.ParseUint(w, 10, 32); err == nil {
				filters.WalletID = uint(v)
			}
		}
		// Cache key covers every filter so distinct views never collide
		filterKey := strings.Join([]string{
			"w=" + c.DefaultQuery("wallet_id", ""),
			"t=" + filters.Type,
			"f=" + filters.From,
			"o=" + filters.To,
		}, ":")
		cacheKey := txHistoryPrefix(userID) + ":" + filterKey +
			":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
		ctx := context.Background()
		var cached struct {
			Transactions []domain.Transaction `json:"transactions"` // List of transactions
			Page         int                  `json:"page"`         // Current page
			PageSize     int                  `json:"page_size"`    // Page size
			Total        int64                `json:"total"`        // Total transactions
			TotalPages   int                  `json:"total_pages"`  // Total pages
		}
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"transactions": cached.Transactions,
				"page":         cached.Page,
				"page_size":    cached.PageSize,
				"total":        cached.Total,
				"total_pages":  cached.TotalPages,
				"cached":       true,
			})
			return
		}
		txns, total, err := svc.ListTransactions(userID, filters, page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize
		resp := gin.H{
			"transactions": txns,       // List of transactions
			"page":         page,       // Current page
			"page_size":    pageSize,   // Page size
			"total":        total,      // Total transactions
			"total_pages":  totalPages, // Total pages
			"cached":       false,      // Not from cache
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp)
	}
}

// ListWalletTransactionsHandler returns recent transactions of one wallet,
// date descending by default
func ListWalletTransactionsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		walletID, ok := idParam(c, "id")
		if !ok {
			return
		}
		limit := 0
		if l := c.Query("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil {
				limit = v
			}
		}
		txns, err := svc.ListWalletTransactions(userID, walletID, limit, c.Query("order"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": txns})
	}
}

// DeleteTransactionHandler removes one transaction and reverses its balance
// effect on the owning wallet
func DeleteTransactionHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		txnID, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteTransaction(userID, txnID); err != nil {
			respondError(c, err)
			return
		}
		invalidateUserCaches(rdb, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
	}
}

// BulkDeleteRequest carries the payload of a bulk transaction delete
type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required"` // Transaction ids to delete
}

// BulkDeleteTransactionsHandler removes a batch of transactions; one invalid
// id rejects the whole batch
func BulkDeleteTransactionsHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUserID(c)
		if !ok {
			return
		}
		var req BulkDeleteRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := svc.DeleteTransactions(userID, req.IDs); err != nil {
			respondError(c, err)
			return
		}
		invalidateUserCaches(rdb, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Transactions deleted"})
	}
}

// invalidateUserCaches drops wallet and history caches after a delete that may
// touch several wallets; the wallet-detail key is left to expire via TTL
func invalidateUserCaches(rdb *redis.Client, userID uint) {
	ctx := context.Background()
	_ = utils.DeleteCache(ctx, rdb, walletListCacheKey(userID))
	utils.InvalidatePages(ctx, rdb, txHistoryDefaultPrefix(userID))
}
