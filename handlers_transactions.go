package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finanalyst/models"
	"finanalyst/pkg/apperr"
	"finanalyst/pkg/csvexport"
	"finanalyst/pkg/query"
	"finanalyst/pkg/report"
)

// listTransactionsHandler returns a filtered, sorted page plus the
// pagination metadata computed from the total match count.
func (s *server) listTransactionsHandler(c *gin.Context) {
	params, err := query.ParseListParams(c.Request.URL.Query())
	if err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	var total int64
	if err := s.db.Model(&models.Transaction{}).Scopes(params.Scope).Count(&total).Error; err != nil {
		apperr.Abort(c, err)
		return
	}
	var rows []models.Transaction
	err = s.db.Model(&models.Transaction{}).Scopes(params.Scope).
		Order(params.OrderClause()).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if rows == nil {
		rows = []models.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"transactions": rows,
		"pagination":   query.NewPagination(params.Page, params.Limit, total),
	}})
}

// getTransactionHandler looks up one record. The owner is required
// explicitly; there is no fallback account.
func (s *server) getTransactionHandler(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		apperr.Abort(c, apperr.BadRequest("user_id is required"))
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	var tx models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error; err != nil {
		apperr.Abort(c, apperr.NotFound("Transaction not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tx})
}

func (s *server) createTransactionHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		apperr.Abort(c, apperr.Unauthorized("not authorized"))
		return
	}
	var req struct {
		Date     string          `json:"date" binding:"required"`
		Amount   decimal.Decimal `json:"amount"`
		Category string          `json:"category" binding:"required"`
		Status   string          `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	date, err := query.ParseDate(req.Date)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	tx := models.Transaction{
		UserID:   user.ID,
		Date:     date,
		Amount:   req.Amount,
		Category: req.Category,
		Status:   req.Status,
	}
	if err := s.db.Create(&tx).Error; err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": tx})
}

// updateTransactionHandler applies partial updates. Ownership is
// enforced by the owner+id compound filter, so a foreign record looks
// identical to a missing one.
func (s *server) updateTransactionHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		apperr.Abort(c, apperr.Unauthorized("not authorized"))
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	var req struct {
		Date     *string          `json:"date"`
		Amount   *decimal.Decimal `json:"amount"`
		Category *string          `json:"category"`
		Status   *string          `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	updates := map[string]interface{}{}
	if req.Date != nil {
		date, err := query.ParseDate(*req.Date)
		if err != nil {
			apperr.Abort(c, apperr.BadRequest(err.Error()))
			return
		}
		updates["date"] = date
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) > 0 {
		res := s.db.Model(&models.Transaction{}).
			Where("id = ? AND user_id = ?", id, user.ID).
			Updates(updates)
		if res.Error != nil {
			apperr.Abort(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			apperr.Abort(c, apperr.NotFound("Transaction not found"))
			return
		}
	}
	var tx models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", id, user.ID).First(&tx).Error; err != nil {
		apperr.Abort(c, apperr.NotFound("Transaction not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tx})
}

func (s *server) deleteTransactionHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		apperr.Abort(c, apperr.Unauthorized("not authorized"))
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	res := s.db.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Transaction{})
	if res.Error != nil {
		apperr.Abort(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		apperr.Abort(c, apperr.NotFound("Transaction not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Transaction deleted successfully"})
}

func (s *server) transactionStatsHandler(c *gin.Context) {
	userID := c.Query("user_id")
	stats, err := report.GetStats(s.db, userID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	revenue, err := report.GetCategoryBreakdown(s.db, userID, "Revenue")
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	expense, err := report.GetCategoryBreakdown(s.db, userID, "Expense")
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"stats":            stats,
		"revenueBreakdown": revenue,
		"expenseBreakdown": expense,
	}})
}

func (s *server) availableFiltersHandler(c *gin.Context) {
	userID := c.Query("user_id")
	categories, err := report.GetDistinct(s.db, userID, "category")
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	statuses, err := report.GetDistinct(s.db, userID, "status")
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"categories": categories,
		"statuses":   statuses,
	}})
}

func (s *server) dashboardHandler(c *gin.Context) {
	userID := c.Query("user_id")
	stats, err := report.GetStats(s.db, userID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	q := s.db.Model(&models.Transaction{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var recent []models.Transaction
	if err := q.Order("date DESC").Limit(5).Find(&recent).Error; err != nil {
		apperr.Abort(c, err)
		return
	}
	if recent == nil {
		recent = []models.Transaction{}
	}
	trends, err := report.GetMonthlyTrends(s.db, userID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"stats":              stats,
		"recentTransactions": recent,
		"monthlyTrends":      trends,
	}})
}

func (s *server) csvConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"availableColumns": csvexport.AvailableColumns(),
		"defaultConfig":    csvexport.DefaultConfig(),
	}})
}

// exportCSVHandler renders the filtered set as an attachment. Row order
// follows the store's retrieval order; no re-sort is applied.
func (s *server) exportCSVHandler(c *gin.Context) {
	var req struct {
		Config  csvexport.Config   `json:"config"`
		Filters query.ExportFilter `json:"filters"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	if len(req.Config.Columns) == 0 {
		apperr.Abort(c, apperr.BadRequest("at least one column is required"))
		return
	}
	q, err := req.Filters.Scope(s.db.Model(&models.Transaction{}))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	var rows []models.Transaction
	if err := q.Find(&rows).Error; err != nil {
		apperr.Abort(c, err)
		return
	}
	rows = csvexport.FilterBySearch(rows, req.Filters.SearchTerm)
	body := csvexport.Generate(rows, req.Config.Columns, req.Config.IncludeHeaders)

	c.Header("Content-Disposition", "attachment; filename=transactions.csv")
	c.Data(http.StatusOK, "text/csv", []byte(body))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("invalid transaction id")
	}
	return uint(id), nil
}
