package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"pos_system/internal/services"

	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	billService services.BillService
}

func NewBillHandler(billService services.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// GET /api/bills
func (h *BillHandler) GetBills(c *gin.Context) {
	bills, err := h.billService.GetAllBills()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bills"})
		return
	}
	c.JSON(http.StatusOK, bills)
}

// GET /api/bills/summary
func (h *BillHandler) GetBillSummary(c *gin.Context) {
	bills, err := h.billService.GetBillSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bill summary"})
		return
	}
	c.JSON(http.StatusOK, bills)
}

// POST /api/bills
func (h *BillHandler) CreateBill(c *gin.Context) {
	var input services.CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	bill, err := h.billService.CreateBill(input)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bill"})
		return
	}
	c.JSON(http.StatusCreated, bill)
}

// PATCH /api/bills/:id/complete
func (h *BillHandler) CompleteBill(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill id"})
		return
	}

	bill, err := h.billService.CompleteBill(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete bill"})
		return
	}
	c.JSON(http.StatusOK, bill)
}
