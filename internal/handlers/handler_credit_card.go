package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cardHandler handles HTTP requests related to credit cards and their
// invoices.
type cardHandler struct {
	cardService portssvc.CardSvcFacade
}

func newCardHandler(cs portssvc.CardSvcFacade) *cardHandler {
	return &cardHandler{cardService: cs}
}

// registerCardRoutes registers routes related to credit cards.
func registerCardRoutes(rg *gin.RouterGroup, cardService portssvc.CardSvcFacade) {
	h := newCardHandler(cardService)

	cards := rg.Group("/cards")
	{
		cards.POST("", h.createCard)
		cards.GET("", h.listCards)
		cards.GET("/:id", h.getCard)
		cards.PUT("/:id", h.updateCard)
		cards.DELETE("/:id", h.deactivateCard)
		cards.POST("/:id/activate", h.activateCard)

		cards.GET("/:id/invoices", h.listInvoices)
		cards.POST("/:id/invoices/close", h.closeInvoice)
		cards.PATCH("/:id/invoices/:invoiceID/paid", h.setInvoicePaid)
	}
}

// createCard godoc
// @Summary Create a credit card
// @Description Registers a card with its closing and due days. The credit limit is optional.
// @Tags cards
// @Accept json
// @Produce json
// @Param card body dto.CreateCardRequest true "Card details"
// @Success 201 {object} dto.CardResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /cards [post]
func (h *cardHandler) createCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create card")
		return
	}

	logger.Info("Card created", slog.String("card_id", card.CardID))
	c.JSON(http.StatusCreated, dto.ToCardResponse(card))
}

// listCards godoc
// @Summary List cards with the current invoice preview
// @Description Lists the user's cards. Each entry carries the current invoice amount (the closed invoice total when one exists, the running sum of uninvoiced charges otherwise) and the limit usage percentage.
// @Tags cards
// @Produce json
// @Success 200 {array} dto.CardInvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /cards [get]
func (h *cardHandler) listCards(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cards, err := h.cardService.ListCardsWithInvoices(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list cards")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCardInvoiceResponse(cards))
}

// getCard godoc
// @Summary Get a card by ID
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} dto.CardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [get]
func (h *cardHandler) getCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	card, err := h.cardService.GetCardByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve card")
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

// updateCard godoc
// @Summary Update a card
// @Description Updates name, limit and billing days. An empty credit limit string clears the limit.
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param card body dto.UpdateCardRequest true "Fields to update"
// @Success 200 {object} dto.CardResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [put]
func (h *cardHandler) updateCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update card")
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

// deactivateCard godoc
// @Summary Deactivate a card
// @Tags cards
// @Param id path string true "Card ID"
// @Success 204 "Card deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [delete]
func (h *cardHandler) deactivateCard(c *gin.Context) {
	h.setActive(c, false, "Failed to deactivate card")
}

// activateCard godoc
// @Summary Reactivate a card
// @Tags cards
// @Param id path string true "Card ID"
// @Success 204 "Card activated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id}/activate [post]
func (h *cardHandler) activateCard(c *gin.Context) {
	h.setActive(c, true, "Failed to activate card")
}

func (h *cardHandler) setActive(c *gin.Context, isActive bool, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.cardService.SetCardActive(c.Request.Context(), userID, c.Param("id"), isActive); err != nil {
		respondServiceError(c, logger, err, fallback)
		return
	}
	c.Status(http.StatusNoContent)
}

// listInvoices godoc
// @Summary List a card's closed invoices
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Security BearerAuth
// @Router /cards/{id}/invoices [get]
func (h *cardHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoices, err := h.cardService.ListInvoices(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// closeInvoice godoc
// @Summary Close a card invoice
// @Description Freezes one calendar month: sums the card's uninvoiced charges dated in the month, records the invoice and stamps the charges with its ID. Closing the same month twice fails.
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param period body dto.CloseInvoiceRequest true "Invoice year and month"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 409 {object} map[string]string "Invoice already closed"
// @Security BearerAuth
// @Router /cards/{id}/invoices/close [post]
func (h *cardHandler) closeInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CloseInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.cardService.CloseInvoice(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to close invoice")
		return
	}

	logger.Info("Invoice closed", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// setInvoicePaid godoc
// @Summary Toggle an invoice's paid flag
// @Tags cards
// @Accept json
// @Param id path string true "Card ID"
// @Param invoiceID path string true "Invoice ID"
// @Param paid body dto.SetInvoicePaidRequest true "Paid flag"
// @Success 204 "Invoice updated"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /cards/{id}/invoices/{invoiceID}/paid [patch]
func (h *cardHandler) setInvoicePaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SetInvoicePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetInvoicePaid", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.cardService.SetInvoicePaid(c.Request.Context(), userID, c.Param("id"), c.Param("invoiceID"), *req.IsPaid)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update invoice")
		return
	}
	c.Status(http.StatusNoContent)
}
