package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gjovanov/tickytack/internal/core/domain"
	portssvc "github.com/gjovanov/tickytack/internal/core/ports/services"
	"github.com/gjovanov/tickytack/internal/dto"
	"github.com/gjovanov/tickytack/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalEntryHandler handles draft creation and the post/void transitions.
type journalEntryHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newJournalEntryHandler(ls portssvc.LedgerSvcFacade) *journalEntryHandler {
	return &journalEntryHandler{ledgerService: ls}
}

// RegisterJournalEntryRoutes registers journal entry routes on an organization-scoped group.
// mutating runs before handlers that change state.
func RegisterJournalEntryRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, mutating ...gin.HandlerFunc) {
	h := newJournalEntryHandler(ledgerService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", withMiddleware(mutating, h.createEntry)...)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.POST("/:entry_id/post", withMiddleware(mutating, h.postEntry)...)
		entries.POST("/:entry_id/void", withMiddleware(mutating, h.voidEntry)...)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Stores a new draft and assigns the next JE-#### number of the organization. Balance is checked on posting.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   entry body dto.CreateJournalEntryRequest true "Draft entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /orgs/{org_id}/journal-entries [post]
func (h *journalEntryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("org_id", orgID), slog.String("user_id", userID))
	logger.Info("Received request to create journal entry", slog.Int("line_count", len(req.Lines)))

	entry, err := h.ledgerService.CreateDraftEntry(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries by status
// @Description Lists the organization's entries in one status, newest first
// @Tags journal-entries
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   status query string false "draft, posted or voided" default(posted)
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /orgs/{org_id}/journal-entries [get]
func (h *journalEntryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	status := domain.EntryStatus(c.DefaultQuery("status", string(domain.Posted)))
	logger = logger.With(slog.String("org_id", orgID), slog.String("status", string(status)))

	entries, err := h.ledgerService.ListEntriesByStatus(c.Request.Context(), orgID, status)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines and totals
// @Tags journal-entries
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /orgs/{org_id}/journal-entries/{entry_id} [get]
func (h *journalEntryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	entryID := c.Param("entry_id")
	logger = logger.With(slog.String("org_id", orgID), slog.String("entry_id", entryID))

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), orgID, entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Description Checks the entry balances within 0.01, applies it to account balances and marks it posted, all in one transaction
// @Tags journal-entries
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry or account not found"
// @Failure 409 {object} map[string]string "Entry already posted or voided"
// @Failure 422 {object} map[string]string "Entry is not balanced"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /orgs/{org_id}/journal-entries/{entry_id}/post [post]
func (h *journalEntryHandler) postEntry(c *gin.Context) {
	h.transition(c, "post", h.ledgerService.PostEntry)
}

// voidEntry godoc
// @Summary Void a posted journal entry
// @Description Reverses the entry's effect on account balances and marks it voided, all in one transaction
// @Tags journal-entries
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is a draft or already voided"
// @Failure 500 {object} map[string]string "Failed to void journal entry"
// @Security BearerAuth
// @Router /orgs/{org_id}/journal-entries/{entry_id}/void [post]
func (h *journalEntryHandler) voidEntry(c *gin.Context) {
	h.transition(c, "void", h.ledgerService.VoidEntry)
}

type transitionFunc func(ctx context.Context, orgID, entryID, userID string) (*domain.JournalEntry, error)

func (h *journalEntryHandler) transition(c *gin.Context, action string, fn transitionFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	entryID := c.Param("entry_id")

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	logger = logger.With(
		slog.String("org_id", orgID),
		slog.String("entry_id", entryID),
		slog.String("user_id", userID),
		slog.String("action", action),
	)
	logger.Info("Received journal entry transition request")

	entry, err := fn(c.Request.Context(), orgID, entryID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to "+action+" journal entry")
		return
	}

	logger.Info("Journal entry transitioned", slog.String("status", string(entry.Status)))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
