package handler

import (
	"context"
	"errors"
	"net/http"

	"partage/internal/apierror"
	"partage/internal/dto"
	"partage/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DispatchProcessor drains the pending queue. Satisfied by worker.Dispatcher.
type DispatchProcessor interface {
	ProcessPending(ctx context.Context) (*dto.DispatchResponse, error)
}

type EmailsSortantsHandler struct {
	dispatcher DispatchProcessor
	svc        service.EmailSortantService
}

func NewEmailsSortantsHandler(dispatcher DispatchProcessor, svc service.EmailSortantService) *EmailsSortantsHandler {
	return &EmailsSortantsHandler{dispatcher: dispatcher, svc: svc}
}

// Process godoc
// @Summary      Traiter les emails sortants en attente
// @Description  Réclame un lot de jobs en attente et exécute le pipeline facture → PDF → stockage → email pour chacun.
// @Tags         emails-sortants
// @Accept       json
// @Produce      json
// @Param        body body dto.DispatchRequest true "Mode de traitement (scan_pending uniquement)"
// @Success      200  {object} dto.DispatchResponse
// @Failure      400  {object} apierror.APIError
// @Failure      401  {object} apierror.APIError
// @Router       /v1/emails-sortants/process [post]
func (h *EmailsSortantsHandler) Process(c *gin.Context) {
	var req dto.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Mode != "scan_pending" {
		c.JSON(http.StatusBadRequest, apierror.New("Mode non supporté: seul scan_pending est accepté"))
		return
	}

	resp, err := h.dispatcher.ProcessPending(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      Lister les emails sortants
// @Tags         emails-sortants
// @Produce      json
// @Param        statut query string false "pending | sent | failed"
// @Param        limit  query int    false "max 200"
// @Success      200 {object} dto.EmailSortantListResponse
// @Router       /v1/emails-sortants [get]
func (h *EmailsSortantsHandler) List(c *gin.Context) {
	var filter dto.EmailSortantFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Requeue godoc
// @Summary      Remettre en file un job échoué
// @Description  Repasse un job failed en pending pour un retraitement manuel.
// @Tags         emails-sortants
// @Produce      json
// @Param        id path string true "UUID du job"
// @Success      200 {object} map[string]bool
// @Failure      404 {object} apierror.APIError
// @Router       /v1/emails-sortants/{id}/requeue [post]
func (h *EmailsSortantsHandler) Requeue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Identifiant de job invalide"))
		return
	}
	if err := h.svc.Requeue(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotRequeueable) {
			c.JSON(http.StatusNotFound, apierror.New("Aucun job échoué avec cet identifiant"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
