package handler

import (
	"net/http"

	"partage/internal/apierror"
	"partage/internal/dto"
	"partage/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FacturesHandler struct{ repo repository.FactureRepository }

func NewFacturesHandler(repo repository.FactureRepository) *FacturesHandler {
	return &FacturesHandler{repo: repo}
}

// Obtenir godoc
// @Summary      Consulter une facture
// @Tags         factures
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la facture"
// @Success      200 {object} dto.FactureResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/factures/{id} [get]
func (h *FacturesHandler) Obtenir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Identifiant de facture invalide"))
		return
	}
	facture, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Facture introuvable"))
		return
	}
	c.JSON(http.StatusOK, dto.ToFactureResponse(facture))
}
