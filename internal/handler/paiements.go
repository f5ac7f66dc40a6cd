package handler

import (
	"net/http"
	"regexp"

	"partage/internal/apierror"
	"partage/internal/dto"
	"partage/internal/middleware"
	"partage/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uuidPattern mirrors the canonical 8-4-4-4-12 textual form; the looser
// forms uuid.Parse tolerates (braces, urn prefix) are rejected on purpose.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type PaiementsHandler struct{ svc service.PaiementService }

func NewPaiementsHandler(svc service.PaiementService) *PaiementsHandler {
	return &PaiementsHandler{svc: svc}
}

// Finaliser godoc
// @Summary      Finaliser une simulation de paiement
// @Description  Exécute la finalisation côté base (périmètre de l'utilisateur authentifié) puis déclenche l'envoi des emails en attente.
// @Tags         paiements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FinaliserPaiementRequest true "Identifiant du paiement"
// @Success      200 {object} dto.FinaliserPaiementResponse
// @Failure      400 {object} apierror.APIError
// @Failure      401 {object} apierror.APIError
// @Failure      500 {object} dto.FinaliserPaiementResponse
// @Router       /v1/paiements/finaliser [post]
func (h *PaiementsHandler) Finaliser(c *gin.Context) {
	var req dto.FinaliserPaiementRequest
	if err := c.ShouldBindJSON(&req); err != nil || !uuidPattern.MatchString(req.PaymentID) {
		c.JSON(http.StatusBadRequest, apierror.New("paymentId doit être un UUID valide"))
		return
	}
	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("paymentId doit être un UUID valide"))
		return
	}

	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.SubjectID())
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Jeton invalide ou expiré"))
		return
	}

	resp, procErr := h.svc.Finaliser(c.Request.Context(), userID, paymentID)
	if procErr != nil {
		resp.Error = procErr.Error()
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
