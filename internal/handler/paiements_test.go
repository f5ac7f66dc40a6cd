package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"partage/internal/dto"
	"partage/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

type stubPaiementService struct {
	calls    int
	lastUser uuid.UUID
	lastPay  uuid.UUID
	resp     *dto.FinaliserPaiementResponse
	err      error
}

func (s *stubPaiementService) Finaliser(ctx context.Context, userID uuid.UUID, paymentID uuid.UUID) (*dto.FinaliserPaiementResponse, error) {
	s.calls++
	s.lastUser = userID
	s.lastPay = paymentID
	return s.resp, s.err
}

func paiementsRouter(svc *stubPaiementService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPaiementsHandler(svc)
	r.POST("/v1/paiements/finaliser", middleware.JWTAuth(testSecret), h.Finaliser)
	return r
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &middleware.JWTClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func postFinaliser(r *gin.Engine, token string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/v1/paiements/finaliser", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFinaliser_MissingBearerIs401WithNoSideEffects(t *testing.T) {
	svc := &stubPaiementService{}
	r := paiementsRouter(svc)

	w := postFinaliser(r, "", gin.H{"paymentId": uuid.NewString()})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, svc.calls)
}

func TestFinaliser_InvalidTokenIs401(t *testing.T) {
	svc := &stubPaiementService{}
	r := paiementsRouter(svc)

	w := postFinaliser(r, "not-a-jwt", gin.H{"paymentId": uuid.NewString()})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, svc.calls)
}

func TestFinaliser_NonUUIDPaymentIdIs400WithoutInvokingProcedure(t *testing.T) {
	svc := &stubPaiementService{}
	r := paiementsRouter(svc)
	token := signToken(t, uuid.NewString())

	for _, bad := range []string{"abc", "", "123e4567-e89b-12d3-a456", "{123e4567-e89b-12d3-a456-426614174000}"} {
		w := postFinaliser(r, token, gin.H{"paymentId": bad})
		assert.Equal(t, http.StatusBadRequest, w.Code, "paymentId=%q", bad)
	}
	assert.Zero(t, svc.calls)
}

func TestFinaliser_SuccessCarriesFlushReport(t *testing.T) {
	svc := &stubPaiementService{
		resp: &dto.FinaliserPaiementResponse{
			Ok:    true,
			Data:  json.RawMessage(`{"status":"finalise"}`),
			Email: dto.EmailFlushResult{Ok: true, Result: json.RawMessage(`{"processed":2}`)},
		},
	}
	r := paiementsRouter(svc)
	userID := uuid.New()
	payID := uuid.New()

	w := postFinaliser(r, signToken(t, userID.String()), gin.H{"paymentId": payID.String()})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, userID, svc.lastUser)
	assert.Equal(t, payID, svc.lastPay)

	var resp dto.FinaliserPaiementResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.True(t, resp.Email.Ok)
}

func TestFinaliser_FlushFailureDoesNotChangePrimaryStatus(t *testing.T) {
	svc := &stubPaiementService{
		resp: &dto.FinaliserPaiementResponse{
			Ok:    true,
			Email: dto.EmailFlushResult{Ok: false, Error: "dispatch: endpoint unreachable"},
		},
	}
	r := paiementsRouter(svc)

	w := postFinaliser(r, signToken(t, uuid.NewString()), gin.H{"paymentId": uuid.NewString()})

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.FinaliserPaiementResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.False(t, resp.Email.Ok)
	assert.Contains(t, resp.Email.Error, "unreachable")
}

func TestFinaliser_ProcedureErrorIs500(t *testing.T) {
	svc := &stubPaiementService{
		resp: &dto.FinaliserPaiementResponse{Ok: false, Email: dto.EmailFlushResult{Ok: true}},
		err:  assert.AnError,
	}
	r := paiementsRouter(svc)

	w := postFinaliser(r, signToken(t, uuid.NewString()), gin.H{"paymentId": uuid.NewString()})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp dto.FinaliserPaiementResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Ok)
	assert.NotEmpty(t, resp.Error)
}
