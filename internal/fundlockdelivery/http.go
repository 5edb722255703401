// Package fundlockdelivery manages delivery layer of fund locks.
package fundlockdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/errorspkg"
	"github.com/petrbank/ledger-core/pkg/jsonresponse"
)

// Service provides service layer interface needed by fund lock delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package fundlockdelivery
type Service interface {
	Lock(ctx context.Context, arg domain.LockFundsParams) (domain.LockFundsResult, error)
	Unlock(ctx context.Context, lockID, reason string) (domain.FundLock, error)
	UnlockByReference(ctx context.Context, referenceID, reason string) (domain.FundLock, error)
	Get(ctx context.Context, lockID string) (domain.FundLock, error)
}

// Handler facilitates fund lock delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns fund lock handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type lockRequest struct {
	AccountNumber string `json:"account_number" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	LockType      string `json:"lock_type" binding:"required"`
	ReferenceID   string `json:"reference_id" binding:"required"`
	Description   string `json:"description"`
}

// Lock handles http request to reserve funds on an account.
func (h *Handler) Lock(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req lockRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	result, err := h.service.Lock(ctx, domain.LockFundsParams{
		AccountNumber: req.AccountNumber,
		Amount:        req.Amount,
		LockType:      req.LockType,
		ReferenceID:   req.ReferenceID,
		Description:   req.Description,
	})
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": result})
}

type unlockRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Unlock handles http request to release a fund lock by id.
func (h *Handler) Unlock(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req unlockRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	lock, err := h.service.Unlock(ctx, gctx.Param("id"), req.Reason)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": lock})
}

type unlockByReferenceRequest struct {
	ReferenceID string `json:"reference_id" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

// UnlockByReference handles http request to release the active lock
// held under an external reference.
func (h *Handler) UnlockByReference(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req unlockByReferenceRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	lock, err := h.service.UnlockByReference(ctx, req.ReferenceID, req.Reason)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": lock})
}

// Get handles http request to read a fund lock.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	lock, err := h.service.Get(ctx, gctx.Param("id"))
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": lock})
}

func writeError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrAccountNotFound, domain.ErrLockNotFound:
		gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))

		return
	case
		domain.ErrInvalidAmount,
		domain.ErrNegativeAmount,
		domain.ErrInsufficientFunds:
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	case
		domain.ErrLockNotActive,
		domain.ErrAccountNotEligible:
		gctx.JSON(http.StatusConflict, jsonresponse.Error(err))

		return
	case domain.ErrConcurrencyConflict:
		gctx.JSON(http.StatusServiceUnavailable, jsonresponse.Error(err))

		return
	}

	gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
}
