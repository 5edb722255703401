// Package depositdelivery manages delivery layer of deposits.
package depositdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/errorspkg"
	"github.com/petrbank/ledger-core/pkg/jsonresponse"
)

// Service provides service layer interface needed by deposit delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package depositdelivery
type Service interface {
	Open(ctx context.Context, arg domain.OpenDepositParams) (domain.Deposit, error)
	Close(ctx context.Context, depositID string) (domain.Deposit, error)
	Get(ctx context.Context, depositID string) (domain.Deposit, error)
}

// Handler facilitates deposit delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns deposit handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type openRequest struct {
	AccountNumber string `json:"account_number" binding:"required"`
	Principal     string `json:"principal" binding:"required"`
	TermMonths    int32  `json:"term_months" binding:"required,min=1"`
	RatePercent   string `json:"rate_percent" binding:"required"`
}

// Open handles http request to open a deposit backed by locked funds.
func (h *Handler) Open(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req openRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	deposit, err := h.service.Open(ctx, domain.OpenDepositParams{
		AccountNumber: req.AccountNumber,
		Principal:     req.Principal,
		TermMonths:    req.TermMonths,
		RatePercent:   req.RatePercent,
	})
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": deposit})
}

// Close handles http request to close a deposit and release its funds.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	deposit, err := h.service.Close(ctx, gctx.Param("id"))
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": deposit})
}

// Get handles http request to read a deposit.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	deposit, err := h.service.Get(ctx, gctx.Param("id"))
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": deposit})
}

func writeError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrDepositNotFound, domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))

		return
	case
		domain.ErrInvalidAmount,
		domain.ErrNegativeAmount,
		domain.ErrInsufficientFunds:
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	case
		domain.ErrDepositNotActive,
		domain.ErrAccountNotEligible:
		gctx.JSON(http.StatusConflict, jsonresponse.Error(err))

		return
	case domain.ErrConcurrencyConflict:
		gctx.JSON(http.StatusServiceUnavailable, jsonresponse.Error(err))

		return
	}

	gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
}
