// Package balancedelivery manages delivery layer of balance operations.
package balancedelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/internal/middleware"
	"github.com/petrbank/ledger-core/pkg/errorspkg"
	"github.com/petrbank/ledger-core/pkg/jsonresponse"
)

// Service provides service layer interface needed by balance delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package balancedelivery
type Service interface {
	Debit(ctx context.Context, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error)
	Credit(ctx context.Context, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error)
	Hold(ctx context.Context, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error)
	ReleaseHold(ctx context.Context, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error)
}

// Handler facilitates balance delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns balance operations handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type request struct {
	Amount      string `json:"amount" binding:"required"`
	Reference   string `json:"reference" binding:"required"`
	Description string `json:"description"`
}

type response struct {
	Data domain.BalanceOperationResult `json:"data"`
}

// Debit handles http request to debit an account.
func (h *Handler) Debit(gctx *gin.Context) {
	h.handle(gctx, h.service.Debit)
}

// Credit handles http request to credit an account.
func (h *Handler) Credit(gctx *gin.Context) {
	h.handle(gctx, h.service.Credit)
}

// Hold handles http request to place a hold on an account.
func (h *Handler) Hold(gctx *gin.Context) {
	h.handle(gctx, h.service.Hold)
}

// ReleaseHold handles http request to release a hold on an account.
func (h *Handler) ReleaseHold(gctx *gin.Context) {
	h.handle(gctx, h.service.ReleaseHold)
}

type operation func(ctx context.Context, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error)

func (h *Handler) handle(gctx *gin.Context, op operation) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	arg := domain.BalanceOperationParams{
		AccountNumber: gctx.Param("number"),
		Amount:        req.Amount,
		Reference:     req.Reference,
		Actor:         middleware.Actor(gctx),
		Description:   req.Description,
	}

	result, err := op(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))

			return
		case
			domain.ErrInvalidAmount,
			domain.ErrNegativeAmount,
			domain.ErrMissingReference,
			domain.ErrInsufficientFunds:
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

			return
		case
			domain.ErrAccountNotEligible,
			domain.ErrDuplicateReference:
			gctx.JSON(http.StatusConflict, jsonresponse.Error(err))

			return
		case domain.ErrConcurrencyConflict:
			gctx.JSON(http.StatusServiceUnavailable, jsonresponse.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: result})
}
