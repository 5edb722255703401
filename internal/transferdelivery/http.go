// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

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

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Initiate(ctx context.Context, arg domain.InitiateTransferParams) (domain.TransferReceipt, error)
	Confirm(ctx context.Context, transferID, code string) (domain.TransferConfirmation, error)
	Cancel(ctx context.Context, transferID string) (domain.TransferConfirmation, error)
	Get(ctx context.Context, transferID string) (domain.Transfer, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type initiateRequest struct {
	SourceAccount      string `json:"source_account" binding:"required"`
	DestinationAccount string `json:"destination_account" binding:"required"`
	Amount             string `json:"amount" binding:"required"`
	Contact            string `json:"contact" binding:"required"`
	Description        string `json:"description"`
}

// Initiate handles http request to start a transfer and issue the
// confirmation code.
func (h *Handler) Initiate(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req initiateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	receipt, err := h.service.Initiate(ctx, domain.InitiateTransferParams{
		SourceAccount:      req.SourceAccount,
		DestinationAccount: req.DestinationAccount,
		Amount:             req.Amount,
		Contact:            req.Contact,
		Description:        req.Description,
		CreatedBy:          middleware.Actor(gctx),
	})
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": receipt})
}

type confirmRequest struct {
	Code string `json:"code" binding:"required"`
}

// Confirm handles http request to execute a pending transfer with the
// confirmation code.
func (h *Handler) Confirm(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req confirmRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	confirmation, err := h.service.Confirm(ctx, gctx.Param("id"), req.Code)
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": confirmation})
}

// Cancel handles http request to cancel a pending transfer.
func (h *Handler) Cancel(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	confirmation, err := h.service.Cancel(ctx, gctx.Param("id"))
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": confirmation})
}

// Get handles http request to read a transfer.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	transfer, err := h.service.Get(ctx, gctx.Param("id"))
	if err != nil {
		l.Info().Err(err).Send()
		writeError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": transfer})
}

func writeError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrTransferNotFound, domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))

		return
	case
		domain.ErrInvalidAmount,
		domain.ErrNegativeAmount,
		domain.ErrSameAccount,
		domain.ErrCurrencyMismatch,
		domain.ErrInsufficientFunds:
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	case
		domain.ErrSecondFactorInvalid,
		domain.ErrSecondFactorExpired:
		gctx.JSON(http.StatusUnauthorized, jsonresponse.Error(err))

		return
	case
		domain.ErrTransferInvalidState,
		domain.ErrAccountNotEligible:
		gctx.JSON(http.StatusConflict, jsonresponse.Error(err))

		return
	case domain.ErrExternalService:
		gctx.JSON(http.StatusBadGateway, jsonresponse.Error(err))

		return
	case domain.ErrConcurrencyConflict:
		gctx.JSON(http.StatusServiceUnavailable, jsonresponse.Error(err))

		return
	}

	gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
}
