// Package accountdelivery manages delivery layer of ledger accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/petrbank/ledger-core/internal/accountservice"
	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/errorspkg"
	"github.com/petrbank/ledger-core/pkg/jsonresponse"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Open(ctx context.Context, number, openingBalance, currency string) (domain.Account, error)
	Get(ctx context.Context, number string) (accountservice.AccountWithAvailable, error)
	Statement(ctx context.Context, number string, limit, offset int32) ([]domain.AuditEntry, error)
	SetStatus(ctx context.Context, number string, status domain.AccountStatus) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type openRequest struct {
	Number         string `json:"number"`
	OpeningBalance string `json:"opening_balance" binding:"required"`
	Currency       string `json:"currency" binding:"required,currency"`
}

// Open handles http request to open a new ledger account.
func (h *Handler) Open(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req openRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	account, err := h.service.Open(ctx, req.Number, req.OpeningBalance, req.Currency)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrAccountAlreadyExists:
			gctx.JSON(http.StatusConflict, jsonresponse.Error(err))

			return
		case domain.ErrInvalidAmount, domain.ErrCurrencyMismatch:
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": account})
}

// Get handles http request to read an account with its available balance.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	account, err := h.service.Get(ctx, gctx.Param("number"))
	if err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": account})
}

type statementRequest struct {
	Limit  int32 `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int32 `form:"offset,default=0" binding:"min=0"`
}

// Statement handles http request to list an account's audit entries.
func (h *Handler) Statement(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req statementRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	entries, err := h.service.Statement(ctx, gctx.Param("number"), req.Limit, req.Offset)
	if err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": entries})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE FROZEN BLOCKED CLOSED DORMANT"`
}

// SetStatus handles http request to change an account's lifecycle status.
func (h *Handler) SetStatus(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req setStatusRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	account, err := h.service.SetStatus(ctx, gctx.Param("number"), domain.AccountStatus(req.Status))
	if err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, gin.H{"data": account})
}
