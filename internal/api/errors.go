package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/cartcore/internal/domain"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondDomainError maps engine failures to HTTP. Unknown errors are logged and
// reported as 500 without detail.
func respondDomainError(c *gin.Context, logger *zap.Logger, err error) {
	var stockErr *domain.StockError
	if errors.As(err, &stockErr) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":     stockErr.Err.Error(),
			"stock":     stockErr.Stock,
			"requested": stockErr.Requested,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrActorRequired):
		respondError(c, http.StatusUnauthorized, domain.ErrActorRequired.Error())
	case errors.Is(err, domain.ErrStoreNotFound):
		respondError(c, http.StatusNotFound, domain.ErrStoreNotFound.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(c, http.StatusNotFound, domain.ErrProductNotFound.Error())
	case errors.Is(err, domain.ErrItemNotFound):
		respondError(c, http.StatusNotFound, domain.ErrItemNotFound.Error())
	case errors.Is(err, domain.ErrCartNotFound):
		respondError(c, http.StatusNotFound, domain.ErrCartNotFound.Error())
	case errors.Is(err, domain.ErrVariantRequired):
		respondError(c, http.StatusBadRequest, domain.ErrVariantRequired.Error())
	case errors.Is(err, domain.ErrVariantInvalid):
		respondError(c, http.StatusBadRequest, domain.ErrVariantInvalid.Error())
	case errors.Is(err, domain.ErrVariantNotApplicable):
		respondError(c, http.StatusBadRequest, domain.ErrVariantNotApplicable.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		respondError(c, http.StatusBadRequest, domain.ErrInvalidQuantity.Error())
	case errors.Is(err, domain.ErrCartEmpty):
		respondError(c, http.StatusBadRequest, domain.ErrCartEmpty.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		respondError(c, http.StatusConflict, domain.ErrInvalidTransition.Error())
	case errors.Is(err, domain.ErrConcurrencyConflict):
		c.Header("Retry-After", "1")
		respondError(c, http.StatusConflict, domain.ErrConcurrencyConflict.Error())
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}
