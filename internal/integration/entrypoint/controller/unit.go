package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
)

// UnitController exposes the conversion engine for checking unit strings.
type UnitController struct {
	converter adapter.UnitConverter
}

// NewUnitController creates a new unit controller instance.
func NewUnitController(converter adapter.UnitConverter) *UnitController {
	return &UnitController{converter: converter}
}

// Convert handles GET /units/convert requests.
func (c *UnitController) Convert(ctx *gin.Context) {
	var query dto.ConvertQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidInput))
		return
	}

	converted, err := c.converter.Convert(*query.Value, query.From, query.To)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ConvertResponse{
		Value:     *query.Value,
		From:      query.From,
		To:        query.To,
		Converted: converted,
	})
}
