package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/application/usecase/factor"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
)

// FactorController exposes the emission factor catalogue.
type FactorController struct {
	listUseCase   *factor.ListFactorsUseCase
	createUseCase *factor.CreateFactorUseCase
}

// NewFactorController creates a new factor controller instance.
func NewFactorController(listUseCase *factor.ListFactorsUseCase, createUseCase *factor.CreateFactorUseCase) *FactorController {
	return &FactorController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
	}
}

// List handles GET /factors requests.
func (c *FactorController) List(ctx *gin.Context) {
	factors, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToFactorListResponse(factors))
}

// Create handles POST /factors requests.
func (c *FactorController) Create(ctx *gin.Context) {
	var req dto.CreateFactorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidFactor))
		return
	}

	f, err := c.createUseCase.Execute(ctx.Request.Context(), factor.CreateFactorInput{
		Name:        req.Name,
		Category:    req.Category,
		Scope:       req.Scope,
		FactorValue: req.FactorValue,
		Unit:        req.Unit,
		CO2eUnit:    req.CO2eUnit,
		Source:      req.Source,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToFactorResponse(f))
}
