package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/usecase/emission"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
)

// InputController handles activity submissions and their history.
type InputController struct {
	calculateUseCase *emission.CalculateSingleInputUseCase
	listUseCase      *emission.ListInputsUseCase
}

// NewInputController creates a new input controller instance.
func NewInputController(calculateUseCase *emission.CalculateSingleInputUseCase, listUseCase *emission.ListInputsUseCase) *InputController {
	return &InputController{
		calculateUseCase: calculateUseCase,
		listUseCase:      listUseCase,
	}
}

// Create handles POST /inputs requests.
func (c *InputController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateInputRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidInput))
		return
	}

	input, err := calculationInput(userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	record, err := c.calculateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInputResponse(record))
}

// List handles GET /inputs requests.
func (c *InputController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var query dto.ListInputsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidInput))
		return
	}

	out, err := c.listUseCase.Execute(ctx.Request.Context(), emission.ListInputsInput{
		UserID:  userID,
		Page:    query.Page,
		PerPage: query.PerPage,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInputListResponse(out))
}

func calculationInput(userID uuid.UUID, req dto.CreateInputRequest) (emission.CalculateSingleInputInput, error) {
	factorID, err := uuid.Parse(req.FactorID)
	if err != nil {
		return emission.CalculateSingleInputInput{}, domainerror.NewInvalidInputError("factor_id", "must be a UUID")
	}
	periodStart, err := time.Parse(valueobject.DateLayout, req.DatePeriodStart)
	if err != nil {
		return emission.CalculateSingleInputInput{}, domainerror.NewInvalidInputError("date_period_start", "must be a date formatted YYYY-MM-DD")
	}

	return emission.CalculateSingleInputInput{
		UserID:          userID,
		FactorID:        factorID,
		ActivityValue:   string(req.ActivityValue),
		ActivityUnit:    req.ActivityUnit,
		DatePeriodStart: periodStart,
	}, nil
}
