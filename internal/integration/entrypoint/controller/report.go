package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/report"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
)

// ReportController handles report generation and retrieval.
type ReportController struct {
	generateUseCase *report.GenerateReportUseCase
	listUseCase     *report.ListReportsUseCase
	getUseCase      *report.GetReportUseCase
	userRepo        adapter.UserRepository
	emailService    adapter.EmailService
}

// NewReportController creates a new report controller instance.
// emailService may be nil, in which case no notification is queued.
func NewReportController(
	generateUseCase *report.GenerateReportUseCase,
	listUseCase *report.ListReportsUseCase,
	getUseCase *report.GetReportUseCase,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
) *ReportController {
	return &ReportController{
		generateUseCase: generateUseCase,
		listUseCase:     listUseCase,
		getUseCase:      getUseCase,
		userRepo:        userRepo,
		emailService:    emailService,
	}
}

// Create handles POST /reports requests.
func (c *ReportController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidInput))
		return
	}

	start, _ := time.Parse(valueobject.DateLayout, req.StartDate)
	end, _ := time.Parse(valueobject.DateLayout, req.EndDate)

	rep, err := c.generateUseCase.Execute(ctx.Request.Context(), report.GenerateReportInput{
		UserID:     userID,
		ReportName: req.ReportName,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	c.notifyReportReady(ctx.Request.Context(), userID, rep)

	ctx.JSON(http.StatusCreated, dto.ToReportResponse(rep))
}

// List handles GET /reports requests.
func (c *ReportController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	reports, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportListResponse(reports))
}

// Get handles GET /reports/:id requests. Reports of other users are reported as not found.
func (c *ReportController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	reportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondError(ctx, domainerror.NewInvalidInputError("id", "must be a valid UUID"))
		return
	}

	rep, err := c.getUseCase.Execute(ctx.Request.Context(), userID, reportID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportResponse(rep))
}

// notifyReportReady queues the report email. Failures are logged only.
func (c *ReportController) notifyReportReady(ctx context.Context, userID uuid.UUID, rep *entity.Report) {
	if c.emailService == nil || c.userRepo == nil {
		return
	}

	logger := slog.With("report_id", rep.ID, "user_id", userID)

	user, err := c.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Warn("Skipping report notification, user lookup failed", "error", err)
		return
	}

	err = c.emailService.QueueReportReadyEmail(ctx, adapter.QueueReportReadyInput{
		UserEmail:  user.Email,
		UserName:   user.Username,
		ReportID:   rep.ID.String(),
		ReportName: rep.ReportName,
		StartDate:  rep.StartDate.Format(valueobject.DateLayout),
		EndDate:    rep.EndDate.Format(valueobject.DateLayout),
		TotalKg:    rep.TotalAllScopesKg,
		Scope1Kg:   rep.TotalScope1Kg,
		Scope2Kg:   rep.TotalScope2Kg,
		Scope3Kg:   rep.TotalScope3Kg,
	})
	if err != nil {
		logger.Warn("Failed to queue report notification", "error", err)
	}
}
