package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ataliba/contratos-service/internal/fiscalization"
	"github.com/ataliba/contratos-service/internal/http/middleware"
	"github.com/ataliba/contratos-service/internal/identity"
	"github.com/ataliba/contratos-service/internal/model"
	"github.com/ataliba/contratos-service/internal/service"
)

type Handler struct {
	agreements *service.AgreementService
	reports    *service.ReportService
	log        zerolog.Logger
}

func NewHandler(agreements *service.AgreementService, reports *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{agreements: agreements, reports: reports, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/agreements", h.listAgreements)
	protected.GET("/agreements/:id", h.getAgreement)
	protected.POST("/agreements/export", h.exportRegister)
	protected.DELETE("/agreements/:id/amendments/:amendmentID", h.deleteAmendment)
	protected.GET("/agreements/:id/reports/:month", h.getReport)
	protected.PUT("/agreements/:id/reports/:month", h.saveReport)
	protected.POST("/agreements/:id/reports/:month/sign", h.signReport)
	protected.POST("/agreements/:id/reports/:month/pdf", h.exportReportPDF)
}

type renewalResponse struct {
	ElapsedMonths   int    `json:"elapsed_months"`
	LimitMonths     int    `json:"limit_months"`
	RemainingMonths int    `json:"remaining_months"`
	Message         string `json:"message"`
}

type amendmentResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Duration    int    `json:"duration,omitempty"`
	Unit        string `json:"unit,omitempty"`
	EntryDate   string `json:"entry_date"`
	StatusLabel string `json:"status_label"`
	Concluded   bool   `json:"concluded"`
}

type agreementResponse struct {
	ID               string              `json:"id"`
	Number           string              `json:"number"`
	Category         string              `json:"category"`
	Department       string              `json:"department"`
	StartDate        string              `json:"start_date"`
	EndDate          string              `json:"end_date"`
	Status           string              `json:"status"`
	StatusLabel      string              `json:"status_label"`
	StatusColor      string              `json:"status_color"`
	DaysRemaining    *int                `json:"days_remaining,omitempty"`
	ConfirmedEnd     string              `json:"confirmed_end"`
	ProjectedEnd     string              `json:"projected_end"`
	ExtensionPending bool                `json:"extension_pending"`
	IsEmergency      bool                `json:"is_emergency"`
	ManagerName      string              `json:"manager_name"`
	TechnicalName    string              `json:"technical_name"`
	AdminName        string              `json:"administrative_name,omitempty"`
	Renewal          renewalResponse     `json:"renewal"`
	Amendments       []amendmentResponse `json:"amendments,omitempty"`
}

func toAgreementResponse(view model.AgreementView) agreementResponse {
	amendments := make([]amendmentResponse, 0, len(view.Amendments))
	for _, a := range view.Amendments {
		resp := amendmentResponse{
			ID:          a.ID.String(),
			Kind:        string(a.Kind),
			EntryDate:   formatDate(a.EntryDate),
			StatusLabel: a.StatusLabel,
			Concluded:   a.Concluded(),
		}
		if a.Kind == model.AmendmentKindTermExtension {
			resp.Duration = a.Duration
			resp.Unit = string(a.Unit)
		}
		amendments = append(amendments, resp)
	}

	return agreementResponse{
		ID:               view.Agreement.ID.String(),
		Number:           view.Agreement.Number,
		Category:         view.Agreement.Category,
		Department:       view.Agreement.Department,
		StartDate:        formatDate(view.Agreement.StartDate),
		EndDate:          formatDate(view.Agreement.EndDate),
		Status:           string(view.Status),
		StatusLabel:      view.Status.Label(),
		StatusColor:      view.Status.Color(),
		DaysRemaining:    view.DaysRemaining,
		ConfirmedEnd:     formatDate(view.ConfirmedEnd),
		ProjectedEnd:     formatDate(view.ProjectedEnd),
		ExtensionPending: view.ExtensionPending,
		IsEmergency:      view.Agreement.IsEmergency,
		ManagerName:      view.Agreement.ManagerName,
		TechnicalName:    view.Agreement.TechnicalName,
		AdminName:        view.Agreement.AdministrativeName,
		Renewal: renewalResponse{
			ElapsedMonths:   view.Renewal.ElapsedMonths,
			LimitMonths:     view.Renewal.LimitMonths,
			RemainingMonths: view.Renewal.RemainingMonths,
			Message:         view.Renewal.Message,
		},
		Amendments: amendments,
	}
}

type signatureResponse struct {
	Name     string `json:"name,omitempty"`
	SignedAt string `json:"signed_at,omitempty"`
}

type reportResponse struct {
	AgreementID    string              `json:"agreement_id"`
	RefMonth       string              `json:"ref_month"`
	Template       string              `json:"template"`
	Status         string              `json:"status"`
	StatusLabel    string              `json:"status_label"`
	AdminRequired  bool                `json:"admin_required"`
	Content        model.ReportContent `json:"content"`
	Technical      signatureResponse   `json:"technical"`
	Administrative signatureResponse   `json:"administrative"`
	Manager        signatureResponse   `json:"manager"`
}

func toReportResponse(report model.FiscalizationReport) reportResponse {
	return reportResponse{
		AgreementID:    report.AgreementID.String(),
		RefMonth:       report.RefMonth,
		Template:       report.Template,
		Status:         string(report.Status),
		StatusLabel:    report.Status.Label(),
		AdminRequired:  report.AdminRequired,
		Content:        report.Content,
		Technical:      toSignatureResponse(report.Technical),
		Administrative: toSignatureResponse(report.Administrative),
		Manager:        toSignatureResponse(report.Manager),
	}
}

func toSignatureResponse(signature model.ReportSignature) signatureResponse {
	resp := signatureResponse{Name: signature.Name}
	if signature.SignedAt != nil {
		resp.SignedAt = signature.SignedAt.Format(time.RFC3339)
	}
	return resp
}

func (h *Handler) listAgreements(c *gin.Context) {
	views, err := h.agreements.ListViews(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]agreementResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, toAgreementResponse(view))
	}
	c.JSON(http.StatusOK, gin.H{"agreements": responses})
}

func (h *Handler) getAgreement(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agreement id"})
		return
	}

	view, err := h.agreements.BuildView(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAgreementResponse(*view))
}

func (h *Handler) deleteAmendment(c *gin.Context) {
	agreementID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agreement id"})
		return
	}
	amendmentID, err := uuid.Parse(strings.TrimSpace(c.Param("amendmentID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amendment id"})
		return
	}

	if err := h.agreements.DeleteAmendment(c.Request.Context(), agreementID, amendmentID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) exportRegister(c *gin.Context) {
	result, err := h.agreements.ExportRegister(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) getReport(c *gin.Context) {
	agreementID, refMonth, ok := h.reportKey(c)
	if !ok {
		return
	}

	report, err := h.reports.GetReport(c.Request.Context(), agreementID, refMonth)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReportResponse(*report))
}

type saveReportRequest struct {
	Content model.ReportContent `json:"content"`
}

func (h *Handler) saveReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	agreementID, refMonth, ok := h.reportKey(c)
	if !ok {
		return
	}

	var req saveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.SaveReport(c.Request.Context(), agreementID, refMonth, req.Content, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReportResponse(*report))
}

type signReportRequest struct {
	Role       string `json:"role" binding:"required"`
	Credential string `json:"credential" binding:"required"`
}

func (h *Handler) signReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	agreementID, refMonth, ok := h.reportKey(c)
	if !ok {
		return
	}

	var req signReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := parseSignerRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	report, err := h.reports.Sign(c.Request.Context(), agreementID, refMonth, role, req.Credential, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReportResponse(*report))
}

func (h *Handler) exportReportPDF(c *gin.Context) {
	agreementID, refMonth, ok := h.reportKey(c)
	if !ok {
		return
	}

	result, err := h.reports.ExportPDF(c.Request.Context(), agreementID, refMonth)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) reportKey(c *gin.Context) (uuid.UUID, string, bool) {
	agreementID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agreement id"})
		return uuid.Nil, "", false
	}
	refMonth := strings.TrimSpace(c.Param("month"))
	if !service.ValidRefMonth(refMonth) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reference month, expected YYYY-MM"})
		return uuid.Nil, "", false
	}
	return agreementID, refMonth, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var outOfTurn *fiscalization.OutOfTurnError
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrAuthenticationFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &outOfTurn):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "awaited_role": string(outOfTurn.Awaited)})
	case errors.Is(err, fiscalization.ErrReportCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReportLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseSignerRole(raw string) (model.SignerRole, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "technical":
		return model.RoleTechnical, nil
	case "administrative":
		return model.RoleAdministrative, nil
	case "manager":
		return model.RoleManager, nil
	default:
		return "", service.ErrInvalidInput
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
