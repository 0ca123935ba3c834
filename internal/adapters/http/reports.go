package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/spraylog/internal/core/usecases"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type emailRequest struct {
	Email        string   `json:"email"`
	Applications []string `json:"applications"`
}

// ApplicationReportHandler downloads the audit PDF of one application.
func ApplicationReportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pdf, app, err := deps.Reports.RenderApplication(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err, "application")
		}
		return attachment(c, "application/pdf", usecases.ApplicationReportFilename(app.ID), pdf)
	}
}

// BatchReportHandler downloads one PDF covering ?ids=a,b (all when omitted).
func BatchReportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pdf, err := deps.Reports.RenderBatch(c.UserContext(), splitIDs(c.Query("ids")))
		if err != nil {
			return respondError(c, err, "application")
		}
		return attachment(c, "application/pdf", usecases.BatchReportFilename(time.Now()), pdf)
	}
}

// RegisterExportHandler downloads the spray register workbook.
func RegisterExportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := deps.Reports.ExportRegister(c.UserContext())
		if err != nil {
			return respondError(c, err, "application")
		}
		filename := "spray-register-" + time.Now().Format("2006-01-02") + ".xlsx"
		return attachment(c, xlsxContentType, filename, data)
	}
}

// EmailApplicationHandler mails the audit PDF of one application.
func EmailApplicationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req emailRequest
		if err := decodeBody(c, &req); err != nil {
			return respondError(c, err, "application")
		}

		if err := deps.Reports.EmailApplication(c.UserContext(), c.Params("id"), req.Email); err != nil {
			return respondError(c, err, "application")
		}
		return c.JSON(fiber.Map{"success": true, "message": "Email sent successfully"})
	}
}

// EmailBatchHandler mails one PDF covering the listed applications.
func EmailBatchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req emailRequest
		if err := decodeBody(c, &req); err != nil {
			return respondError(c, err, "application")
		}

		n, err := deps.Reports.EmailBatch(c.UserContext(), req.Email, req.Applications)
		if err != nil {
			return respondError(c, err, "application")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Email sent successfully",
			"count":   n,
		})
	}
}
