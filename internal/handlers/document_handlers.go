package handlers

import (
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/labstack/echo/v4"

	"flowmarine/internal/common"
	"flowmarine/internal/services"
)

const (
	documentBucket     = "flowmarine-rfq-documents"
	presignedURLExpiry = 15 * time.Minute
)

// DocumentHandlers handles RFQ attachment uploads and downloads
type DocumentHandlers struct {
	documentService services.DocumentService
}

func NewDocumentHandlers(documentService services.DocumentService) *DocumentHandlers {
	return &DocumentHandlers{documentService: documentService}
}

// UploadDocument attaches a file to an RFQ
func (h *DocumentHandlers) UploadDocument(c echo.Context) error {
	ctx := c.Request().Context()
	rfqID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	file, err := c.FormFile("document")
	if err != nil {
		return common.SendClientError(c, "document file is required")
	}
	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "could not read uploaded file")
	}
	defer src.Close()

	objectName := fmt.Sprintf("%s/%s", rfqID, path.Base(file.Filename))
	contentType := file.Header.Get("Content-Type")

	if err := h.documentService.UploadDocument(ctx, documentBucket, objectName, src, file.Size, contentType); err != nil {
		return common.RespondError(c, err, "DOCUMENT_UPLOAD_FAILED")
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"bucket": documentBucket,
		"object": objectName,
	})
}

// GetDocumentURL returns a short-lived download link for an attachment
func (h *DocumentHandlers) GetDocumentURL(c echo.Context) error {
	ctx := c.Request().Context()
	rfqID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	name := c.Param("name")
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	objectName := fmt.Sprintf("%s/%s", rfqID, path.Base(name))
	url, err := h.documentService.GetPresignedURL(ctx, documentBucket, objectName, presignedURLExpiry)
	if err != nil {
		return common.RespondError(c, err, "DOCUMENT_URL_FAILED")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// DeleteDocument removes an attachment from an RFQ
func (h *DocumentHandlers) DeleteDocument(c echo.Context) error {
	ctx := c.Request().Context()
	rfqID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	name := c.Param("name")
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	objectName := fmt.Sprintf("%s/%s", rfqID, path.Base(name))
	if err := h.documentService.DeleteDocument(ctx, documentBucket, objectName); err != nil {
		return common.RespondError(c, err, "DOCUMENT_DELETION_FAILED")
	}
	return c.NoContent(http.StatusNoContent)
}
