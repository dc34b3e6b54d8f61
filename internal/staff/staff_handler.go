package staff

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go-roster/internal/interchange"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/response"
	stafferrors "go-roster/internal/staff/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

type Handler struct {
	service        Service
	importMaxBytes int64
	logger         *zap.Logger
}

func NewHandler(service Service, importMaxBytes int64, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("staff.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.handler")
	}
	return &Handler{service: service, importMaxBytes: importMaxBytes, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("staff request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// writeResult sends data, attaching a warning when the change was not persisted.
func (h *Handler) writeResult(c *gin.Context, status int, data any, err error) {
	if err == nil {
		response.Success(c, status, data, nil)
		return
	}
	if !apperror.IsStorageWarning(err) {
		h.writeServiceError(c, err)
		return
	}

	appErr, _ := apperror.As(err)
	h.logger.Warn("staff change not persisted",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	response.SuccessWithWarnings(c, status, data, response.Warning{Code: appErr.Code, Message: appErr.Message})
}

func (h *Handler) invalidBody(c *gin.Context, err error) {
	h.logger.Warn("http staff body invalid", zap.String("path", c.FullPath()), zap.Error(err))
	response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Invalid input", err.Error())
}

func (h *Handler) Create(c *gin.Context) {
	h.logger.Debug("http create staff")
	var req StaffDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	h.writeResult(c, http.StatusCreated, resp, err)
}

func (h *Handler) GetAll(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, stafferrors.ErrInvalidQuery.WithErr(err))
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	start, end := response.Paginate(len(resp), page, pageSize)
	meta := response.NewPaginationMeta(int64(len(resp)), page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http get staff by id", zap.String("id", id))

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http update staff", zap.String("id", id))
	var req StaffDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	h.writeResult(c, http.StatusOK, resp, err)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http delete staff", zap.String("id", id))

	err := h.service.Delete(c.Request.Context(), id)
	h.writeResult(c, http.StatusOK, gin.H{"deleted": true}, err)
}

func (h *Handler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c, err)
		return
	}
	if len(req.IDs) == 0 {
		h.writeServiceError(c, stafferrors.ErrMissingIDs)
		return
	}

	n, err := h.service.DeleteMany(c.Request.Context(), req.IDs)
	h.writeResult(c, http.StatusOK, BulkDeleteResponse{Deleted: n}, err)
}

func (h *Handler) Summary(c *gin.Context) {
	resp, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Birthdays(c *gin.Context) {
	window, err := strconv.Atoi(c.DefaultQuery("window", strconv.Itoa(DefaultBirthdayWindow)))
	if err != nil || window < 0 {
		h.writeServiceError(c, stafferrors.ErrInvalidQuery)
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultBirthdayLimit)))
	if err != nil || limit < 0 {
		h.writeServiceError(c, stafferrors.ErrInvalidQuery)
		return
	}

	resp, err := h.service.UpcomingBirthdays(c.Request.Context(), window, limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Export(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, stafferrors.ErrInvalidQuery.WithErr(err))
		return
	}

	file, err := h.service.Export(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.sendFile(c, file)
}

func (h *Handler) Template(c *gin.Context) {
	file, err := h.service.Template(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.sendFile(c, file)
}

func (h *Handler) sendFile(c *gin.Context, file ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *Handler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, stafferrors.ErrMissingImportFile)
		return
	}
	if !interchange.IsSupportedFile(header.Filename) {
		h.writeServiceError(c, interchange.ErrUnsupportedFile)
		return
	}
	if h.importMaxBytes > 0 && header.Size > h.importMaxBytes {
		h.writeServiceError(c, stafferrors.ErrImportFileTooLarge)
		return
	}

	f, err := header.Open()
	if err != nil {
		h.writeServiceError(c, interchange.ErrUnreadableWorkbook.WithErr(err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.writeServiceError(c, interchange.ErrUnreadableWorkbook.WithErr(err))
		return
	}

	h.logger.Debug("http import staff",
		zap.String("filename", header.Filename),
		zap.Int("bytes", len(data)),
	)
	resp, err := h.service.Import(c.Request.Context(), header.Filename, data)
	h.writeResult(c, http.StatusOK, resp, err)
}
