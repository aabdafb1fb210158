// Package api exposes MLG conversion over HTTP.
package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/mlgconv/internal/logger"
	"github.com/samcharles93/mlgconv/internal/mlg"
)

// HeaderConversionID carries the conversion id on non-JSON responses.
const HeaderConversionID = "X-Conversion-Id"

const defaultMaxBodyBytes = 64 << 20

type Server struct {
	log          logger.Logger
	maxBodyBytes int64
}

func NewServer(log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{log: log, maxBodyBytes: defaultMaxBodyBytes}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/health", s.handleHealth)
	e.POST("/v1/convert", s.handleConvert)
}

type healthResponse struct {
	Status string `json:"status"`
}

type convertResponse struct {
	ID       string          `json:"id"`
	Format   string          `json:"format"`
	Blocks   int             `json:"blocks"`
	Document json.RawMessage `json:"document"`
}

type responseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// handleConvert decodes the raw MLG bytes in the request body. With
// format=json the decoded document comes back in a JSON envelope; with
// format=csv the tab-delimited text is returned directly and the
// conversion id rides on a response header.
func (s *Server) handleConvert(c *echo.Context) error {
	format, err := mlg.ParseFormat(formatParam(c))
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, s.maxBodyBytes+1))
	if err != nil {
		return writeBadRequest(c, fmt.Sprintf("read request body: %v", err))
	}
	if int64(len(body)) > s.maxBodyBytes {
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", "request body too large")
	}

	doc, err := mlg.Decode(body)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, "decode_error", err.Error())
	}

	id := "conv_" + uuid.NewString()
	s.log.Info("converted document", "id", id, "format", format.String(), "blocks", len(doc.Blocks))

	switch format {
	case mlg.FormatJSON:
		raw, err := doc.MarshalJSON()
		if err != nil {
			return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
		}
		return c.JSON(http.StatusOK, convertResponse{
			ID:       id,
			Format:   format.String(),
			Blocks:   len(doc.Blocks),
			Document: raw,
		})
	default:
		var buf bytes.Buffer
		if err := doc.WriteTable(&buf); err != nil {
			return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
		}
		c.Response().Header().Set(HeaderConversionID, id)
		return c.Blob(http.StatusOK, "text/tab-separated-values; charset=utf-8", buf.Bytes())
	}
}

func formatParam(c *echo.Context) string {
	if v := c.QueryParam("format"); v != "" {
		return v
	}
	return "json"
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": responseError{Message: msg, Type: errType},
	})
}
