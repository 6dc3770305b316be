// File: handlers/schema.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	formschemaRepo "tavola/database/repository/formschema"
	"tavola/models"
	"tavola/utils"
)

// SchemaHandler serves the form field schema: public read for rendering
// the booking form, admin read/replace for the fields editor.
type SchemaHandler struct {
	Schema formschemaRepo.Repository
	Logger *zap.Logger
}

func NewSchemaHandler(repo formschemaRepo.Repository, logger *zap.Logger) *SchemaHandler {
	return &SchemaHandler{Schema: repo, Logger: logger}
}

func (h *SchemaHandler) ListFieldsHandler(c *gin.Context) {
	fields, err := h.Schema.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to read field schema", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "StorageError", "could not read the field schema")
		return
	}
	if fields == nil {
		fields = []models.FieldDefinition{}
	}
	c.JSON(http.StatusOK, fields)
}

// ReplaceFieldsHandler overwrites the whole schema with the posted
// array. An empty array is a valid schema.
func (h *SchemaHandler) ReplaceFieldsHandler(c *gin.Context) {
	var fields []models.FieldDefinition
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ValidationError", "details": "expected an array of field definitions"})
		return
	}
	if err := h.Schema.Replace(c.Request.Context(), fields); err != nil {
		h.Logger.Error("failed to replace field schema", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "StorageError", "could not save the field schema")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
