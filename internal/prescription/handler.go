package prescription

import (
	"errors"
	"net/http"
	"time"

	"github.com/hibaa8/SmartMeds/internal/llm"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type addRequest struct {
	Name      string         `json:"name"`
	Dosage    string         `json:"dosage"`
	Frequency string         `json:"frequency"`
	Quantity  llm.FlexString `json:"quantity"`
	Days      llm.FlexString `json:"days"`
	Refills   llm.FlexString `json:"refills"`
	LastTaken string         `json:"last_taken"`
}

type prescriptionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Quantity  int    `json:"quantity"`
	Days      int    `json:"days"`
	Refills   int    `json:"refills"`
	LastTaken string `json:"last_taken"`
	Analysis  string `json:"analysis"`
	CreatedAt string `json:"created_at"`
}

// --------------------------------------------------
// POST /scan-prescription
// --------------------------------------------------
func (h *Handler) Scan(c *gin.Context) {
	userID := c.GetString("userID")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No selected file"})
		return
	}

	record, err := h.service.Scan(c.Request.Context(), userID, file, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}

// --------------------------------------------------
// POST /add-prescription
// --------------------------------------------------
func (h *Handler) Add(c *gin.Context) {
	userID := c.GetString("userID")

	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fields := SubmitFields{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Quantity:  req.Quantity.String(),
		Days:      req.Days.String(),
		Refills:   req.Refills.String(),
		LastTaken: req.LastTaken,
	}

	p, err := h.service.Submit(c.Request.Context(), userID, fields)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Prescription added successfully!",
		"analysis": p.Analysis,
	})
}

// --------------------------------------------------
// GET /get-prescriptions
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("userID")

	prescriptions, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := make([]prescriptionResponse, 0, len(prescriptions))
	for _, p := range prescriptions {
		response = append(response, prescriptionResponse{
			ID:        p.ID,
			Name:      p.Name,
			Dosage:    p.Dosage,
			Frequency: p.Frequency,
			Quantity:  p.Quantity,
			Days:      p.Days,
			Refills:   p.Refills,
			LastTaken: p.LastTaken.Format("2006-01-02"),
			Analysis:  p.Analysis,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"prescriptions": response})
}

// --------------------------------------------------
// DELETE /delete-prescription/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("userID")

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prescription id"})
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Prescription deleted",
	})
}
