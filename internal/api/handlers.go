package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"homescape/server/internal/catalog"
	"homescape/server/internal/compare"
	"homescape/server/internal/enquiry"
	"homescape/server/internal/favorites"
	"homescape/server/internal/filter"
	"homescape/server/internal/geo"
	"homescape/server/internal/models"
	"homescape/server/internal/sms"
)

type Handler struct {
	catalog    *catalog.Catalog
	favorites  *favorites.Store
	comparison *compare.Set
	enquiries  *enquiry.Store
	smsService *sms.Service
	logger     *logrus.Logger
}

type FavoriteRequest struct {
	PropertyID int64 `json:"property_id" binding:"required"`
}

type ContactRequest struct {
	PropertyID int64  `json:"property_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	SendSMS    bool   `json:"send_sms"`
}

func NewHandler(cat *catalog.Catalog, favs *favorites.Store, enquiries *enquiry.Store, smsService *sms.Service, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return &Handler{
		catalog:    cat,
		favorites:  favs,
		comparison: compare.NewSet(),
		enquiries:  enquiries,
		smsService: smsService,
		logger:     logger,
	}
}

// GetProperties returns the listings matching the filter criteria bound
// from the query string. No criteria means the full catalog.
func (h *Handler) GetProperties(c *gin.Context) {
	var criteria models.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		h.logger.WithError(err).Error("Failed to parse filter criteria")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	listings := filter.Apply(h.catalog.GetAll(), criteria)
	c.JSON(http.StatusOK, listings)
}

func (h *Handler) GetPropertyByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	listing, err := h.catalog.GetByID(id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *Handler) SearchProperties(c *gin.Context) {
	results := h.catalog.Search(c.Query("q"))
	if results == nil {
		results = []models.Listing{}
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Stats())
}

func (h *Handler) GetFavorites(c *gin.Context) {
	favs, err := h.favorites.GetAll(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get favorites")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get favorites"})
		return
	}
	c.JSON(http.StatusOK, favs)
}

func (h *Handler) GetFavoriteCount(c *gin.Context) {
	count, err := h.favorites.Count(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to count favorites")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// CreateFavorite saves a favorite for an existing listing. Favoriting
// the same listing twice returns the original record.
func (h *Handler) CreateFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse favorite request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	if _, err := h.catalog.GetByID(req.PropertyID); errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	fav, err := h.favorites.Create(c.Request.Context(), models.Favorite{PropertyID: req.PropertyID})
	if err != nil {
		h.logger.WithError(err).Error("Failed to create favorite")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save favorite"})
		return
	}

	c.JSON(http.StatusCreated, fav)
}

func (h *Handler) DeleteFavorite(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("propertyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	if _, err := h.favorites.Delete(c.Request.Context(), propertyID); err != nil {
		h.logger.WithError(err).Error("Failed to delete favorite")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ClearFavorites(c *gin.Context) {
	if err := h.favorites.Clear(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("Failed to clear favorites")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddToComparison adds a listing to the session comparison set. The
// outcome (accepted or the reject reason) is part of the payload, not
// an error: a full set is normal interaction, not a failure.
func (h *Handler) AddToComparison(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	if _, err := h.catalog.GetByID(id); errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	result := h.comparison.Add(id)
	c.JSON(http.StatusOK, gin.H{
		"accepted": result.Accepted,
		"reason":   result.Reason,
		"ids":      h.comparison.IDs(),
	})
}

func (h *Handler) RemoveFromComparison(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	h.comparison.Remove(id)
	c.JSON(http.StatusOK, gin.H{"ids": h.comparison.IDs()})
}

func (h *Handler) ClearComparison(c *gin.Context) {
	h.comparison.Clear()
	c.JSON(http.StatusOK, gin.H{"ids": h.comparison.IDs()})
}

func (h *Handler) GetComparisonListings(c *gin.Context) {
	c.JSON(http.StatusOK, h.comparison.ToListings(h.catalog.GetAll()))
}

// CompareByIDs is the stateless projection: ids are supplied as a
// comma-separated query parameter and pushed through the same bounded
// set rules, with rejections reported alongside the matches.
func (h *Handler) CompareByIDs(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ids parameter"})
		return
	}

	set := compare.NewSet()
	rejected := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id: " + part})
			return
		}
		if result := set.Add(id); !result.Accepted {
			rejected[part] = result.Reason
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": set.ToListings(h.catalog.GetAll()),
		"rejected": rejected,
	})
}

// GetMapViewport returns the region the map placeholder should open
// on, computed over the listings matching the current filter.
func (h *Handler) GetMapViewport(c *gin.Context) {
	var criteria models.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	listings := filter.Apply(h.catalog.GetAll(), criteria)
	c.JSON(http.StatusOK, geo.ComputeViewport(listings, geo.DefaultCenter))
}

// SubmitContact validates a contact-form submission, persists it, and
// optionally relays it as a text message.
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON in request body"})
		return
	}

	if req.Phone == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: 'phone' and 'message'"})
		return
	}

	phone, err := sms.NormalizePhone(req.Phone)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "Invalid phone number format"})
		return
	}
	if err := sms.ValidateMessage(req.Message); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "Message must be between 1 and 1600 characters"})
		return
	}

	record, err := h.enquiries.Create(models.ContactEnquiry{
		PropertyID:   req.PropertyID,
		Name:         req.Name,
		Phone:        phone,
		Message:      req.Message,
		SMSRequested: req.SendSMS,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to save enquiry")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save enquiry"})
		return
	}

	if !req.SendSMS {
		c.JSON(http.StatusCreated, gin.H{"success": true, "enquiry_id": record.ID})
		return
	}

	result, err := h.smsService.Send(phone, req.Message)
	if err != nil {
		h.logger.WithError(err).Error("Failed to send SMS")
		status := smsErrorStatus(err)
		c.JSON(status, gin.H{"success": false, "error": err.Error(), "enquiry_id": record.ID})
		return
	}

	if err := h.enquiries.MarkSent(record.ID, result.Status); err != nil {
		h.logger.WithError(err).Error("Failed to mark enquiry sent")
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"enquiry_id": record.ID,
		"message_id": result.MessageID,
		"status":     result.Status,
	})
}

// smsErrorStatus maps the sms error taxonomy onto HTTP statuses:
// validation 422, configuration and connectivity 503, upstream
// rejection 422.
func smsErrorStatus(err error) int {
	switch {
	case errors.Is(err, sms.ErrInvalidPhone), errors.Is(err, sms.ErrInvalidMessage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sms.ErrNotConfigured), errors.Is(err, sms.ErrGatewayUnreachable):
		return http.StatusServiceUnavailable
	case errors.Is(err, sms.ErrSendFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) ListEnquiries(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	enquiries, err := h.enquiries.ListByProperty(propertyID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list enquiries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list enquiries"})
		return
	}

	c.JSON(http.StatusOK, enquiries)
}
