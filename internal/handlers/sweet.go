package handlers

import (
	"net/http"
	"strconv"

	"github.com/dimitrije/sweetshop-api/internal/inventory"
	"github.com/dimitrije/sweetshop-api/internal/middleware"
	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/dimitrije/sweetshop-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type SweetHandler struct {
	sweetService SweetServiceInterface
	hub          SSEHubInterface
	logger       *zap.Logger
}

func NewSweetHandler(sweetService SweetServiceInterface, hub SSEHubInterface, logger *zap.Logger) *SweetHandler {
	return &SweetHandler{
		sweetService: sweetService,
		hub:          hub,
		logger:       logger,
	}
}

// List returns the inventory filtered by the search, category and price
// query parameters.
func (h *SweetHandler) List(c *drift.Context) {
	price, err := inventory.ParsePriceRange(c.QueryParam("price"))
	if err != nil {
		respondError(c, h.logger, err, "invalid price range")
		return
	}
	criteria := inventory.Criteria{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Price:    price,
	}

	snapshot, err := h.sweetService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "failed to list sweets")
		return
	}

	filtered := inventory.Filter(snapshot, criteria)

	response := make([]dto.SweetResponse, len(filtered))
	for i := range filtered {
		response[i] = sweetResponse(&filtered[i])
	}

	_ = c.JSON(http.StatusOK, dto.SweetListResponse{
		Sweets: response,
		Count:  len(filtered),
		Total:  len(snapshot),
	})
}

func (h *SweetHandler) Categories(c *drift.Context) {
	snapshot, err := h.sweetService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "failed to list categories")
		return
	}

	_ = c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: inventory.Categories(snapshot)})
}

func (h *SweetHandler) Get(c *drift.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	sweet, err := h.sweetService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "failed to get sweet")
		return
	}

	_ = c.JSON(http.StatusOK, sweetResponse(sweet))
}

func (h *SweetHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)

	var req dto.CreateSweetRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	sweet, err := h.sweetService.Create(c.Request.Context(), inventory.CreateInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
	}, userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to create sweet")
		return
	}

	h.hub.SweetCreated(sweet, userID)
	_ = c.JSON(http.StatusCreated, sweetResponse(sweet))
}

func (h *SweetHandler) Update(c *drift.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	var req dto.UpdateSweetRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	sweet, err := h.sweetService.Update(c.Request.Context(), id, inventory.EditInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
	}, req.Version)
	if err != nil {
		respondError(c, h.logger, err, "failed to update sweet")
		return
	}

	h.hub.SweetUpdated(sweet, middleware.GetUserID(c))
	_ = c.JSON(http.StatusOK, sweetResponse(sweet))
}

// Purchase takes one unit. The body is optional.
func (h *SweetHandler) Purchase(c *drift.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if c.Request.ContentLength > 0 {
		if err := c.BindJSON(&req); err != nil {
			c.BadRequest("invalid request body")
			return
		}
	}

	sweet, err := h.sweetService.Purchase(c.Request.Context(), id, req.Version)
	if err != nil {
		respondError(c, h.logger, err, "failed to purchase sweet")
		return
	}

	h.hub.SweetUpdated(sweet, middleware.GetUserID(c))
	_ = c.JSON(http.StatusOK, sweetResponse(sweet))
}

func (h *SweetHandler) Restock(c *drift.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	var req dto.RestockRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	sweet, err := h.sweetService.Restock(c.Request.Context(), id, req.Quantity, req.Version)
	if err != nil {
		respondError(c, h.logger, err, "failed to restock sweet")
		return
	}

	h.hub.SweetUpdated(sweet, middleware.GetUserID(c))
	_ = c.JSON(http.StatusOK, sweetResponse(sweet))
}

// Delete requires ?confirm=true.
func (h *SweetHandler) Delete(c *drift.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))

	if err := h.sweetService.Delete(c.Request.Context(), id, confirmed); err != nil {
		respondError(c, h.logger, err, "failed to delete sweet")
		return
	}

	userID := middleware.GetUserID(c)
	h.logger.Info("sweet deleted", zap.String("sweet_id", id.String()), zap.String("user_id", userID.String()))
	h.hub.SweetDeleted(id, userID)
	_ = c.JSON(http.StatusOK, map[string]string{"message": "sweet deleted"})
}

func sweetID(c *drift.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid sweet id")
		return uuid.Nil, false
	}
	return id, true
}

func sweetResponse(s *models.Sweet) dto.SweetResponse {
	return dto.SweetResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Price:       s.Price,
		Quantity:    s.Quantity,
		Description: s.Description,
		CreatedBy:   s.CreatedBy,
		Version:     s.Version,
		StockLevel:  string(inventory.StockLevelOf(s.Quantity)),
		Purchasable: inventory.CanPurchase(*s),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
