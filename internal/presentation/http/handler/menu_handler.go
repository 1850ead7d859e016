package handler

import (
	"github.com/chalkboard-id/chalkboard-api/internal/application/service"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/request"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MenuHandler handles F&B category and item HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

func categoryInput(req *request.CategoryRequest) *service.CategoryInput {
	return &service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	}
}

func itemInput(req *request.ItemRequest) *service.ItemInput {
	input := &service.ItemInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		Cost:          decimal.Zero,
		StockQuantity: req.StockQuantity,
		MinStock:      req.MinStock,
		Unit:          req.Unit,
		IsActive:      req.IsActive,
	}
	if req.Cost != nil {
		input.Cost = *req.Cost
	}
	return input
}

// CreateCategory handles creating a menu category
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req request.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.menuService.CreateCategory(c.Request.Context(), categoryInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// UpdateCategory handles updating a menu category
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.menuService.UpdateCategory(c.Request.Context(), id, categoryInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated successfully", category)
}

func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.menuService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted successfully", nil)
}

func (h *MenuHandler) GetCategory(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	category, err := h.menuService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category retrieved successfully", category)
}

func (h *MenuHandler) ListCategories(c *gin.Context) {
	categories, err := h.menuService.ListCategories(c.Request.Context(), c.Query("active_only") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// CreateItem handles creating a menu item
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req request.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.menuService.CreateItem(c.Request.Context(), itemInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// UpdateItem handles updating a menu item
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.menuService.UpdateItem(c.Request.Context(), id, itemInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.menuService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}

func (h *MenuHandler) GetItem(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	item, err := h.menuService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// ListItems handles listing menu items with pagination
func (h *MenuHandler) ListItems(c *gin.Context) {
	var filter request.ItemFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.menuService.ListItems(c.Request.Context(), &repository.FnbItemFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		CategoryID: optionalUUID(filter.CategoryID),
		ActiveOnly: filter.ActiveOnly,
		LowStock:   filter.LowStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// LowStock handles listing active items at or below their minimum stock
func (h *MenuHandler) LowStock(c *gin.Context) {
	items, err := h.menuService.ListLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock items retrieved successfully", items)
}

// Restock handles adding stock to a menu item
func (h *MenuHandler) Restock(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "quantity must be a positive integer")
		return
	}

	item, err := h.menuService.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item restocked successfully", item)
}
