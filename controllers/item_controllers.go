package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/produce-orders/models"
	"github.com/greenbasket/produce-orders/services"
	"github.com/greenbasket/produce-orders/utils"
)

type ItemController struct {
	Catalog *services.CatalogStore
}

func NewItemController(catalog *services.CatalogStore) *ItemController {
	return &ItemController{Catalog: catalog}
}

// GetActiveItems -> public storefront catalog, display order.
func (ic *ItemController) GetActiveItems(c *gin.Context) {
	items, err := ic.Catalog.ListActive()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of items", items)
}

// GetAllItems -> full catalog including inactive items (admin).
func (ic *ItemController) GetAllItems(c *gin.Context) {
	items, err := ic.Catalog.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of all items", items)
}

// CreateItem (admin)
func (ic *ItemController) CreateItem(c *gin.Context) {
	var in services.NewItem
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := ic.Catalog.Create(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Item created: %s (%s)", item.ID, item.Name)
	utils.RespondJSON(c, http.StatusCreated, "Item created", item)
}

// UpdateItem (admin) merges the provided fields over the stored item. The id
// in the path wins; a caller-supplied id in the body is ignored.
func (ic *ItemController) UpdateItem(c *gin.Context) {
	id := c.Param("item_id")

	var patch models.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := ic.Catalog.Update(id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item updated", item)
}
