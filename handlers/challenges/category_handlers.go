package challenges

import (
	"net/http"

	"ctfrange/database"
	"ctfrange/models"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
)

// ListCategories returns all challenge categories
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 401 {object} map[string]string
// @Router /categories [get]
// @Security Bearer
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("id").Find(&categories).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchCategory)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory creates a category (mentor only)
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 400,401,403 {object} map[string]string
// @Router /mentor/categories [post]
// @Security Bearer
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	category := models.Category{Name: req.Name}
	if err := database.DB.Create(&category).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedCreateCategory)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames a category (mentor only)
// @Summary Rename a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body CategoryRequest true "Category"
// @Success 200 {object} models.Category
// @Failure 400,401,403,404 {object} map[string]string
// @Router /mentor/categories/{id} [put]
// @Security Bearer
func UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := database.DB.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrCategoryNotFound)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	category.Name = req.Name
	if err := database.DB.Save(&category).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedCreateCategory)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category and all of its challenges through the FK
// cascade (mentor only)
// @Summary Delete a category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 401,403,404 {object} map[string]string
// @Router /mentor/categories/{id} [delete]
// @Security Bearer
func DeleteCategory(c *gin.Context) {
	var category models.Category
	if err := database.DB.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrCategoryNotFound)
		return
	}

	if err := database.DB.Select("Challenges").Delete(&category).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteCategory)
		return
	}
	response.Message(c, http.StatusOK, "Category deleted")
}
