package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-platform-server/database"
	"consulting-platform-server/models"
)

// RegisterCatalogRoutes registers the public specialization and
// consultation type catalog
func RegisterCatalogRoutes(router *gin.RouterGroup) {
	router.GET("/specializations", getSpecializations)
	router.GET("/consultation-types", getConsultationTypes)
	router.GET("/consultation-types/:id", getConsultationType)
}

func getSpecializations(c *gin.Context) {
	var specializations []models.Specialization
	if err := database.DB.Where("is_active = ?", true).
		Order("order_index ASC, id ASC").
		Find(&specializations).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"specializations": specializations})
}

func getConsultationTypes(c *gin.Context) {
	query := database.DB.Where("is_active = ?", true)
	// related_specializations is a JSON array of codes
	if spec := c.Query("specialization"); spec != "" {
		query = query.Where("related_specializations LIKE ?", "%\""+spec+"\"%")
	}

	var types []models.ConsultationType
	if err := query.Order("id ASC").Find(&types).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultation_types": types})
}

func getConsultationType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var ct models.ConsultationType
	if err := database.DB.First(&ct, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": "Consultation type not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultation_type": ct})
}
