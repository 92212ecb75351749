package controllers

import (
	"net/http"
	"strings"

	"github.com/Soukthavilay/qr-order/middleware"
	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/gin-gonic/gin"
)

// maxImageSize caps an uploaded menu image.
const maxImageSize = 5 << 20

// MenuController serves the public catalog. Names are localized to ?lang=
// or, without it, the session's chosen language.
type MenuController struct {
	menuService       services.MenuService
	preferenceService services.PreferenceService
}

func NewMenuController(menuService services.MenuService, preferenceService services.PreferenceService) *MenuController {
	return &MenuController{menuService: menuService, preferenceService: preferenceService}
}

func (mc *MenuController) language(ctx *gin.Context, requested string) string {
	if requested != "" {
		return requested
	}
	return mc.preferenceService.GetPreferences(ctx.Request.Context(), middleware.GetSessionID(ctx)).Language
}

func (mc *MenuController) bindFilter(ctx *gin.Context) (models.MenuFilter, bool) {
	var filter models.MenuFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return filter, false
	}
	filter.Language = mc.language(ctx, filter.Language)
	return filter, true
}

// ListItems handles GET /menu.
func (mc *MenuController) ListItems(ctx *gin.Context) {
	filter, ok := mc.bindFilter(ctx)
	if !ok {
		return
	}

	items, svcErr := mc.menuService.ListItems(ctx.Request.Context(), filter)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// GroupedItems handles GET /menu/grouped.
func (mc *MenuController) GroupedItems(ctx *gin.Context) {
	filter, ok := mc.bindFilter(ctx)
	if !ok {
		return
	}

	groups, svcErr := mc.menuService.GroupedItems(ctx.Request.Context(), filter)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": groups})
}

// GetItem handles GET /menu/:id.
func (mc *MenuController) GetItem(ctx *gin.Context) {
	item, svcErr := mc.menuService.GetItem(ctx.Request.Context(), ctx.Param("id"), mc.language(ctx, ctx.Query("lang")))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"item": item})
}

// ImageURL handles GET /menu/:id/image-url.
func (mc *MenuController) ImageURL(ctx *gin.Context) {
	url, svcErr := mc.menuService.ImageURL(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"url": url})
}

// UploadImage handles POST /menu/:id/image with a multipart "image" field.
func (mc *MenuController) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	if file.Size > maxImageSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 5MB or smaller"})
		return
	}
	body, err := file.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image file"})
		return
	}
	defer body.Close()

	contentType := file.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	key, svcErr := mc.menuService.UploadImage(ctx.Request.Context(), ctx.Param("id"), contentType, body)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"image": key})
}
