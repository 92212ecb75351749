package controllers

import (
	"net/http"

	"github.com/Soukthavilay/qr-order/i18n"
	"github.com/Soukthavilay/qr-order/middleware"
	"github.com/Soukthavilay/qr-order/navigation"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/gin-gonic/gin"
)

// AppController serves page routing and UI strings.
type AppController struct {
	preferenceService services.PreferenceService
}

func NewAppController(preferenceService services.PreferenceService) *AppController {
	return &AppController{preferenceService: preferenceService}
}

// Navigate handles GET /navigate?fragment=.
func (ac *AppController) Navigate(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, navigation.ResolveFor(ctx.Query("fragment"), middleware.GetUser(ctx)))
}

// language picks ?lang=, then the session preference. Unknown codes read English.
func (ac *AppController) language(ctx *gin.Context) i18n.Language {
	code := ctx.Query("lang")
	if code == "" {
		code = ac.preferenceService.GetPreferences(ctx.Request.Context(), middleware.GetSessionID(ctx)).Language
	}
	if lang, ok := i18n.ParseLanguage(code); ok {
		return lang
	}
	return i18n.DefaultLanguage
}

// Translations handles GET /i18n.
func (ac *AppController) Translations(ctx *gin.Context) {
	lang := ac.language(ctx)
	ctx.JSON(http.StatusOK, gin.H{"language": lang, "translations": i18n.Table(lang)})
}

// Translate handles GET /i18n/:key. Unregistered keys echo back unchanged.
func (ac *AppController) Translate(ctx *gin.Context) {
	lang := ac.language(ctx)
	key := ctx.Param("key")
	ctx.JSON(http.StatusOK, gin.H{"key": key, "language": lang, "value": i18n.TranslateString(key, lang)})
}
