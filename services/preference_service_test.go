package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/Soukthavilay/qr-order/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_Defaults(t *testing.T) {
	svc := services.NewPreferenceService(storage.NewMemoryStore(), testLogger())

	prefs := svc.GetPreferences(context.Background(), "s1")
	assert.Equal(t, "en", prefs.Language)
	assert.Equal(t, models.ThemeLight, prefs.Theme)
}

func TestPreferenceService_UpdateAndPersist(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := services.NewPreferenceService(store, testLogger())

	lang := "lo"
	theme := models.ThemeDark
	prefs, svcErr := svc.UpdatePreferences(ctx, "s1", &models.UpdatePreferencesRequest{Language: &lang, Theme: &theme})
	require.Nil(t, svcErr)
	assert.Equal(t, "lo", prefs.Language)
	assert.Equal(t, models.ThemeDark, prefs.Theme)

	raw, err := store.Get(ctx, "s1", storage.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, `"lo"`, string(raw))

	// Partial update keeps the other field.
	vi := "vi"
	prefs, _ = svc.UpdatePreferences(ctx, "s1", &models.UpdatePreferencesRequest{Language: &vi})
	assert.Equal(t, models.ThemeDark, prefs.Theme)
}

func TestPreferenceService_RejectsUnknownValues(t *testing.T) {
	ctx := context.Background()
	svc := services.NewPreferenceService(storage.NewMemoryStore(), testLogger())

	fr := "fr"
	_, svcErr := svc.UpdatePreferences(ctx, "s1", &models.UpdatePreferencesRequest{Language: &fr})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)

	sepia := models.Theme("sepia")
	_, svcErr = svc.UpdatePreferences(ctx, "s1", &models.UpdatePreferencesRequest{Theme: &sepia})
	require.NotNil(t, svcErr)

	assert.Equal(t, "en", svc.GetPreferences(ctx, "s1").Language)
}

func TestPreferenceService_CorruptValuesFallBack(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "s1", storage.KeyTheme, []byte("dark")))
	require.NoError(t, store.Set(ctx, "s1", storage.KeyLanguage, []byte(`"klingon"`)))

	prefs := services.NewPreferenceService(store, testLogger()).GetPreferences(ctx, "s1")
	assert.Equal(t, models.ThemeLight, prefs.Theme)
	assert.Equal(t, "en", prefs.Language)
}
