package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const otherCategory = "Other"

// ImageSigner turns a stored image key into a URL the browser can load.
type ImageSigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

// ImageUploader stores an image body under a bucket key.
type ImageUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// MenuService reads and filters the catalog.
type MenuService interface {
	ListItems(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, *ServiceError)
	GroupedItems(ctx context.Context, filter models.MenuFilter) ([]models.MenuCategory, *ServiceError)
	GetItem(ctx context.Context, id, lang string) (*models.MenuItem, *ServiceError)
	ImageURL(ctx context.Context, id string) (string, *ServiceError)
	UploadImage(ctx context.Context, id, contentType string, body io.Reader) (string, *ServiceError)
}

type menuServiceImpl struct {
	repo    repository.MenuRepository
	images  ImageSigner
	uploads ImageUploader
	logger  *zap.Logger
}

// NewMenuService creates a new MenuService. images and uploads may be nil.
func NewMenuService(repo repository.MenuRepository, images ImageSigner, uploads ImageUploader, logger *zap.Logger) MenuService {
	return &menuServiceImpl{repo: repo, images: images, uploads: uploads, logger: logger}
}

func (s *menuServiceImpl) ListItems(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, *ServiceError) {
	if filter.Availability != "" &&
		filter.Availability != models.AvailabilityAvailable &&
		filter.Availability != models.AvailabilityLimited {
		return nil, badRequest("Invalid availability filter")
	}
	for _, tag := range filter.DietaryTags {
		if !tag.IsValid() {
			return nil, badRequest("Invalid dietary tag: " + string(tag))
		}
	}

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load menu", zap.Error(err))
		return nil, internal("Failed to load menu")
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if !matchesMenuFilter(it, filter, search) {
			continue
		}
		out = append(out, it.Localized(filter.Language))
	}
	return out, nil
}

func matchesMenuFilter(it models.MenuItem, filter models.MenuFilter, search string) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(it.Name), search) &&
		!strings.Contains(strings.ToLower(it.Description), search) {
		return false
	}
	if filter.Category != "" && !strings.EqualFold(filter.Category, "all") && it.Category != filter.Category {
		return false
	}
	switch filter.Availability {
	case models.AvailabilityAvailable:
		if it.CurrentAvailability() != models.AvailabilityAvailable {
			return false
		}
	case models.AvailabilityLimited:
		if it.CurrentAvailability() == models.AvailabilityOutOfStock {
			return false
		}
	}
	if filter.PopularOnly && !it.Popular {
		return false
	}
	return it.HasAllTags(filter.DietaryTags)
}

// GroupedItems groups the filtered listing by category, categories sorted.
func (s *menuServiceImpl) GroupedItems(ctx context.Context, filter models.MenuFilter) ([]models.MenuCategory, *ServiceError) {
	items, svcErr := s.ListItems(ctx, filter)
	if svcErr != nil {
		return nil, svcErr
	}

	byCategory := make(map[string][]models.MenuItem)
	for _, it := range items {
		category := it.Category
		if category == "" {
			category = otherCategory
		}
		byCategory[category] = append(byCategory[category], it)
	}

	groups := make([]models.MenuCategory, 0, len(byCategory))
	for category, its := range byCategory {
		groups = append(groups, models.MenuCategory{Category: category, Items: its})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Category < groups[j].Category })
	return groups, nil
}

func (s *menuServiceImpl) GetItem(ctx context.Context, id, lang string) (*models.MenuItem, *ServiceError) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Menu item not found")
		}
		s.logger.Error("Failed to load menu item", zap.String("menu_item_id", id), zap.Error(err))
		return nil, internal("Failed to load menu item")
	}
	localized := item.Localized(lang)
	return &localized, nil
}

// ImageURL returns a loadable URL for the item's image. Absolute URLs are
// returned as stored; bucket keys are presigned.
func (s *menuServiceImpl) ImageURL(ctx context.Context, id string) (string, *ServiceError) {
	item, svcErr := s.GetItem(ctx, id, "")
	if svcErr != nil {
		return "", svcErr
	}
	if item.Image == "" {
		return "", notFound("Menu item has no image")
	}
	if strings.HasPrefix(item.Image, "http://") || strings.HasPrefix(item.Image, "https://") {
		return item.Image, nil
	}
	if s.images == nil {
		return "", &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "Image storage not configured"}
	}

	url, err := s.images.PresignGet(ctx, item.Image)
	if err != nil {
		s.logger.Error("Failed to presign menu image", zap.String("menu_item_id", id), zap.Error(err))
		return "", internal("Failed to generate image URL")
	}
	return url, nil
}

// UploadImage stores a new image for the item and points the item at it.
// The returned key replaces any previous image; the old object is left in
// the bucket.
func (s *menuServiceImpl) UploadImage(ctx context.Context, id, contentType string, body io.Reader) (string, *ServiceError) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", badRequest("Image must be JPEG, PNG or WebP")
	}
	if s.uploads == nil {
		return "", &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "Image storage not configured"}
	}
	if _, svcErr := s.GetItem(ctx, id, ""); svcErr != nil {
		return "", svcErr
	}

	key := fmt.Sprintf("menu/%s/%s%s", id, uuid.NewString(), ext)
	if err := s.uploads.Upload(ctx, key, contentType, body); err != nil {
		s.logger.Error("Failed to upload menu image", zap.String("menu_item_id", id), zap.Error(err))
		return "", internal("Failed to upload image")
	}
	if err := s.repo.SetImage(ctx, id, key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", notFound("Menu item not found")
		}
		s.logger.Error("Failed to save menu image", zap.String("menu_item_id", id), zap.Error(err))
		return "", internal("Failed to save image")
	}

	s.logger.Info("Menu image uploaded", zap.String("menu_item_id", id), zap.String("key", key))
	return key, nil
}
