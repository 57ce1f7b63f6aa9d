package handlers

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/prayag-camps/magh-mela-api/internal/calendar"
	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/httperr"
	"github.com/prayag-camps/magh-mela-api/internal/i18n"
	"github.com/prayag-camps/magh-mela-api/internal/logging"
	"github.com/prayag-camps/magh-mela-api/internal/models"
	"github.com/prayag-camps/magh-mela-api/internal/validation"
)

type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

type LangRequest struct {
	Lang string `query:"lang" doc:"en or hi; defaults to Accept-Language"`
}

// CampView is a camp plus its name and description in the requested
// language.
type CampView struct {
	models.Camp
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PujaView struct {
	models.PujaService
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CampListResponse struct {
	Body []CampView
}

type PujaListResponse struct {
	Body []PujaView
}

type BathingDatesRequest struct {
	Lang     string `query:"lang" doc:"en or hi"`
	Upcoming bool   `query:"upcoming" doc:"Only dates from today on"`
}

type BathingDatesResponse struct {
	Body []calendar.BathingDate
}

func (h *CatalogHandler) locale(ctx context.Context, lang string) i18n.Locale {
	if lang != "" {
		return i18n.Parse(lang)
	}
	return localeFrom(ctx)
}

func (h *CatalogHandler) HandleListCamps(ctx context.Context, input *LangRequest) (*CampListResponse, error) {
	var camps []models.Camp
	if err := h.db.WithContext(ctx).Order("price ASC, id ASC").Find(&camps).Error; err != nil {
		return nil, httperr.From(err)
	}

	loc := h.locale(ctx, input.Lang)
	views := make([]CampView, 0, len(camps))
	for _, c := range camps {
		views = append(views, CampView{
			Camp:        c,
			Name:        i18n.Localize(c.NameEn, c.NameHi, loc),
			Description: i18n.Localize(c.DescriptionEn, c.DescriptionHi, loc),
		})
	}
	return &CampListResponse{Body: views}, nil
}

func (h *CatalogHandler) HandleListPujas(ctx context.Context, input *LangRequest) (*PujaListResponse, error) {
	var pujas []models.PujaService
	if err := h.db.WithContext(ctx).Order("id ASC").Find(&pujas).Error; err != nil {
		return nil, httperr.From(err)
	}

	loc := h.locale(ctx, input.Lang)
	views := make([]PujaView, 0, len(pujas))
	for _, p := range pujas {
		views = append(views, PujaView{
			PujaService: p,
			Name:        i18n.Localize(p.NameEn, p.NameHi, loc),
			Description: i18n.Localize(p.DescriptionEn, p.DescriptionHi, loc),
		})
	}
	return &PujaListResponse{Body: views}, nil
}

func (h *CatalogHandler) HandleBathingDates(ctx context.Context, input *BathingDatesRequest) (*BathingDatesResponse, error) {
	loc := h.locale(ctx, input.Lang)
	if input.Upcoming {
		return &BathingDatesResponse{Body: calendar.Upcoming(time.Now(), loc)}, nil
	}
	return &BathingDatesResponse{Body: calendar.BathingDates(loc)}, nil
}

type CampRequest struct {
	Body validation.CampForm
}

type CampUpdateRequest struct {
	ID   uint `path:"id"`
	Body validation.CampForm
}

type CampResponse struct {
	Body models.Camp
}

type CatalogIDRequest struct {
	ID uint `path:"id"`
}

func (h *CatalogHandler) HandleCreateCamp(ctx context.Context, input *CampRequest) (*CampResponse, error) {
	var camp models.Camp
	if err := input.Body.Apply(&camp, false); err != nil {
		return nil, httperr.From(err)
	}
	if err := h.db.WithContext(ctx).Create(&camp).Error; err != nil {
		return nil, httperr.From(err)
	}
	logging.Info().Uint("camp_id", camp.ID).Msg("Camp created")
	return &CampResponse{Body: camp}, nil
}

func (h *CatalogHandler) HandleUpdateCamp(ctx context.Context, input *CampUpdateRequest) (*CampResponse, error) {
	var camp models.Camp
	if err := h.db.WithContext(ctx).First(&camp, input.ID).Error; err != nil {
		return nil, httperr.From(notFound("camp", err))
	}
	if err := input.Body.Apply(&camp, true); err != nil {
		return nil, httperr.From(err)
	}
	if err := h.db.WithContext(ctx).Save(&camp).Error; err != nil {
		return nil, httperr.From(err)
	}
	return &CampResponse{Body: camp}, nil
}

// HandleDeleteCamp removes the camp only. Bookings that reference it are
// left in place.
func (h *CatalogHandler) HandleDeleteCamp(ctx context.Context, input *CatalogIDRequest) (*MessageResponse, error) {
	res := h.db.WithContext(ctx).Delete(&models.Camp{}, input.ID)
	if res.Error != nil {
		return nil, httperr.From(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, httperr.From(domain.NotFoundError{Resource: "camp"})
	}
	logging.Info().Uint("camp_id", input.ID).Msg("Camp deleted")
	return message("Camp deleted"), nil
}

type PujaRequest struct {
	Body validation.PujaForm
}

type PujaUpdateRequest struct {
	ID   uint `path:"id"`
	Body validation.PujaForm
}

type PujaResponse struct {
	Body models.PujaService
}

func (h *CatalogHandler) HandleCreatePuja(ctx context.Context, input *PujaRequest) (*PujaResponse, error) {
	var puja models.PujaService
	if err := input.Body.Apply(&puja, false); err != nil {
		return nil, httperr.From(err)
	}
	if err := h.db.WithContext(ctx).Create(&puja).Error; err != nil {
		return nil, httperr.From(err)
	}
	return &PujaResponse{Body: puja}, nil
}

func (h *CatalogHandler) HandleUpdatePuja(ctx context.Context, input *PujaUpdateRequest) (*PujaResponse, error) {
	var puja models.PujaService
	if err := h.db.WithContext(ctx).First(&puja, input.ID).Error; err != nil {
		return nil, httperr.From(notFound("puja service", err))
	}
	if err := input.Body.Apply(&puja, true); err != nil {
		return nil, httperr.From(err)
	}
	if err := h.db.WithContext(ctx).Save(&puja).Error; err != nil {
		return nil, httperr.From(err)
	}
	return &PujaResponse{Body: puja}, nil
}

func (h *CatalogHandler) HandleDeletePuja(ctx context.Context, input *CatalogIDRequest) (*MessageResponse, error) {
	res := h.db.WithContext(ctx).Delete(&models.PujaService{}, input.ID)
	if res.Error != nil {
		return nil, httperr.From(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, httperr.From(domain.NotFoundError{Resource: "puja service"})
	}
	return message("Puja service deleted"), nil
}

func notFound(resource string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}
