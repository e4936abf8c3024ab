package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"gorm.io/gorm"
)

type CreateHotelInput struct {
	Slug    string
	Name    string
	Email   string
	Phone   string
	Address string
	Plan    models.Plan
}

type TenantService interface {
	CreateHotel(ctx context.Context, in CreateHotelInput) (*models.Hotel, error)
	GetHotel(ctx context.Context, id uint) (*models.Hotel, error)
	ListHotels(ctx context.Context) ([]models.Hotel, error)
	// ChangeSubscription is the only way subscription_status changes, and
	// it always re-derives is_blocked in the same write.
	ChangeSubscription(ctx context.Context, hotelID uint, status models.SubscriptionStatus, plan *models.Plan) (*models.Hotel, error)
}

type tenantService struct {
	hotelRepo repository.HotelRepository
	trialDays int
	now       func() time.Time
}

func NewTenantService(hotelRepo repository.HotelRepository, trialDays int) TenantService {
	return &tenantService{hotelRepo: hotelRepo, trialDays: trialDays, now: time.Now}
}

func (s *tenantService) CreateHotel(ctx context.Context, in CreateHotelInput) (*models.Hotel, error) {
	plan := in.Plan
	if plan == "" {
		plan = models.PlanStarter
	}
	if !plan.Valid() {
		return nil, fmt.Errorf("%w: plan %q", ErrInvalidSubscription, plan)
	}

	trialUntil := s.now().AddDate(0, 0, s.trialDays)
	hotel := &models.Hotel{
		Slug:               strings.ToLower(strings.TrimSpace(in.Slug)),
		Name:               in.Name,
		Email:              in.Email,
		Phone:              in.Phone,
		Address:            in.Address,
		Plan:               plan,
		SubscriptionStatus: models.SubscriptionTrial,
		TrialUntil:         &trialUntil,
	}
	hotel.SyncBlockFromSubscription()

	if err := s.hotelRepo.Create(ctx, s.hotelRepo.GetDB(), hotel); err != nil {
		return nil, err
	}
	log.Printf("[TenantService] onboarded hotel %d (%s) on %s trial until %s",
		hotel.ID, hotel.Slug, hotel.Plan, trialUntil.Format(models.DateLayout))
	return hotel, nil
}

func (s *tenantService) GetHotel(ctx context.Context, id uint) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrHotelNotFound)
	}
	return hotel, nil
}

func (s *tenantService) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	return s.hotelRepo.FindAll(ctx)
}

func (s *tenantService) ChangeSubscription(ctx context.Context, hotelID uint, status models.SubscriptionStatus, plan *models.Plan) (*models.Hotel, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidSubscription, status)
	}
	if plan != nil && !plan.Valid() {
		return nil, fmt.Errorf("%w: plan %q", ErrInvalidSubscription, *plan)
	}

	var result *models.Hotel
	err := s.hotelRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hotel, err := s.hotelRepo.FindByIDForUpdate(ctx, tx, hotelID)
		if err != nil {
			return notFound(err, ErrHotelNotFound)
		}

		hotel.SubscriptionStatus = status
		if plan != nil {
			hotel.Plan = *plan
		}
		hotel.SyncBlockFromSubscription()

		if err := s.hotelRepo.UpdateSubscription(ctx, tx, hotel); err != nil {
			return err
		}
		result = hotel
		return nil
	})
	if err != nil {
		return nil, classifyStorageError(err)
	}

	log.Printf("[TenantService] hotel %d subscription=%s plan=%s blocked=%t",
		result.ID, result.SubscriptionStatus, result.Plan, result.IsBlocked)
	return result, nil
}
