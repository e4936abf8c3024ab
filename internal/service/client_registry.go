package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"gorm.io/gorm"
)

// ClientAttrs are the optional details used to create a client or fill
// the blanks of an existing one.
type ClientAttrs struct {
	FullName  string
	FirstName string
	LastName  string
	Phone     string
	DNI       string
	Address   string
	UserID    *string
	HotelID   *uint
}

// names resolves first/last from the explicit fields, falling back to
// splitting FullName on the first space.
func (a ClientAttrs) names() (string, string) {
	first, last := strings.TrimSpace(a.FirstName), strings.TrimSpace(a.LastName)
	if first != "" || last != "" {
		return first, last
	}
	parts := strings.SplitN(strings.TrimSpace(a.FullName), " ", 2)
	first = parts[0]
	if len(parts) == 2 {
		last = strings.TrimSpace(parts[1])
	}
	return first, last
}

type ClientRegistry interface {
	// FindOrCreate resolves a client by email. It runs on tx when tx is
	// non-nil so it can join the caller's transaction.
	FindOrCreate(ctx context.Context, tx *gorm.DB, email string, attrs ClientAttrs) (*models.Client, bool, error)
	Get(ctx context.Context, id uint) (*models.Client, error)
	List(ctx context.Context, hotelID *uint) ([]models.Client, error)
}

type clientRegistry struct {
	clientRepo repository.ClientRepository
}

func NewClientRegistry(clientRepo repository.ClientRepository) ClientRegistry {
	return &clientRegistry{clientRepo: clientRepo}
}

func (r *clientRegistry) FindOrCreate(ctx context.Context, tx *gorm.DB, email string, attrs ClientAttrs) (*models.Client, bool, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, false, ErrInvalidEmail
	}
	if tx == nil {
		tx = r.clientRepo.GetDB()
	}

	first, last := attrs.names()

	existing, err := r.clientRepo.FindByEmail(ctx, tx, email)
	switch {
	case err == nil:
		return r.backfill(ctx, tx, existing, first, last, attrs)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, err
	}

	client := &models.Client{
		Email:     email,
		UserID:    attrs.UserID,
		HotelID:   attrs.HotelID,
		FirstName: first,
		LastName:  last,
		Phone:     attrs.Phone,
		DNI:       attrs.DNI,
		Address:   attrs.Address,
		Active:    true,
	}
	inserted, err := r.clientRepo.CreateIfAbsent(ctx, tx, client)
	if err != nil {
		return nil, false, err
	}
	if inserted {
		return client, true, nil
	}

	// A concurrent request registered the same email after our lookup.
	existing, err = r.clientRepo.FindByEmail(ctx, tx, email)
	if err != nil {
		return nil, false, err
	}
	return r.backfill(ctx, tx, existing, first, last, attrs)
}

// backfill fills blank fields of existing from the incoming details.
// Non-empty stored values always win.
func (r *clientRegistry) backfill(ctx context.Context, tx *gorm.DB, existing *models.Client, first, last string, attrs ClientAttrs) (*models.Client, bool, error) {
	fields := map[string]any{}
	fill := func(column, current, incoming string, set func(string)) {
		if current == "" && incoming != "" {
			fields[column] = incoming
			set(incoming)
		}
	}
	fill("first_name", existing.FirstName, first, func(v string) { existing.FirstName = v })
	fill("last_name", existing.LastName, last, func(v string) { existing.LastName = v })
	fill("phone", existing.Phone, attrs.Phone, func(v string) { existing.Phone = v })
	fill("dni", existing.DNI, attrs.DNI, func(v string) { existing.DNI = v })
	fill("address", existing.Address, attrs.Address, func(v string) { existing.Address = v })
	if existing.UserID == nil && attrs.UserID != nil {
		fields["user_id"] = *attrs.UserID
		existing.UserID = attrs.UserID
	}
	if existing.HotelID == nil && attrs.HotelID != nil {
		fields["hotel_id"] = *attrs.HotelID
		existing.HotelID = attrs.HotelID
	}
	if len(fields) > 0 {
		if err := r.clientRepo.UpdateFields(ctx, tx, existing.ID, fields); err != nil {
			return nil, false, err
		}
	}
	return existing, false, nil
}

func (r *clientRegistry) Get(ctx context.Context, id uint) (*models.Client, error) {
	client, err := r.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrClientNotFound)
	}
	return client, nil
}

func (r *clientRegistry) List(ctx context.Context, hotelID *uint) ([]models.Client, error) {
	return r.clientRepo.FindAll(ctx, hotelID)
}
