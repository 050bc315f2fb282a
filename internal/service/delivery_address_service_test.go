package service

import (
	"errors"
	"testing"

	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/repository"
)

func TestCreateAddressDefaultFlagExclusive(t *testing.T) {
	db := setupServiceTestDB(t, "address_default")
	svc := NewDeliveryAddressService(repository.NewDeliveryAddressRepository(db))

	first, err := svc.Create(1, DeliveryAddressInput{
		RecipientName: "Alice",
		Address:       "1 Main St",
		IsDefault:     true,
	})
	if err != nil {
		t.Fatalf("create first address failed: %v", err)
	}
	second, err := svc.Create(1, DeliveryAddressInput{
		RecipientName: "Alice",
		Address:       "2 Oak Ave",
		IsDefault:     true,
	})
	if err != nil {
		t.Fatalf("create second address failed: %v", err)
	}
	if !second.IsDefault {
		t.Fatalf("expected second address default")
	}

	var reloaded models.DeliveryAddress
	if err := db.First(&reloaded, first.ID).Error; err != nil {
		t.Fatalf("reload first address failed: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatalf("expected first address default cleared")
	}
}

func TestCreateAddressValidation(t *testing.T) {
	db := setupServiceTestDB(t, "address_validate")
	svc := NewDeliveryAddressService(repository.NewDeliveryAddressRepository(db))

	if _, err := svc.Create(1, DeliveryAddressInput{RecipientName: " ", Address: "1 Main St"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank recipient, got: %v", err)
	}
	if _, err := svc.Create(1, DeliveryAddressInput{RecipientName: "Alice", Address: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank address, got: %v", err)
	}
	if _, err := svc.Create(0, DeliveryAddressInput{RecipientName: "Alice", Address: "1 Main St"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero user, got: %v", err)
	}
}

func TestUpdateAndDeleteAddressOwnership(t *testing.T) {
	db := setupServiceTestDB(t, "address_ownership")
	svc := NewDeliveryAddressService(repository.NewDeliveryAddressRepository(db))

	address, err := svc.Create(1, DeliveryAddressInput{RecipientName: "Alice", Address: "1 Main St"})
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}

	if _, err := svc.Update(2, address.ID, DeliveryAddressInput{RecipientName: "Mallory", Address: "9 Elm St"}); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected not found for other user, got: %v", err)
	}

	updated, err := svc.Update(1, address.ID, DeliveryAddressInput{RecipientName: "Alice B", Address: " 3 Pine Rd ", PostalCode: "90210"})
	if err != nil {
		t.Fatalf("update address failed: %v", err)
	}
	if updated.Address != "3 Pine Rd" {
		t.Fatalf("expected trimmed address, got %q", updated.Address)
	}
	if updated.PostalCode != "90210" {
		t.Fatalf("expected postal code saved, got %q", updated.PostalCode)
	}

	if err := svc.Delete(2, address.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected delete blocked for other user, got: %v", err)
	}
	if err := svc.Delete(1, address.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(1, address.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected not found after delete, got: %v", err)
	}
}
