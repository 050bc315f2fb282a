package service

import (
	"errors"
	"testing"

	"github.com/atelier-shop/internal/models"
	"github.com/atelier-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestCatalogServices(db *gorm.DB) (*ProductService, *CategoryService) {
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	return NewProductService(productRepo, categoryRepo), NewCategoryService(categoryRepo)
}

func TestCreateProductRequiresCategory(t *testing.T) {
	db := setupServiceTestDB(t, "product_category")
	productSvc, categorySvc := newTestCatalogServices(db)

	input := ProductInput{
		CategoryID:  999,
		Slug:        "gadget",
		Name:        "Gadget",
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("19.99")),
		IsAvailable: true,
	}
	if _, err := productSvc.Create(input); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got: %v", err)
	}

	category, err := categorySvc.Create(CreateCategoryInput{Slug: "gadgets", Name: "Gadgets"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	input.CategoryID = category.ID
	product, err := productSvc.Create(input)
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.Slug != "gadget" {
		t.Fatalf("unexpected product: %+v", product)
	}

	// slug 冲突
	if _, err := productSvc.Create(input); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected slug exists, got: %v", err)
	}
}

func TestGetProductBySlugRespectsAvailability(t *testing.T) {
	db := setupServiceTestDB(t, "product_slug")
	productSvc, categorySvc := newTestCatalogServices(db)

	category, err := categorySvc.Create(CreateCategoryInput{Slug: "misc", Name: "Misc"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if _, err := productSvc.Create(ProductInput{
		CategoryID: category.ID,
		Slug:       "hidden",
		Name:       "Hidden Item",
		Price:      models.NewMoneyFromDecimal(decimal.RequireFromString("5.00")),
	}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if _, err := productSvc.GetBySlug("hidden", true); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected unavailable product hidden from public, got: %v", err)
	}
	if _, err := productSvc.GetBySlug("hidden", false); err != nil {
		t.Fatalf("expected admin lookup to find product, got: %v", err)
	}
	if _, err := productSvc.GetBySlug("missing", false); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found, got: %v", err)
	}
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	db := setupServiceTestDB(t, "category_delete")
	productSvc, categorySvc := newTestCatalogServices(db)

	category, err := categorySvc.Create(CreateCategoryInput{Slug: "audio", Name: "Audio"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product, err := productSvc.Create(ProductInput{
		CategoryID:  category.ID,
		Slug:        "speaker",
		Name:        "Speaker",
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("60.00")),
		IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := categorySvc.Delete(category.ID); !errors.Is(err, ErrCategoryHasProducts) {
		t.Fatalf("expected category has products, got: %v", err)
	}
	if err := productSvc.Delete(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := categorySvc.Delete(category.ID); err != nil {
		t.Fatalf("delete empty category failed: %v", err)
	}
	if err := categorySvc.Delete(category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected not found after delete, got: %v", err)
	}
}

func TestCategorySlugConflictOnUpdate(t *testing.T) {
	db := setupServiceTestDB(t, "category_slug")
	_, categorySvc := newTestCatalogServices(db)

	first, err := categorySvc.Create(CreateCategoryInput{Slug: "books", Name: "Books"})
	if err != nil {
		t.Fatalf("create first category failed: %v", err)
	}
	second, err := categorySvc.Create(CreateCategoryInput{Slug: "games", Name: "Games"})
	if err != nil {
		t.Fatalf("create second category failed: %v", err)
	}

	if _, err := categorySvc.Update(second.ID, CreateCategoryInput{Slug: "books", Name: "Games"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected slug exists on update, got: %v", err)
	}
	if _, err := categorySvc.Update(first.ID, CreateCategoryInput{Slug: "books", Name: "Books & More"}); err != nil {
		t.Fatalf("expected same-slug self update allowed, got: %v", err)
	}
}
