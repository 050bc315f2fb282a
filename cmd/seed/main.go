package main

import (
	"github.com/shopspring/decimal"

	"github.com/atelier-shop/internal/config"
	"github.com/atelier-shop/internal/logger"
	"github.com/atelier-shop/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		stdLog.Fatalf("Failed to init default admin: %v", err)
	}

	// 演示分类
	categories := []models.Category{
		{Slug: "electronics", Name: "Electronics", Description: "Phones, audio and smart devices", SortOrder: 100},
		{Slug: "accessories", Name: "Accessories", Description: "Chargers, cables and small gear", SortOrder: 90},
		{Slug: "lifestyle", Name: "Lifestyle", Description: "Bags, bottles and daily essentials", SortOrder: 80},
	}
	categoryIDs := map[string]uint{}
	for i := range categories {
		category := categories[i]
		var existing models.Category
		if err := models.DB.Where("slug = ?", category.Slug).First(&existing).Error; err == nil {
			categoryIDs[category.Slug] = existing.ID
			continue
		}
		if err := models.DB.Create(&category).Error; err != nil {
			stdLog.Fatalf("Failed to seed category %s: %v", category.Slug, err)
		}
		categoryIDs[category.Slug] = category.ID
	}

	originalHeadphone := models.NewMoneyFromDecimal(decimal.NewFromFloat(129.99))

	// 演示商品
	products := []models.Product{
		{
			CategoryID:    categoryIDs["electronics"],
			Slug:          "wireless-headphones",
			Name:          "Wireless Headphones",
			Description:   "Over-ear headphones with active noise cancelling and 30h battery.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			OriginalPrice: &originalHeadphone,
			ImageURL:      "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800",
			StockQuantity: 25,
			IsAvailable:   true,
			SortOrder:     100,
		},
		{
			CategoryID:    categoryIDs["electronics"],
			Slug:          "smart-speaker",
			Name:          "Smart Speaker",
			Description:   "Voice controlled speaker with room-filling sound.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(59.90)),
			ImageURL:      "https://images.unsplash.com/photo-1512446816042-444d641267d4?w=800",
			StockQuantity: 40,
			IsAvailable:   true,
			SortOrder:     95,
		},
		{
			CategoryID:    categoryIDs["accessories"],
			Slug:          "portable-charger",
			Name:          "Portable Charger",
			Description:   "20000mAh power bank with fast charge for two devices.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(49.99)),
			ImageURL:      "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800",
			StockQuantity: 60,
			IsAvailable:   true,
			SortOrder:     90,
		},
		{
			CategoryID:    categoryIDs["accessories"],
			Slug:          "usb-c-cable",
			Name:          "USB-C Cable 2m",
			Description:   "Braided USB-C to USB-C cable rated for 100W.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50)),
			ImageURL:      "https://images.unsplash.com/photo-1588508065123-287b28e013da?w=800",
			StockQuantity: 200,
			IsAvailable:   true,
			SortOrder:     85,
		},
		{
			CategoryID:    categoryIDs["lifestyle"],
			Slug:          "backpack",
			Name:          "Multi-function Backpack",
			Description:   "Waterproof backpack with laptop sleeve and USB port.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(79.99)),
			ImageURL:      "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800",
			StockQuantity: 15,
			IsAvailable:   true,
			SortOrder:     80,
		},
		{
			CategoryID:    categoryIDs["lifestyle"],
			Slug:          "sold-out-bottle",
			Name:          "Insulated Bottle",
			Description:   "Keeps drinks cold for 24h. Currently out of stock.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(24.90)),
			ImageURL:      "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=800",
			StockQuantity: 0,
			IsAvailable:   true,
			SortOrder:     70,
		},
	}
	productIDs := map[string]uint{}
	for i := range products {
		product := products[i]
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err == nil {
			productIDs[product.Slug] = existing.ID
			continue
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Fatalf("Failed to seed product %s: %v", product.Slug, err)
		}
		productIDs[product.Slug] = product.ID
	}

	// 演示规格（背包分尺寸售卖）
	variants := []models.ProductVariant{
		{ProductID: productIDs["backpack"], Size: "20L", SKU: "BP-20L", StockQuantity: 8, IsAvailable: true},
		{ProductID: productIDs["backpack"], Size: "30L", SKU: "BP-30L", StockQuantity: 7, IsAvailable: true},
	}
	for i := range variants {
		variant := variants[i]
		var existing models.ProductVariant
		if err := models.DB.Where("sku = ?", variant.SKU).First(&existing).Error; err == nil {
			continue
		}
		if err := models.DB.Create(&variant).Error; err != nil {
			stdLog.Fatalf("Failed to seed variant %s: %v", variant.SKU, err)
		}
	}

	stdLog.Printf("Seed completed: %d categories, %d products, %d variants", len(categories), len(products), len(variants))
}
