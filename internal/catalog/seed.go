package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// SeedSource supplies the category set and initial products once at startup.
type SeedSource interface {
	Categories(ctx context.Context) ([]Category, error)
	Products(ctx context.Context) ([]Product, error)
}

// LoadMemStore builds a MemStore from src.
func LoadMemStore(ctx context.Context, src SeedSource) (*MemStore, error) {
	cats, err := src.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed categories: %w", err)
	}
	products, err := src.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed products: %w", err)
	}
	return NewMemStore(cats, products)
}

// StaticSeed is the built-in demo catalog.
type StaticSeed struct{}

func (StaticSeed) Categories(context.Context) ([]Category, error) {
	return []Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Furniture"},
		{ID: 3, Name: "Home & Kitchen"},
		{ID: 4, Name: "Sports & Outdoors"},
		{ID: 5, Name: "Books"},
	}, nil
}

func (StaticSeed) Products(context.Context) ([]Product, error) {
	return []Product{
		{
			ID:           1,
			Name:         "Wireless Bluetooth Headphones",
			Price:        decimal.RequireFromString("79.99"),
			Description:  "Premium quality wireless headphones with noise cancellation and 30-hour battery life. Perfect for music lovers and professionals.",
			Category:     "Electronics",
			CategoryID:   1,
			CategoryName: "Electronics",
			Stock:        45,
			ImageURL:     "/static/images/headphones.jpg",
			Rating:       4,
			ReviewCount:  128,
			SKU:          "ELEC-HEAD-001",
			Brand:        "AudioTech",
			Warranty:     "2 Years",
			ShippingInfo: "Free Shipping",
			RestockDate:  "2025-01-15",
			LastUpdated:  "2025-12-20",
			Specifications: []Spec{
				{Name: "Battery Life", Value: "30 hours"},
				{Name: "Bluetooth Version", Value: "5.0"},
				{Name: "Weight", Value: "250g"},
				{Name: "Color Options", Value: "Black, White, Blue"},
			},
			Reviews: []Review{
				{AuthorName: "John Smith", Date: "2025-12-01", Rating: 5, Content: "Amazing sound quality! The noise cancellation is superb.", VerifiedPurchase: true},
				{AuthorName: "Sarah Johnson", Date: "2025-11-28", Rating: 4, Content: "Great headphones, but a bit heavy for long sessions.", VerifiedPurchase: true},
			},
		},
		{
			ID:           2,
			Name:         "Smart Fitness Watch",
			Price:        decimal.RequireFromString("199.99"),
			Description:  "Track your fitness goals with this advanced smartwatch featuring heart rate monitoring, GPS, and water resistance.",
			Category:     "Electronics",
			CategoryID:   1,
			CategoryName: "Electronics",
			Stock:        23,
			ImageURL:     "/static/images/smartwatch.jpg",
			Rating:       5,
			ReviewCount:  89,
			SKU:          "ELEC-WATCH-002",
			Brand:        "FitPro",
			Warranty:     "1 Year",
			ShippingInfo: "Free Shipping",
			RestockDate:  "2025-01-10",
			LastUpdated:  "2025-12-18",
			Specifications: []Spec{
				{Name: "Display", Value: `1.4" AMOLED`},
				{Name: "Battery Life", Value: "7 days"},
				{Name: "Water Resistance", Value: "50m"},
				{Name: "Compatibility", Value: "iOS & Android"},
			},
			Reviews: []Review{
				{AuthorName: "Mike Davis", Date: "2025-12-05", Rating: 5, Content: "Perfect for tracking my workouts. Highly recommend!", VerifiedPurchase: true},
			},
		},
		{
			ID:           3,
			Name:         "Ergonomic Office Chair",
			Price:        decimal.RequireFromString("299.99"),
			Description:  "Comfortable ergonomic office chair with lumbar support, adjustable armrests, and breathable mesh back.",
			Category:     "Furniture",
			CategoryID:   2,
			CategoryName: "Furniture",
			Stock:        67,
			ImageURL:     "/static/images/office-chair.jpg",
			Rating:       4,
			ReviewCount:  245,
			SKU:          "FURN-CHAIR-003",
			Brand:        "ComfortSeating",
			Warranty:     "5 Years",
			ShippingInfo: "$15.00",
			RestockDate:  "2025-01-05",
			LastUpdated:  "2025-12-22",
			Specifications: []Spec{
				{Name: "Weight Capacity", Value: "300 lbs"},
				{Name: "Height Range", Value: "17-21 inches"},
				{Name: "Material", Value: "Mesh & Steel"},
				{Name: "Assembly Required", Value: "Yes"},
			},
			Reviews: []Review{
				{AuthorName: "Emily Chen", Date: "2025-12-10", Rating: 4, Content: "Very comfortable for long work hours. Assembly was easy.", VerifiedPurchase: true},
				{AuthorName: "Robert Wilson", Date: "2025-12-08", Rating: 5, Content: "Best office chair I have ever owned!", VerifiedPurchase: true},
			},
		},
		{
			ID:           4,
			Name:         "Stainless Steel Water Bottle",
			Price:        decimal.RequireFromString("24.99"),
			Description:  "Insulated stainless steel water bottle keeps drinks cold for 24 hours or hot for 12 hours. BPA-free and eco-friendly.",
			Category:     "Home & Kitchen",
			CategoryID:   3,
			CategoryName: "Home & Kitchen",
			Stock:        156,
			ImageURL:     "/static/images/water-bottle.jpg",
			Rating:       5,
			ReviewCount:  312,
			SKU:          "HOME-BOTTLE-004",
			Brand:        "HydroMax",
			Warranty:     "Lifetime",
			ShippingInfo: "Free Shipping",
			RestockDate:  "2025-01-20",
			LastUpdated:  "2025-12-25",
			Specifications: []Spec{
				{Name: "Capacity", Value: "32 oz"},
				{Name: "Material", Value: "Stainless Steel"},
				{Name: "Insulation", Value: "Double-walled"},
				{Name: "Dishwasher Safe", Value: "No"},
			},
			Reviews: []Review{
				{AuthorName: "Lisa Anderson", Date: "2025-12-15", Rating: 5, Content: "Keeps my water ice cold all day long!", VerifiedPurchase: true},
			},
		},
		{
			ID:           5,
			Name:         "Professional Camera Kit",
			Price:        decimal.RequireFromString("1299.99"),
			Description:  "Complete camera kit with 24MP sensor, multiple lenses, tripod, and carrying case. Perfect for professional photographers.",
			Category:     "Electronics",
			CategoryID:   1,
			CategoryName: "Electronics",
			Stock:        8,
			ImageURL:     "/static/images/camera.jpg",
			Rating:       5,
			ReviewCount:  67,
			SKU:          "ELEC-CAM-005",
			Brand:        "PhotoPro",
			Warranty:     "3 Years",
			ShippingInfo: "Free Express Shipping",
			RestockDate:  "2025-02-01",
			LastUpdated:  "2025-12-27",
			Specifications: []Spec{
				{Name: "Sensor", Value: "24MP CMOS"},
				{Name: "Video", Value: "4K @ 60fps"},
				{Name: "ISO Range", Value: "100-25600"},
				{Name: "Included Lenses", Value: "18-55mm, 55-200mm"},
			},
			Reviews: []Review{
				{AuthorName: "David Martinez", Date: "2025-12-12", Rating: 5, Content: "Outstanding image quality and build. Worth every penny!", VerifiedPurchase: true},
			},
		},
	}, nil
}
