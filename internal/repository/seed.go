package repository

import (
	"time"

	"github.com/087pedyedkai/merch-shop/internal/domain"
)

// defaultCatalog returns the fixed set of college merchandise the shop
// starts with when its product store is empty.
func defaultCatalog() []domain.Product {
	now := time.Now().UTC()
	return []domain.Product{
		{
			ID:          "1",
			Name:        "College T-Shirt",
			Description: "Comfortable 100% cotton t-shirt with the college logo on the left chest.",
			Price:       350,
			Image:       "https://via.placeholder.com/300x300/3B82F6/FFFFFF?text=T-Shirt",
			Category:    "Apparel",
			Stock:       50,
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Name:        "College Logo Shoulder Bag",
			Description: "Black shoulder bag with the college logo. Roomy and durable, made for students.",
			Price:       450,
			Image:       "https://via.placeholder.com/300x300/1F2937/FFFFFF?text=Bag",
			Category:    "Bags",
			Stock:       30,
			CreatedAt:   now,
		},
		{
			ID:          "3",
			Name:        "College Tumbler",
			Description: "500ml stainless steel tumbler with the college logo. Keeps drinks at temperature.",
			Price:       250,
			Image:       "https://via.placeholder.com/300x300/10B981/FFFFFF?text=Tumbler",
			Category:    "Homeware",
			Stock:       25,
			CreatedAt:   now,
		},
		{
			ID:          "4",
			Name:        "College Cap",
			Description: "Adjustable navy cap with an embroidered college logo.",
			Price:       200,
			Image:       "https://via.placeholder.com/300x300/7C3AED/FFFFFF?text=Cap",
			Category:    "Apparel",
			Stock:       40,
			CreatedAt:   now,
		},
		{
			ID:          "5",
			Name:        "College Notebook",
			Description: "Hardcover notebook with the college logo and quality paper for note taking.",
			Price:       150,
			Image:       "https://via.placeholder.com/300x300/F59E0B/FFFFFF?text=Notebook",
			Category:    "Stationery",
			Stock:       60,
			CreatedAt:   now,
		},
		{
			ID:          "6",
			Name:        "College Logo Pen",
			Description: "Blue ballpoint pen with the college logo. Smooth writing, quality ink.",
			Price:       50,
			Image:       "https://via.placeholder.com/300x300/EF4444/FFFFFF?text=Pen",
			Category:    "Stationery",
			Stock:       100,
			CreatedAt:   now,
		},
	}
}

// defaultUsers returns the demo accounts seeded on first use so the
// storefront can be exercised without registering.
func defaultUsers() []domain.User {
	now := time.Now().UTC()
	return []domain.User{
		{
			ID:        "admin1",
			Name:      "Shop Administrator",
			Email:     "admin@merch.com",
			Password:  "admin123",
			Role:      domain.RoleAdmin,
			CreatedAt: now,
		},
		{
			ID:        "customer1",
			Name:      "Demo Customer",
			Email:     "customer@merch.com",
			Password:  "customer123",
			Role:      domain.RoleCustomer,
			CreatedAt: now,
		},
	}
}
