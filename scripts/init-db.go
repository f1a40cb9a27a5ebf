package main

import (
	"fmt"
	"log"

	"pos_system/internal/config"
	"pos_system/internal/database"
	"pos_system/internal/models"
	"pos_system/internal/repository"
	"pos_system/internal/services"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Bill{},
		&models.BillItem{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Create tables with proper schema
	fmt.Println("Creating tables...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed default admin user
	fmt.Println("Creating default admin user...")
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, nil, 0)
	if _, err := authService.Register("admin", "admin123", string(models.Admin)); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created (username: admin, password: admin123)")
	}

	// Seed catalog categories
	fmt.Println("Seeding catalog...")
	categories := []models.Category{
		{Name: "Drinks"},
		{Name: "Food"},
		{Name: "Bakery"},
		{Name: "Desserts"},
	}
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			log.Printf("Warning: Failed to seed category %s: %v", categories[i].Name, err)
		}
	}

	// Seed sample products
	products := []models.Product{
		{Name: "Iced Coffee", Price: 2.50, CategoryID: categories[0].ID, ImageURL: "/images/iced-coffee.png"},
		{Name: "Thai Milk Tea", Price: 3.00, CategoryID: categories[0].ID, ImageURL: "/images/thai-milk-tea.png"},
		{Name: "Fried Rice", Price: 6.50, CategoryID: categories[1].ID, ImageURL: "/images/fried-rice.png"},
		{Name: "Pad Thai", Price: 7.00, CategoryID: categories[1].ID, ImageURL: "/images/pad-thai.png"},
		{Name: "Croissant", Price: 2.75, CategoryID: categories[2].ID, ImageURL: "/images/croissant.png"},
		{Name: "Mango Sticky Rice", Price: 4.50, CategoryID: categories[3].ID, ImageURL: "/images/mango-sticky-rice.png"},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			log.Printf("Warning: Failed to seed product %s: %v", products[i].Name, err)
		}
	}

	fmt.Println("Database initialization complete!")
}
