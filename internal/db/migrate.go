package db

import (
	"payment_point/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Seed data for the service catalog
var seedServices = []domain.Service{
	{ServiceCode: "PAJAK", ServiceName: "Pajak PBB", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 40000},
	{ServiceCode: "PLN", ServiceName: "Listrik", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 10000},
	{ServiceCode: "PDAM", ServiceName: "PDAM Berlangganan", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 40000},
	{ServiceCode: "PULSA", ServiceName: "Pulsa", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 40000},
	{ServiceCode: "PGN", ServiceName: "PGN Berlangganan", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 50000},
	{ServiceCode: "MUSIK", ServiceName: "Musik Berlangganan", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 50000},
	{ServiceCode: "TV", ServiceName: "TV Berlangganan", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 50000},
	{ServiceCode: "PAKET_DATA", ServiceName: "Paket data", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 50000},
	{ServiceCode: "VOUCHER_GAME", ServiceName: "Voucher Game", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 100000},
	{ServiceCode: "VOUCHER_MAKANAN", ServiceName: "Voucher Makanan", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 100000},
	{ServiceCode: "QURBAN", ServiceName: "Qurban", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 200000},
	{ServiceCode: "ZAKAT", ServiceName: "Zakat", ServiceIcon: "https://nutech-integrasi.app/dummy.jpg", ServiceTariff: 300000},
}

// Seed data for banners
var seedBanners = []domain.Banner{
	{BannerName: "Banner 1", BannerImage: "https://nutech-integrasi.app/dummy.jpg", Description: "Lerem Ipsum Dolor sit amet"},
	{BannerName: "Banner 2", BannerImage: "https://nutech-integrasi.app/dummy.jpg", Description: "Lerem Ipsum Dolor sit amet"},
	{BannerName: "Banner 3", BannerImage: "https://nutech-integrasi.app/dummy.jpg", Description: "Lerem Ipsum Dolor sit amet"},
	{BannerName: "Banner 4", BannerImage: "https://nutech-integrasi.app/dummy.jpg", Description: "Lerem Ipsum Dolor sit amet"},
	{BannerName: "Banner 5", BannerImage: "https://nutech-integrasi.app/dummy.jpg", Description: "Lerem Ipsum Dolor sit amet"},
}

// Migrate performs automatic migration for the database schema and seeds the
// service catalog and banners if they are empty
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.User{}, &domain.Balance{}, &domain.Transaction{}, &domain.Service{}, &domain.Banner{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	// Seed services if the catalog is empty
	var serviceCount int64
	db.Model(&domain.Service{}).Count(&serviceCount)
	if serviceCount == 0 {
		if err := db.Create(&seedServices).Error; err != nil {
			logrus.Fatalf("service seed failed: %v", err) // Log fatal error if seeding fails
		}
		logrus.Infof("Seeded %d services.", len(seedServices)) // Log seeded services
	}
	// Seed banners if none exist
	var bannerCount int64
	db.Model(&domain.Banner{}).Count(&bannerCount)
	if bannerCount == 0 {
		if err := db.Create(&seedBanners).Error; err != nil {
			logrus.Fatalf("banner seed failed: %v", err) // Log fatal error if seeding fails
		}
		logrus.Infof("Seeded %d banners.", len(seedBanners)) // Log seeded banners
	}
	logrus.Info("Migration completed.") // Log successful migration
}
