package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/domain"
)

// Password hashes never leave the service, so domain accounts are rendered
// through these view maps instead of being serialized directly.

func adminView(admin *domain.AdminAccount) fiber.Map {
	return fiber.Map{
		"id":            admin.ID,
		"firstname":     admin.Firstname,
		"middlename":    admin.Middlename,
		"lastname":      admin.Lastname,
		"personalEmail": admin.PersonalEmail,
		"position":      admin.Position,
		"createdAt":     admin.CreatedAt,
		"updatedAt":     admin.UpdatedAt,
	}
}

func adminViews(admins []*domain.AdminAccount) []fiber.Map {
	views := make([]fiber.Map, 0, len(admins))
	for _, admin := range admins {
		views = append(views, adminView(admin))
	}
	return views
}

func purchaserView(purchaser *domain.Purchaser) fiber.Map {
	return fiber.Map{
		"id":              purchaser.ID,
		"firstname":       purchaser.Firstname,
		"middlename":      purchaser.Middlename,
		"lastname":        purchaser.Lastname,
		"personalEmail":   purchaser.PersonalEmail,
		"personalPhone":   purchaser.PersonalPhone,
		"company":         purchaser.Company,
		"corporateEmail":  purchaser.CorporateEmail,
		"corporatePhone":  purchaser.CorporatePhone,
		"fieldOfActivity": purchaser.FieldOfActivity,
		"position":        purchaser.Position,
		"createdAt":       purchaser.CreatedAt,
		"updatedAt":       purchaser.UpdatedAt,
	}
}

func purchaserViews(purchasers []*domain.Purchaser) []fiber.Map {
	views := make([]fiber.Map, 0, len(purchasers))
	for _, purchaser := range purchasers {
		views = append(views, purchaserView(purchaser))
	}
	return views
}
