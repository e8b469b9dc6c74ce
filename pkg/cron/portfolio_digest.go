// pkg/cron/portfolio_digest.go
package cron

import (
	"log"
	"os"

	"github.com/robfig/cron/v3"

	"assetdesk_backend/internal/model"
	"assetdesk_backend/internal/portfolio"
	"assetdesk_backend/pkg/database"
	"assetdesk_backend/pkg/email"
)

func InitPortfolioDigestCron() {
	c := cron.New()

	// Her hafta Pazar günü saat 20:00'de
	_, err := c.AddFunc("0 20 * * 0", func() {
		sendPortfolioDigest("Weekly")
	})

	// Her ayın 1'i saat 20:00'de
	_, err = c.AddFunc("0 20 1 * *", func() {
		sendPortfolioDigest("Monthly")
	})

	if err != nil {
		log.Printf("Could not initialize portfolio digest cron: %v", err)
		return
	}

	c.Start()
}

func sendPortfolioDigest(period string) {
	opsEmail := os.Getenv("OPS_EMAIL")
	if opsEmail == "" || email.GlobalEmailService == nil {
		log.Println("Portfolio digest skipped: no ops mailbox configured")
		return
	}

	var properties []model.Property
	if err := database.GetDB().Find(&properties).Error; err != nil {
		log.Printf("Error fetching properties for digest: %v", err)
		return
	}
	var proprietors []model.Proprietor
	if err := database.GetDB().Find(&proprietors).Error; err != nil {
		log.Printf("Error fetching proprietors for digest: %v", err)
		return
	}
	var rents []model.Rent
	if err := database.GetDB().Find(&rents).Error; err != nil {
		log.Printf("Error fetching rents for digest: %v", err)
		return
	}

	stats := portfolio.ComputeDashboardStats(properties, proprietors, rents)

	err := email.GlobalEmailService.SendPortfolioDigest(opsEmail, period, email.PortfolioDigestData{
		TotalProperties:  stats.TotalProperties,
		TotalProprietors: stats.TotalProprietors,
		RentingLeases:    stats.RentingLeases,
		ExpiredLeases:    stats.ExpiredLeases,
		TotalIncome:      stats.TotalIncome,
		TotalExpenses:    stats.TotalExpenses,
		NetProfit:        stats.NetProfit,
	})
	if err != nil {
		log.Printf("Error sending portfolio digest: %v", err)
		return
	}

	log.Printf("Sent %s portfolio digest to %s", period, opsEmail)
}
