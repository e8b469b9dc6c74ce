package cron

import (
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"assetdesk_backend/internal/model"
	"assetdesk_backend/internal/portfolio"
	"assetdesk_backend/pkg/database"
	"assetdesk_backend/pkg/email"
)

func InitLeaseExpiryCron() {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		checkExpiringLeases()
	})

	if err != nil {
		log.Printf("Could not initialize lease expiry cron: %v", err)
		return
	}

	c.Start()
}

func checkExpiringLeases() {
	log.Println("Checking for expiring leases...")

	opsEmail := os.Getenv("OPS_EMAIL")
	if opsEmail == "" || email.GlobalEmailService == nil {
		log.Println("Lease expiry warnings skipped: no ops mailbox configured")
		return
	}

	var rents []model.Rent
	if err := database.GetDB().Find(&rents).Error; err != nil {
		log.Printf("Error fetching rents: %v", err)
		return
	}

	var properties []model.Property
	if err := database.GetDB().Find(&properties).Error; err != nil {
		log.Printf("Error fetching properties: %v", err)
		return
	}
	propertyNames := make(map[uint]string, len(properties))
	for _, p := range properties {
		propertyNames[p.ID] = p.Name
	}

	var proprietors []model.Proprietor
	if err := database.GetDB().Find(&proprietors).Error; err != nil {
		log.Printf("Error fetching proprietors: %v", err)
		return
	}
	proprietorNames := make(map[uint]string, len(proprietors))
	for _, p := range proprietors {
		proprietorNames[p.ID] = p.Name
	}

	warningDays := []int{30, 7}
	now := time.Now()

	for _, days := range warningDays {
		target := now.AddDate(0, 0, days).Format("2006-01-02")

		sent := 0
		for i := range rents {
			r := &rents[i]
			view := portfolio.LeaseViewAt(r, now)
			if view.EffectiveEnd == nil || view.EffectiveEnd.Format("2006-01-02") != target {
				continue
			}
			if view.Status != model.LeaseStatusActive {
				continue
			}

			propertyName := "(unlinked)"
			if r.PropertyID != nil {
				if name, ok := propertyNames[*r.PropertyID]; ok {
					propertyName = name
				}
			}

			counterparty := ""
			if id := r.CounterpartyID(); id != nil {
				counterparty = proprietorNames[*id]
			}

			contractNo := r.RentOutContractNo
			if r.Type == model.RentDirectionIn {
				contractNo = r.RentingContractNo
			}

			err := email.GlobalEmailService.SendLeaseExpiryWarning(
				opsEmail,
				propertyName,
				contractNo,
				counterparty,
				string(r.Type),
				*view.EffectiveEnd,
				days,
			)
			if err != nil {
				log.Printf("Error sending expiry warning for rent %d: %v", r.ID, err)
				continue
			}
			sent++
		}

		log.Printf("Sent %d lease expiry warnings for leases ending in %d days", sent, days)
	}
}
