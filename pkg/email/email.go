package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type WelcomeEmailData struct {
	Name string
}

type LeaseExpiryWarningData struct {
	PropertyName string
	ContractNo   string
	Counterparty string
	Direction    string
	DaysLeft     int
	ExpiryDate   time.Time
}

type PortfolioDigestData struct {
	Period           string
	TotalProperties  int
	TotalProprietors int
	RentingLeases    int
	ExpiredLeases    int
	TotalIncome      float64
	TotalExpenses    float64
	NetProfit        float64
	GeneratedAt      time.Time
}

func NewEmailService(apiKey string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      "AssetDesk <noreply@assetdesk.app>",
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("Resend API error: Status: %d, Body: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	return nil
}

// Email sending methods
func (s *EmailService) SendWelcomeEmail(email, name string) error {
	data := WelcomeEmailData{
		Name: name,
	}
	return s.sendTemplateEmail(email, "Welcome to AssetDesk", "welcome.html", data)
}

func (s *EmailService) SendLeaseExpiryWarning(
	email, propertyName, contractNo, counterparty, direction string,
	expiryDate time.Time,
	daysLeft int,
) error {
	data := LeaseExpiryWarningData{
		PropertyName: propertyName,
		ContractNo:   contractNo,
		Counterparty: counterparty,
		Direction:    direction,
		DaysLeft:     daysLeft,
		ExpiryDate:   expiryDate,
	}
	return s.sendTemplateEmail(
		email,
		fmt.Sprintf("Lease Expires in %d Days ⚠️", daysLeft),
		"lease_expiry_warning.html",
		data,
	)
}

func (s *EmailService) SendPortfolioDigest(email, period string, digest PortfolioDigestData) error {
	digest.Period = period
	digest.GeneratedAt = time.Now()
	return s.sendTemplateEmail(
		email,
		fmt.Sprintf("Your %s Portfolio Summary 📊", period),
		"portfolio_digest.html",
		digest,
	)
}
