package mail_fx

import (
	"log"
	"os"
	"strconv"

	"go.uber.org/fx"

	"github.com/Green254/TaskPulse/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.IMailService {
	port := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			port = parsed
		}
	}

	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "no-reply@taskpulse.app"
	}
	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	cfg := services.SMTPConfig{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       from,
		FromName:   "TaskPulse",
		UseSSL:     port == 465,
		RequireTLS: true,

		AppName:    "TaskPulse",
		AppBaseURL: baseURL,
	}

	mailService, err := services.NewSMTPMailService(cfg)
	if err != nil {
		log.Printf("Failed to initialize SMTP mail service: %v", err)
	}
	return mailService
}
