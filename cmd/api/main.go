// @title Accountability Partner API
// @description API for the habit-tracking app with peer penalty settlement
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/JinuOffl/accountability-partner/internal/api"
	"github.com/JinuOffl/accountability-partner/internal/repository"
	"github.com/JinuOffl/accountability-partner/internal/service"
	"github.com/JinuOffl/accountability-partner/pkg/cleanup"
	"github.com/JinuOffl/accountability-partner/pkg/config"
	jwtservice "github.com/JinuOffl/accountability-partner/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	usersRepo := repository.NewUsersRepo(&dbCfg)
	habitsRepo := repository.NewHabitsRepo(&dbCfg)
	trackingRepo := repository.NewTrackingRepo(&dbCfg)

	serv := api.New(&api.ServicesList{
		UserService:     service.NewUserService(usersRepo),
		ProfileService:  service.NewProfileService(usersRepo, habitsRepo, trackingRepo),
		HabitsService:   service.NewHabitsService(habitsRepo),
		TrackingService: service.NewTrackingService(habitsRepo, trackingRepo),
		PaymentService: service.NewPaymentService(
			&http.Client{Timeout: 15 * time.Second},
			cfg.GetStringDefault("QR_SERVICE_URL", service.DefaultQRServiceURL),
		),
		JwtService: jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
