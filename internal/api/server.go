package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JinuOffl/accountability-partner/internal/service"
)

type Server struct {
	mx              *chi.Mux
	userService     service.UserServiceI
	profileService  service.ProfileServiceI
	habitsService   service.HabitsServiceI
	trackingService service.TrackingServiceI
	paymentService  service.PaymentServiceI
	jwtService      JWTServiceI
}

type ServicesList struct {
	UserService     service.UserServiceI
	ProfileService  service.ProfileServiceI
	HabitsService   service.HabitsServiceI
	TrackingService service.TrackingServiceI
	PaymentService  service.PaymentServiceI
	JwtService      JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:              chi.NewMux(),
		userService:     servicesOptions.UserService,
		profileService:  servicesOptions.ProfileService,
		habitsService:   servicesOptions.HabitsService,
		trackingService: servicesOptions.TrackingService,
		paymentService:  servicesOptions.PaymentService,
		jwtService:      servicesOptions.JwtService,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Get("/me", s.GetMe)
			r.Put("/me/upi", s.UpdateUPI)
			r.Get("/friends/{id}", s.GetFriend)
			r.Post("/habits", s.CreateHabit)
			r.Get("/habits", s.GetHabits)
			r.Patch("/habits/{id}", s.UpdateHabit)
			r.Delete("/habits/{id}", s.DeleteHabit)
			r.Post("/habits/{id}/toggle", s.ToggleCompletion)
			r.Get("/habits/{id}/week", s.GetWeek)
			r.Get("/habits/{id}/tracking", s.GetTrackingRange)
			r.Get("/tracking", s.GetAllTracking)
			r.Get("/heatmap", s.GetHeatmap)
			r.Post("/payments/qr", s.GeneratePaymentQR)
		})
	})
}

func (s *Server) Handler() http.Handler {
	return s.mx
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.mx)
}
