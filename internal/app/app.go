// Package app assembles stores, services and the HTTP router from config.
package app

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-dashboard/internal/config"
	appointmentHandler "github.com/jwalitptl/clinic-dashboard/internal/handler/appointment"
	auditHandler "github.com/jwalitptl/clinic-dashboard/internal/handler/audit"
	contactHandler "github.com/jwalitptl/clinic-dashboard/internal/handler/contact"
	dashboardHandler "github.com/jwalitptl/clinic-dashboard/internal/handler/dashboard"
	documentHandler "github.com/jwalitptl/clinic-dashboard/internal/handler/document"
	"github.com/jwalitptl/clinic-dashboard/internal/handler/health"
	patientHandler "github.com/jwalitptl/clinic-dashboard/internal/handler/patient"
	prometheusHandler "github.com/jwalitptl/clinic-dashboard/internal/handler/prometheus"
	radiographyHandler "github.com/jwalitptl/clinic-dashboard/internal/handler/radiography"
	scheduleHandler "github.com/jwalitptl/clinic-dashboard/internal/handler/schedule"
	settingsHandler "github.com/jwalitptl/clinic-dashboard/internal/handler/settings"
	treatmentHandler "github.com/jwalitptl/clinic-dashboard/internal/handler/treatment"
	"github.com/jwalitptl/clinic-dashboard/internal/middleware"
	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository/memory"
	"github.com/jwalitptl/clinic-dashboard/internal/router"
	"github.com/jwalitptl/clinic-dashboard/internal/seed"
	"github.com/jwalitptl/clinic-dashboard/internal/service/appointment"
	"github.com/jwalitptl/clinic-dashboard/internal/service/audit"
	"github.com/jwalitptl/clinic-dashboard/internal/service/contact"
	"github.com/jwalitptl/clinic-dashboard/internal/service/dashboard"
	"github.com/jwalitptl/clinic-dashboard/internal/service/document"
	"github.com/jwalitptl/clinic-dashboard/internal/service/patient"
	"github.com/jwalitptl/clinic-dashboard/internal/service/radiography"
	"github.com/jwalitptl/clinic-dashboard/internal/service/schedule"
	"github.com/jwalitptl/clinic-dashboard/internal/service/settings"
	"github.com/jwalitptl/clinic-dashboard/internal/service/treatment"
	"github.com/jwalitptl/clinic-dashboard/pkg/logger"
	"github.com/jwalitptl/clinic-dashboard/pkg/metrics"
	"github.com/jwalitptl/clinic-dashboard/pkg/validator"
)

// App holds every service of a running dashboard.
type App struct {
	Config   *config.Config
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Audit        *audit.Service
	Patients     *patient.Service
	Schedule     *schedule.Service
	Appointments *appointment.Service
	Treatments   *treatment.Service
	Documents    *document.Service
	Contacts     *contact.Service
	Radiography  *radiography.Service
	Dashboard    *dashboard.Service
	Settings     *settings.Service

	Router *router.Router
}

// New builds an App whose stores are loaded with the sample data set.
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	loc, err := cfg.Schedule.Location()
	if err != nil {
		return nil, err
	}
	weekStart, err := cfg.Schedule.Weekday()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(cfg.Metrics.Namespace, reg)
	v := validator.New()

	observe := func(entity string) memory.Option {
		return memory.WithObserver(memory.Observer(m.ObserveStore(entity)))
	}

	auditor := audit.NewService(memory.New[model.AuditLog](observe("audit")))
	patients := patient.NewService(memory.NewWith(seed.Patients(), observe(model.AuditEntityPatient)), v, auditor, m)

	appts := memory.NewWith(seed.Appointments(), observe(model.AuditEntityAppointment))
	agg := schedule.NewAggregator(schedule.Config{
		Location:     loc,
		WeekStart:    weekStart,
		DayStartHour: cfg.Schedule.DayStartHour,
		DayEndHour:   cfg.Schedule.DayEndHour,
		SlotMinutes:  cfg.Schedule.SlotMinutes,
	}, log.WithComponent("schedule"), m)
	sched := schedule.NewService(appts, patients, agg, cfg.Cache.ViewTTL(), m)

	treatments := treatment.NewService(memory.NewWith(seed.Treatments(), observe(model.AuditEntityTreatment)), patients, v, auditor, m)
	documents := document.NewService(memory.NewWith(seed.Documents(), observe(model.AuditEntityDocument)), patients, v, auditor, m)

	a := &App{
		Config:       cfg,
		Registry:     reg,
		Metrics:      m,
		Audit:        auditor,
		Patients:     patients,
		Schedule:     sched,
		Appointments: appointment.NewService(appts, patients, sched, v, auditor, m),
		Treatments:   treatments,
		Documents:    documents,
		Contacts:     contact.NewService(memory.NewWith(seed.Contacts(), observe(model.AuditEntityContact)), v, auditor, m),
		Radiography: radiography.NewService(
			memory.NewWith(seed.Radiographies(), observe(model.AuditEntityRadiography)),
			memory.New[model.CaptureSession](observe("capture_session")),
			patients, v, auditor, m,
		),
		Dashboard: dashboard.NewService(patients, sched, treatments, documents),
		Settings: settings.NewService(model.EmailSettings{
			Email:      cfg.Email.Address,
			Password:   cfg.Email.Password,
			SMTPServer: cfg.Email.SMTPServer,
			SMTPPort:   cfg.Email.SMTPPort,
		}, v, auditor),
	}

	a.Router = a.newRouter()
	return a, nil
}

func (a *App) newRouter() *router.Router {
	cfg := a.Config

	var limit rate.Limit
	if cfg.RateLimit.Enabled {
		limit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
	}

	r := router.NewRouter(router.RouterConfig{
		Mode:           cfg.Server.Mode,
		RateLimit:      limit,
		RateBurst:      cfg.RateLimit.Burst,
		RequestTimeout: cfg.Server.Timeout(),
		CORSConfig: middleware.CORSConfig{
			AllowOrigins: cfg.CORS.AllowOrigins,
			MaxAge:       time.Duration(cfg.CORS.MaxAgeHours) * time.Hour,
		},
	}, a.Metrics,
		health.NewHandler(map[string]health.Check{
			"metrics": a.gatherMetrics,
		}),
		prometheusHandler.New(a.Registry),
		patientHandler.NewHandler(a.Patients),
		appointmentHandler.NewHandler(a.Appointments),
		scheduleHandler.NewHandler(a.Schedule),
		treatmentHandler.NewHandler(a.Treatments),
		documentHandler.NewHandler(a.Documents),
		contactHandler.NewHandler(a.Contacts),
		radiographyHandler.NewHandler(a.Radiography),
		dashboardHandler.NewHandler(a.Dashboard),
		settingsHandler.NewHandler(a.Settings),
		auditHandler.NewHandler(a.Audit),
	)
	r.Setup()
	return r
}

func (a *App) gatherMetrics() error {
	if _, err := a.Registry.Gather(); err != nil {
		return fmt.Errorf("gather: %w", err)
	}
	return nil
}
