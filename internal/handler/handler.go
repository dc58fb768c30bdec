package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/resto-dev/resto-scheduler/backend/internal/config"
	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
	"github.com/resto-dev/resto-scheduler/backend/internal/publish"
	"github.com/resto-dev/resto-scheduler/backend/internal/repository"
	"github.com/resto-dev/resto-scheduler/backend/internal/workflow"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	publisher   *publish.Publisher
	workflow    *workflow.Service

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		publisher:   publish.NewPublisher(repo),
		workflow:    workflow.NewService(cfg, repo, mailCh),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // 员工也可以看到同事列表，发起换班时需要
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialManager).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialManager).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/password", h.UpdateUserPassword)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/availability", h.GetUserAvailability)
			})
		})

		r.Route("/my-availability", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyAvailability)
			r.Put("/", h.UpdateMyAvailability)
		})

		// 经理排班时需要总览所有员工的可用时段
		r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/availabilities", h.GetAllAvailabilities)

		r.Route("/schedule", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/day/{date}", h.GetDaySchedule)
			r.Group(func(r chi.Router) {
				r.Use(h.myInfo)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Put("/day/{date}", h.SaveDaySchedule)
			})
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/grid/{start}", h.GetScheduleGrid)
			r.Get("/published/{start}", h.GetPublishedGrid) // 员工只能看到已发布的快照
		})

		r.Route("/schedule-periods", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleManager}))
			r.Get("/state/{start}", h.GetPublishState)
			r.Group(func(r chi.Router) {
				r.Use(h.myInfo)
				r.Post("/post", h.PostPeriod)
			})
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.schedulePeriod)
				r.Post("/republish", h.RepublishPeriod)
				r.Get("/needs-republish", h.GetNeedsRepublish)
				r.Get("/amendments", h.GetPeriodAmendments)
			})
		})

		r.Route("/requests", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateRequest)
			r.Post("/trade", h.CreateTradeRequest)
			r.Get("/mine", h.GetMyRequests)
			r.Get("/invites", h.GetMyTradeInvites)
			r.Get("/approved-time-off", h.GetApprovedTimeOff)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/", h.GetAllRequests)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/pending", h.GetPendingRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Post("/confirm", h.ConfirmTradeRequest)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/approve", h.ApproveRequest)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/deny", h.DenyRequest)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyNotifications)
			r.Get("/unread-count", h.GetUnreadNotificationCount)
			r.Post("/{id}/read", h.MarkNotificationRead)
			r.Post("/read-all", h.MarkAllNotificationsRead)
		})
	})
}
