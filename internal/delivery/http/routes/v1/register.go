package v1

import (
	"log"

	"screenhub/internal/config"
	"screenhub/internal/database"
	"screenhub/internal/delivery/http/handler"
	"screenhub/internal/delivery/http/middleware"
	"screenhub/internal/infrastructure/llm"
	"screenhub/internal/infrastructure/mailer"
	"screenhub/internal/pkg/jwt"
	"screenhub/internal/repository"
	"screenhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the process-level dependencies the v1 surface wires
// together.
type Deps struct {
	Cfg       config.Config
	DB        database.DB
	Cache     usecase.ResultCache
	Notifier  mailer.Notifier
	Generator llm.QuestionGenerator
	Logger    *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Cfg.JWT.AccessSecret,
		deps.Cfg.JWT.RefreshSecret,
		deps.Cfg.JWT.AccessExpiresIn,
		deps.Cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	recruiterRepo := repository.NewPostgresRecruiterRepository(deps.DB)
	companyRepo := repository.NewPostgresCompanyRepository(deps.DB)
	jobRepo := repository.NewPostgresJobRepository(deps.DB)
	questionRepo := repository.NewPostgresQuestionRepository(deps.DB)
	candidateRepo := repository.NewPostgresCandidateRepository(deps.DB)
	applicationRepo := repository.NewPostgresApplicationRepository(deps.DB)
	sessionRepo := repository.NewPostgresSessionRepository(deps.DB)

	authUC := usecase.NewAuthUsecase(recruiterRepo, jwtSvc)
	companyUC := usecase.NewCompanyUsecase(companyRepo)
	jobUC := usecase.NewJobUsecase(deps.DB, jobRepo, questionRepo, companyRepo, deps.Generator, deps.Logger)
	questionUC := usecase.NewQuestionUsecase(deps.DB, jobRepo, questionRepo)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, candidateRepo)
	screeningUC := usecase.NewScreeningUsecase(
		deps.DB, sessionRepo, applicationRepo, questionRepo,
		deps.Notifier, deps.Cache, deps.Cfg.Screening, deps.Logger,
	)
	resultsUC := usecase.NewResultsUsecase(
		sessionRepo, jobRepo, deps.Cache, deps.Cfg.Screening.ResultCacheTTL, deps.Logger,
	)

	authHandler := handler.NewAuthHandler(authUC)
	companyHandler := handler.NewCompanyHandler(companyUC)
	jobHandler := handler.NewJobHandler(jobUC, screeningUC, resultsUC)
	questionHandler := handler.NewQuestionHandler(questionUC)
	candidateHandler := handler.NewCandidateHandler(candidateUC)
	applicationHandler := handler.NewApplicationHandler(applicationUC)
	screeningHandler := handler.NewScreeningHandler(screeningUC, resultsUC)
	takeTestHandler := handler.NewTakeTestHandler(screeningUC)

	authHandler.RegisterRoutes(r.Group("/auth"))

	// The candidate surface stays open; the session id is the credential.
	takeTestHandler.RegisterRoutes(r.Group("/take-test"))

	protected := r.Group("", authMw.Middleware())

	companyHandler.RegisterRoutes(protected.Group("/companies"))

	jobsGroup := protected.Group("/jobs")
	jobHandler.RegisterRoutes(jobsGroup)
	jobsGroup.Get("/:id/applications", applicationHandler.ListByJob)

	questionHandler.RegisterRoutes(protected.Group("/questions"))
	candidateHandler.RegisterRoutes(protected.Group("/candidates"))
	applicationHandler.RegisterRoutes(protected.Group("/applications"))
	screeningHandler.RegisterRoutes(protected.Group("/sessions"))
}
