package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/antly/antly-api/config"
	redisadapter "github.com/antly/antly-api/internal/adapters/redis"
	"github.com/antly/antly-api/internal/core"
	"github.com/antly/antly-api/internal/data"
	"github.com/antly/antly-api/internal/observability/statsd"
	"github.com/antly/antly-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Accounts *service.AccountService
	Sessions *service.SessionService
	Ads      *service.AdService
	Reviews  *service.ReviewService
	Admin    *service.AdminService
	Metrics  statsd.Sink
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient // Optional: nil disables the listing cache
	Auth        *AuthComponents
	Metrics     statsd.Sink // Optional
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Users   *data.UserRepo
	Ads     *data.AdRepo
	Reviews *data.ReviewRepo
	Listing core.ListingCache
}

func newRepositories(deps *ServiceDeps) serviceRepositories {
	repos := serviceRepositories{
		Users:   data.NewUserRepo(deps.DB),
		Ads:     data.NewAdRepo(deps.DB),
		Reviews: data.NewReviewRepo(deps.DB),
	}
	if deps.RedisClient != nil {
		cacheCfg := config.CacheConfig{}
		if deps.Config != nil {
			cacheCfg = deps.Config.Cache
		}
		repos.Listing = redisadapter.NewListingCache(deps.RedisClient, redisadapter.ListingCacheOptions{
			Prefix: cacheCfg.KeyPrefix,
			TTL:    cacheCfg.ListingTTL,
		})
	} else if deps.Logger != nil {
		deps.Logger.Info("listing cache disabled", "reason", "redis not configured")
	}
	return repos
}

// NewServices wires repositories into the application services.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil || deps.DB == nil || deps.Auth == nil {
		//nolint:forbidigo // Service construction must fail fast during wiring when dependencies are missing
		panic("bootstrap: NewServices requires DB and Auth")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos := newRepositories(deps)

	return ServiceContainer{
		Sessions: deps.Auth.Sessions,
		Metrics:  deps.Metrics,
		Accounts: service.NewAccountService(service.AccountServiceOptions{
			Users:    repos.Users,
			Hasher:   deps.Auth.Hasher,
			Sessions: deps.Auth.Sessions,
			Logger:   logger,
			Metrics:  deps.Metrics,
		}),
		Ads: service.NewAdService(service.AdServiceOptions{Repo: repos.Ads, Cache: repos.Listing, Logger: logger}),
		Reviews: service.NewReviewService(service.ReviewServiceOptions{
			Repos: service.ReviewServiceRepos{
				Reviews: repos.Reviews,
				Ads:     repos.Ads,
				Users:   repos.Users,
			},
			Logger: logger,
		}),
		Admin: service.NewAdminService(service.AdminServiceOptions{Users: repos.Users}),
	}
}
