package bootstrap

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/punto-pos/pos-backend/config"
	httpapi "github.com/punto-pos/pos-backend/internal/api/http"
	apimiddleware "github.com/punto-pos/pos-backend/internal/api/http/middleware"
	authdomain "github.com/punto-pos/pos-backend/internal/auth/domain"
	authhttp "github.com/punto-pos/pos-backend/internal/auth/http"
	authmw "github.com/punto-pos/pos-backend/internal/auth/middleware"
	authrepo "github.com/punto-pos/pos-backend/internal/auth/repository"
	authservice "github.com/punto-pos/pos-backend/internal/auth/service"
	"github.com/punto-pos/pos-backend/internal/images"
	"github.com/punto-pos/pos-backend/internal/logging"
	menuhttp "github.com/punto-pos/pos-backend/internal/menu/http"
	menurepo "github.com/punto-pos/pos-backend/internal/menu/repository"
	menuservice "github.com/punto-pos/pos-backend/internal/menu/service"
	"github.com/punto-pos/pos-backend/internal/orders/events"
	ordershttp "github.com/punto-pos/pos-backend/internal/orders/http"
	ordersrepo "github.com/punto-pos/pos-backend/internal/orders/repository"
	ordersservice "github.com/punto-pos/pos-backend/internal/orders/service"
)

type RouterDeps struct {
	ServiceName string
	Cfg         *config.Config
	Log         *logging.Logger
	Firebase    *Firebase
	Redis       *redis.Client
	Storage     *s3.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if dep.Cfg.Server.CORSOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(dep.Cfg.Server.CORSOrigins, ",")
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Cfg.App.Version, dep.Firebase.Firestore, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := authrepo.NewUserRepository(dep.Firebase.Firestore)
	identity := authservice.NewIdentityClient(dep.Cfg.Firebase.WebAPIKey)
	authSvc := authservice.NewAuthService(dep.Firebase.Auth, identity, userRepo)

	menuRepo := menurepo.NewMenuRepository(dep.Firebase.Firestore)
	menuSvc := menuservice.NewMenuService(menuRepo)

	publisher := events.NewPublisher(dep.Redis)
	orderRepo := ordersrepo.NewOrderRepository(dep.Firebase.Firestore, publisher)
	orderSvc := ordersservice.NewOrderService(orderRepo, menuRepo)

	uploader := images.NewUploader(dep.Storage, &dep.Cfg.Storage)
	imageHandler := images.NewHandler(uploader, dep.Cfg.Storage.MaxUploadMB, dep.Log)

	api := r.Group("/api/v1")
	api.Use(apimiddleware.RequestIDMiddleware())

	authHandler := authhttp.New(authSvc, dep.Log)
	authHandler.Register(api.Group("/auth"))

	authed := api.Group("")
	authed.Use(authmw.FirebaseAuthMiddleware(dep.Firebase.Auth))

	authHandler.RegisterProtected(authed.Group("/auth"))

	menuHandler := menuhttp.New(menuSvc, dep.Log)
	menuHandler.Register(authed.Group("/menu"))

	adminMenu := authed.Group("/menu")
	adminMenu.Use(authmw.RequireRole(userRepo, authdomain.RoleAdmin))
	menuHandler.RegisterAdmin(adminMenu)
	imageHandler.Register(adminMenu)

	orderHandler := ordershttp.New(orderSvc, publisher, dep.Log)
	orderHandler.Register(authed.Group("/orders"))

	staffOrders := authed.Group("/orders")
	staffOrders.Use(authmw.RequireRole(userRepo,
		authdomain.RoleChef, authdomain.RoleCashier, authdomain.RoleAdmin))
	orderHandler.RegisterStaff(staffOrders)

	return r
}
