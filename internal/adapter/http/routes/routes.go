package routes

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "summit_contracting/docs" // This will be auto-generated
	"summit_contracting/internal/adapter/http/handlers"
	repository2 "summit_contracting/internal/adapter/persistence/repository"
	"summit_contracting/internal/infrastructure/database"
	"summit_contracting/internal/infrastructure/estimates"
	"summit_contracting/internal/infrastructure/export"
	"summit_contracting/internal/infrastructure/flags"
	"summit_contracting/internal/infrastructure/payments"
	"summit_contracting/internal/usecase"
	"summit_contracting/internal/usecase/interfaces"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	quoteRepo := repository2.NewQuoteDynamoRepository(ddb)
	depositRepo := repository2.NewDepositDynamoRepository(ddb)

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	depositUseCase := usecase.NewDepositUseCase(depositRepo, quoteRepo, paymentGateway)

	var flagStore interfaces.IUnsavedFlagStore
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisStore, err := flags.NewRedisFlagStore(redisURL)
		if err != nil {
			log.Printf("Redis flag store not available, using in-memory store: %v", err)
			flagStore = flags.NewMemoryFlagStore()
		} else {
			flagStore = redisStore
		}
	} else {
		flagStore = flags.NewMemoryFlagStore()
	}

	var estimateFactory interfaces.IEstimateProviderFactory
	if base := os.Getenv("ESTIMATE_SERVICE_URL"); base != "" {
		estimateFactory = estimates.NewHTTPProviderFactory(base)
	} else {
		log.Printf("Estimate service not configured, delegated pricing disabled")
	}

	sessionManager := usecase.NewSessionManager(usecase.SessionConfigFromEnv(), quoteRepo, estimateFactory, flagStore)

	sessionHandler := handlers.NewSessionHandler(sessionManager, export.NewService())
	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	depositHandler := handlers.NewDepositHandler(depositUseCase)

	// Public routes
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addProposalRoutes(v1, sessionHandler, quoteHandler, depositHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
