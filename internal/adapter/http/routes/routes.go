package routes

import (
	"log"
	"os"
	"strconv"
	"time"

	_ "servitec/docs" // This will be auto-generated
	"servitec/internal/adapter/http/handlers"
	"servitec/internal/adapter/http/middleware"
	repository2 "servitec/internal/adapter/persistence/repository"
	"servitec/internal/auth"
	"servitec/internal/domain/fiscal"
	"servitec/internal/infrastructure/database"
	"servitec/internal/infrastructure/documents"
	"servitec/internal/infrastructure/payments"
	"servitec/internal/infrastructure/sessions"
	"servitec/internal/usecase"
	"servitec/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

const (
	defaultTokenTTL   = 8 * time.Hour
	defaultSessionTTL = 24 * time.Hour
)

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
	rdb := sessions.ConnectRedis()

	orderRepo := repository2.NewServiceOrderDynamoRepository(ddb)
	invoiceRepo := repository2.NewInvoiceDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)
	staffRepo := repository2.NewStaffDynamoRepository(ddb)
	clientRepo := repository2.NewClientDynamoRepository(ddb)
	counterRepo := repository2.NewCounterDynamoRepository(ddb)
	sessionStore := sessions.NewRedisSessionStore(rdb)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	tokens := auth.NewTokenManager(secret, envDuration("TOKEN_TTL", defaultTokenTTL))
	sessionTTL := envDuration("SESSION_TTL", defaultSessionTTL)

	resolver := auth.NewResolver(tokens, sessionStore, staffRepo, clientRepo)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	issuer := issuerFromEnv()
	if err := issuer.Validate(); err != nil {
		log.Fatalf("invalid invoice issuer configuration: %v", err)
	}

	authUseCase := usecase.NewAuthUseCase(staffRepo, clientRepo, counterRepo, sessionStore, tokens, sessionTTL)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, clientRepo, counterRepo)
	invoiceUseCase := usecase.NewInvoiceUseCase(
		invoiceRepo,
		orderRepo,
		paymentRepo,
		counterRepo,
		paymentGateway,
		documents.NewInvoiceRenderer(),
		issuer,
		envFloat("INVOICE_TAX_RATE", 0.12),
	)

	authHandler := handlers.NewAuthHandler(authUseCase, int(sessionTTL.Seconds()))
	orderHandler := handlers.NewOrderHandler(orderUseCase)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase, orderUseCase)

	authenticate := middleware.Authenticate(resolver)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addAuthRoutes(v1, authenticate, authHandler)
	addWorkflowRoutes(v1, authenticate, orderHandler, invoiceHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func issuerFromEnv() fiscal.Issuer {
	return fiscal.Issuer{
		TaxID:         getenvDefault("ISSUER_TAX_ID", "1790012345001"),
		Environment:   getenvDefault("ISSUER_ENVIRONMENT", "1"),
		Establishment: getenvDefault("ISSUER_ESTABLISHMENT", "001"),
		EmissionPoint: getenvDefault("ISSUER_EMISSION_POINT", "001"),
		DocumentType:  getenvDefault("ISSUER_DOCUMENT_TYPE", "01"),
		EmissionType:  getenvDefault("ISSUER_EMISSION_TYPE", "1"),
	}
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v", key, v, def)
		return def
	}
	return f
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
