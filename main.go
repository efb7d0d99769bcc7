package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/DjefferBP/sis-sistema-de-inclusao-social/handlers"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/models"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/services"
	"github.com/DjefferBP/sis-sistema-de-inclusao-social/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // fotos de perfil
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  R2 não configurado, fotos irão para o armazenamento local: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Usuario{},
		&models.AcaoXP{},
		&models.NivelTitulo{},
		&models.XPHistorico{},
		&models.Post{},
		&models.PostCurtida{},
		&models.Comentario{},
		&models.Conversa{},
		&models.Mensagem{},
		&models.Curso{},
		&models.GrupoVulnerabilidade{},
		&models.UsuarioGrupoVulnerabilidade{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := services.SeedGruposVulnerabilidade(db); err != nil {
		log.Fatal("failed to seed vulnerability groups:", err)
	}

	// O catálogo de XP é carregado uma vez no boot; catálogo inválido derruba
	// o processo antes de aceitar tráfego.
	catalog, err := services.LoadXPCatalog(db)
	if err != nil {
		log.Fatal("failed to load XP catalog:", err)
	}

	xpService := services.NewXPService(db, catalog)
	cepService := services.NewCEPService()
	userService := services.NewUserService(db, xpService, cepService)
	postService := services.NewPostService(db, xpService)
	commentService := services.NewCommentService(db, xpService)
	chatService := services.NewChatService(db, xpService)
	courseService := services.NewCourseService(db)
	trabalhosService := services.NewTrabalhosService(os.Getenv("SCRAPINGDOG_API_KEY"))
	rankingService := services.NewRankingService(db, catalog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rankingService.StartScheduler()

	handlers.SetupAuthRoutes(app, userService)
	handlers.SetupUserRoutes(app, userService)
	handlers.SetupXPRoutes(app, xpService, rankingService)
	handlers.SetupPostRoutes(app, postService)
	handlers.SetupCommentRoutes(app, commentService)
	handlers.SetupChatRoutes(app, chatService)
	handlers.SetupCourseRoutes(app, courseService)
	handlers.SetupTrabalhosRoutes(app, trabalhosService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"nome":   "SIS - Sistema de Inclusão Social",
			"status": "online",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Static("/uploads", "./uploads")

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8000"
	}

	go func() {
		if err := app.Listen(":" + porta); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", porta)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)
	log.Printf("✅ XP catalog loaded: %d ações, %d níveis", catalog.TotalAcoes(), catalog.TotalNiveis())

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
