package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/config"
	"github.com/iliyamo/hotel-room-booking/internal/database"
	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/router"
	"github.com/iliyamo/hotel-room-booking/internal/workflow"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// A connection failure at startup is fatal; there is no retry.
	sess, err := database.Open(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err != nil {
		log.Fatalf("unable to connect to database: %v", err)
	}
	defer sess.Close()

	users := repository.NewUserRepo(sess)
	hotels := repository.NewHotelRepo(sess)
	rooms := repository.NewRoomRepo(sess)
	bookings := repository.NewBookingRepo(sess)
	repairs := repository.NewRepairRepo(sess)
	logs := repository.NewUpdateLogRepo(sess)

	booking := workflow.NewBookingWorkflow(sess, rooms, bookings)
	roomUpdate := workflow.NewRoomUpdateWorkflow(hotels, rooms, logs)
	repair := workflow.NewRepairWorkflow(hotels, repairs)

	authH := handler.NewAuthHandler(cfg, users)
	customerH := handler.NewCustomerHandler(hotels, rooms, bookings, booking)
	managerH := handler.NewManagerHandler(hotels, bookings, repairs, logs, roomUpdate, repair)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	// Background consumer writing booking events to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, config.LoadRateLimitConfig(), rdb, cfg.JWTSecret)
	router.RegisterCustomer(e, customerH, cfg.JWTSecret)
	router.RegisterManager(e, managerH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
