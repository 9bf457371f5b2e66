package main

import (
	"context"
	"log"

	"seaboo-server/config"
	boathandler "seaboo-server/internal/module/boat/handler"
	boatrepositories "seaboo-server/internal/module/boat/repositories"
	boatusecases "seaboo-server/internal/module/boat/usecases"
	bookinghandler "seaboo-server/internal/module/booking/handler"
	bookingrepositories "seaboo-server/internal/module/booking/repositories"
	bookingusecases "seaboo-server/internal/module/booking/usecases"
	userhandler "seaboo-server/internal/module/user/handler"
	userrepositories "seaboo-server/internal/module/user/repositories"
	userusecases "seaboo-server/internal/module/user/usecases"
	"seaboo-server/internal/pkg/database"
	"seaboo-server/internal/pkg/http"
	"seaboo-server/internal/pkg/httpclient"
	log_internal "seaboo-server/internal/pkg/log"
	"seaboo-server/internal/pkg/messagestream"
	"seaboo-server/internal/pkg/middleware"
	redis_internal "seaboo-server/internal/pkg/redis"
	"seaboo-server/internal/pkg/scheduler"
	router "seaboo-server/internal/route"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	stripeclient "github.com/stripe/stripe-go/v76/client"
)

func main() {
	cfg := config.InitConfig()

	app, messageRouters, sched, bookingHandler := initService(cfg)

	for _, router := range messageRouters {
		ctx := context.Background()
		go func(router *message.Router) {
			err := router.Run(ctx)
			if err != nil {
				log.Fatal(err)
			}
		}(router)
	}

	// background task workers
	go sched.StartHandler(&cfg.Redis,
		[]string{scheduler.TypeBookingExpired},
		[]func(ctx context.Context, t *asynq.Task) error{bookingHandler.SetBookingExpired},
	)
	go sched.StartMonitoring(&cfg.Redis)

	// start http server
	http.StartHttpServer(app, cfg.HttpServer.Port)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router, *scheduler.Scheduler, *bookinghandler.BookingHandler) {

	// init database
	db := database.GetConnection(&cfg.Database)
	// init redis
	redisClient := redis_internal.SetupClient(&cfg.Redis)
	rs := redsync.New(goredis.NewPool(redisClient))
	// init logger
	logger := log_internal.Setup()
	// init http client
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)
	// init stripe
	stripeClient := &stripeclient.API{}
	stripeClient.Init(cfg.Stripe.SecretKey, nil)

	ctx := context.Background()
	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream)

	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Ctx(ctx).Error("Failed to create subscriber: " + err.Error())
	}

	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Ctx(ctx).Error("Failed to create publisher: " + err.Error())
	}

	// init scheduler
	sched := &scheduler.Scheduler{Log: logger}
	taskClient := sched.InitClient(&cfg.Redis)

	validate := validator.New()

	userRepo := userrepositories.New(db, logger, httpClient, redisClient, &cfg.Apple)
	userUsecase := userusecases.New(userRepo, logger, &cfg.Apple, &cfg.Session)
	userHandler := &userhandler.UserHandler{
		Log:        logger,
		Validator:  validate,
		Usecase:    userUsecase,
		CfgSession: &cfg.Session,
	}

	boatRepo := boatrepositories.New(db, logger)
	boatUsecase := boatusecases.New(boatRepo, logger)
	boatHandler := &boathandler.BoatHandler{
		Log:       logger,
		Validator: validate,
		Usecase:   boatUsecase,
		CfgUpload: &cfg.Upload,
	}

	bookingRepo := bookingrepositories.New(db, logger, httpClient, rs, stripeClient, &cfg.Apple)
	bookingUsecase := bookingusecases.New(bookingRepo, logger, publisher, taskClient, &cfg.Booking)
	bookingHandler := &bookinghandler.BookingHandler{
		Log:                 logger,
		Validator:           validate,
		Usecase:             bookingUsecase,
		StripeWebhookSecret: cfg.Stripe.WebhookSecret,
	}

	m := &middleware.Middleware{
		Log:        logger,
		Repo:       userRepo,
		CookieName: cfg.Session.CookieName,
	}

	var messageRouters []*message.Router

	consumeBookingCreatedRouter, err := messagestream.NewRouter(publisher, "booking_created_poisoned", "booking_created_handler", "booking_created", subscriber, bookingHandler.ConsumeBookingQueue)
	if err != nil {
		logger.Ctx(ctx).Error("Failed to create booking_created router: " + err.Error())
	}

	messageRouters = append(messageRouters, consumeBookingCreatedRouter)

	serverHttp := http.SetupHttpEngine()

	r := router.Initialize(serverHttp, userHandler, boatHandler, bookingHandler, m)

	return r, messageRouters, sched, bookingHandler
}
