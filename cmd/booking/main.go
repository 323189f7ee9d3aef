package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/clients"
	cons "github.com/chiendz11/Badminton-manager-microservices-sub001/internal/consumer"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/events"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/hoarding"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/payment"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/repository"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/service"
	thttp "github.com/chiendz11/Badminton-manager-microservices-sub001/internal/transport/http"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/worker"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/pkg/config"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/pkg/db"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/pkg/mq"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())

	shutdownTracer := obs.InitTracer("booking-service")

	// DB
	gdb := db.Open(cfg.PGBookingDSN)
	bookingRepo := repository.NewBookingRepo(gdb)
	if err := bookingRepo.Migrate(); err != nil {
		log.Fatal(err)
	}
	centerRepo := repository.NewCenterRepo(gdb)
	userRepo := repository.NewUserRepo(gdb)
	passRepo := repository.NewPassPostRepo(gdb)

	// Redis: hoarding counters + delayed task queue share one instance
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	tracker := hoarding.NewTracker(rdb)

	asynqOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	asynqClient := asynq.NewClient(asynqOpt)
	defer asynqClient.Close()
	scheduler := worker.NewScheduler(asynqClient)

	// Publisher for booking.* and user.spam.detected
	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
	defer pub.Close()

	// Services
	bookingSvc := service.NewBookingSvc(bookingRepo, centerRepo, userRepo, tracker, scheduler, pub)
	passSvc := service.NewPassSvc(passRepo, bookingRepo, clients.NewCenterClient(cfg.CenterServiceURL), pub)
	bridge := must(payment.New(cfg.PayOSClientID, cfg.PayOSAPIKey, cfg.PayOSChecksumKey))

	// Consumers: user profile events seed the points projection, center
	// events the pricing projection
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	profileCons := must(mq.NewConsumer(cfg.RabbitURL, cfg.UserExchange, cfg.UserProfileQueue,
		[]string{events.RKUserProfileUpdated}))
	defer profileCons.Close()
	if err := cons.NewProfileConsumer(userRepo, profileCons).Run(ctx); err != nil {
		log.Fatal(err)
	}
	centerCons := must(mq.NewConsumer(cfg.RabbitURL, cfg.CenterExchange, cfg.CenterInfoQueue,
		[]string{events.RKCenterUpdated}))
	defer centerCons.Close()
	if err := cons.NewCenterConsumer(centerRepo, centerCons).Run(ctx); err != nil {
		log.Fatal(err)
	}
	log.Printf("[booking] consumers started (%s, %s)", events.RKUserProfileUpdated, events.RKCenterUpdated)

	// Expiration worker
	srv := asynq.NewServer(asynqOpt, asynq.Config{Concurrency: 10})
	muxw := asynq.NewServeMux()
	muxw.Handle(worker.TaskBookingExpire, worker.NewExpireHandler(bookingRepo, tracker, pub))
	go func() {
		if err := srv.Run(muxw); err != nil {
			log.Fatalf("[worker] %v", err)
		}
	}()
	log.Println("[worker] expiration worker started")

	// HTTP
	router := thttp.NewRouter(
		thttp.NewBookingHandler(bookingSvc),
		thttp.NewPassHandler(passSvc),
		thttp.NewPaymentHandler(bridge, bookingSvc),
	)
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.Println("[booking] HTTP listening on", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	cancel()
	srv.Shutdown()

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	_ = httpSrv.Shutdown(shutCtx)
	_ = shutdownTracer(shutCtx)
	log.Println("[booking] stopped")
}
