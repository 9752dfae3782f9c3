package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nvallin/folio/internal/common"
	"github.com/nvallin/folio/internal/mailservice"
	"github.com/nvallin/folio/internal/mediaservice"
	"github.com/nvallin/folio/internal/postservice"
	"github.com/nvallin/folio/internal/userservice"
)

type application struct {
	config       *Config
	logger       *slog.Logger
	userService  *userservice.UserService
	postService  *postservice.PostService
	mediaService *mediaservice.MediaService
	mailService  *mailservice.MailService
	broker       *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupAccountExchange(broker)
	if err != nil {
		logger.Error("failed to setup the account exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	store := mediaservice.NewS3Store(mediaservice.S3Config{
		Endpoint:        cfg.StorageEndpoint,
		Region:          cfg.StorageRegion,
		AccessKeyID:     cfg.StorageAccessKey,
		SecretAccessKey: cfg.StorageSecretKey,
		Bucket:          cfg.StorageBucket,
		PublicURL:       cfg.StoragePublicURL,
		ForcePathStyle:  cfg.StoragePathStyle,
	})

	app := &application{
		config:       cfg,
		logger:       logger,
		userService:  userservice.NewUserService(db, broker),
		postService:  postservice.NewPostService(db, cache),
		mediaService: mediaservice.NewMediaService(store),
		mailService:  mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger),
		broker:       broker,
	}

	go app.mailService.SendActivationEmail()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
