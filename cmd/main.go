package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"generate-lecture-video/application/services"
	"generate-lecture-video/config"
	"generate-lecture-video/infrastructure/adapters"
	"generate-lecture-video/infrastructure/gin_interface/controllers"
	"generate-lecture-video/middleware"
	mockpipeline "generate-lecture-video/mock"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using process environment")
	}

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	slidesConfig, err := config.GetSlidesConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get slides config")
	}

	ttsConfig, err := config.GetTtsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get tts config")
	}

	fakelipConfig, err := config.GetFakelipConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get fakelip config")
	}

	deepfakeConfig, err := config.GetDeepfakeConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get deepfake config")
	}

	mediaApiConfig, err := config.GetMediaApiConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get media api config")
	}

	videoApiConfig, err := config.GetVideoApiConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get video api config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	authConfig, err := config.NewAuthorizerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get authorizer config")
	}

	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		log.Fatal().Msg("JWKS_URL is not set!")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	slideGenerator := adapters.NewSlideGenerator(contentFetcher, slidesConfig, zeroLogger)
	speechSynthesizer := adapters.NewSpeechSynthesizer(contentFetcher, ttsConfig, zeroLogger)
	lipSyncer := adapters.NewLipSyncer(contentFetcher, fakelipConfig, zeroLogger)
	slideComposer := adapters.NewSlideComposer(contentFetcher, mediaApiConfig, zeroLogger)
	videoConcatenator := adapters.NewVideoConcatenator(contentFetcher, mediaApiConfig, zeroLogger)
	faceSwapClient := adapters.NewFaceSwapClient(contentFetcher, deepfakeConfig, mediaApiConfig, zeroLogger)

	authorizer := adapters.NewClientCredentialsAuthorizer(contentFetcher, zeroLogger, authConfig)

	mediaUploader := adapters.NewS3MediaUploader(zeroLogger, contentFetcher, s3Client, s3Config)
	runCache := adapters.NewDynamoRunCache(zeroLogger, dynamoClient, dynamoConfig)
	videoRecorder := adapters.NewVideoRecorder(zeroLogger, videoApiConfig, authorizer)
	metadataStore := adapters.NewMetadataApi(contentFetcher, videoApiConfig, zeroLogger)

	workflowStore := services.NewWorkflowStore(zeroLogger)

	stageExecutor := services.NewStageExecutor(zeroLogger, speechSynthesizer, lipSyncer, slideComposer,
		videoConcatenator, faceSwapClient, pipelineConfig)

	orchestrator := services.NewPipelineOrchestrator(zeroLogger, workerPool, stageExecutor, mediaUploader,
		runCache, videoRecorder, workflowStore)

	editSession := services.NewEditSession(zeroLogger, metadataStore)

	lecturesController := controllers.NewLecturesController(orchestrator, workflowStore, zeroLogger)
	slidesController := controllers.NewSlidesController(slideGenerator, zeroLogger)
	presentationsController := controllers.NewPresentationsController(editSession, zeroLogger)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(jwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	router.Use(authHandler.AuthMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	mockpipeline.Init(router, workerPool, workflowStore, zeroLogger)

	lecturesController.RegisterRoutes(router)
	slidesController.RegisterRoutes(router)
	presentationsController.RegisterRoutes(router)

	err = router.Run(":8080")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
