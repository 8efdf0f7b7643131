package main

import (
	"fmt"
	"media-orchestrator/application/services"
	"media-orchestrator/config"
	"media-orchestrator/domain"
	"media-orchestrator/infrastructure/adapters"
	"media-orchestrator/infrastructure/gin_interface/controllers"
	"media-orchestrator/middleware"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using process environment")
	}

	videoConfig, err := config.GetVideoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get video config")
	}

	imageConfig, err := config.GetImageConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get image config")
	}

	agentConfig, err := config.GetAgentConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get agent config")
	}

	outputConfig, err := config.GetOutputConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get output config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
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

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	videoClient := adapters.NewVideoJobClient(contentFetcher, videoConfig, zeroLogger)
	imageClient := adapters.NewImageClient(contentFetcher, imageConfig, zeroLogger)
	materializer := adapters.NewArtifactMaterializer(contentFetcher, videoConfig.ApiKey, zeroLogger)
	agentClient := adapters.NewAgentClient(agentConfig, workerPool, zeroLogger)
	muxer := adapters.NewFFMPEGMuxer(outputConfig.Dir, zeroLogger)

	videoPublisher := adapters.NewS3VideoPublisher(s3Client, s3Config, zeroLogger)
	runStore := adapters.NewDynamoRunStore(dynamoClient, dynamoConfig, zeroLogger)

	fastPoller := services.NewJobPoller(videoClient, videoConfig.FastInterval, videoConfig.MaxWait, zeroLogger)
	hqPoller := services.NewJobPoller(videoClient, videoConfig.HQInterval, videoConfig.MaxWait, zeroLogger)

	fastVideoGenerator := services.NewVideoGenerator(domain.VariantFast, videoConfig.FastModel, videoClient,
		fastPoller, materializer, outputConfig.Dir, zeroLogger)
	hqVideoGenerator := services.NewVideoGenerator(domain.VariantHQ, videoConfig.HQModel, videoClient,
		hqPoller, materializer, outputConfig.Dir, zeroLogger)
	imageGenerator := services.NewImageGenerator(imageClient, outputConfig.Dir, zeroLogger)

	extractor := services.NewResultExtractor(outputConfig.Dir, zeroLogger)
	speechGenerator := services.NewSpeechGenerator(agentClient, extractor, zeroLogger)

	slideshowPipeline := services.NewSlideshowPipeline(imageGenerator, speechGenerator, muxer,
		videoPublisher, runStore, zeroLogger)

	toolDispatcher := services.NewToolDispatcher(fastVideoGenerator, hqVideoGenerator, imageGenerator,
		muxer, zeroLogger)

	toolsController := controllers.NewToolsController(toolDispatcher, zeroLogger)
	slideshowController := controllers.NewSlideshowController(slideshowPipeline, zeroLogger)

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

	toolsController.RegisterRoutes(router)
	slideshowController.RegisterRoutes(router)

	err = router.Run(":8080")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
