package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/Luismorlan/nashbites/app_setting"
	"github.com/Luismorlan/nashbites/enhancer"
	"github.com/Luismorlan/nashbites/ingestion"
	"github.com/Luismorlan/nashbites/utils"
	"github.com/Luismorlan/nashbites/utils/dotenv"
	Flag "github.com/Luismorlan/nashbites/utils/flag"
	Logger "github.com/Luismorlan/nashbites/utils/log"
	"github.com/Luismorlan/nashbites/webhook"
	"github.com/Luismorlan/nashbites/webhook/auth"
	"github.com/Luismorlan/nashbites/webhook/ledger"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func main() {
	Flag.ParseFlags()
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	Logger.InitLogger()

	setting, err := app_setting.ParseWebhookAppSetting(*Flag.AppSettingPath)
	if err != nil {
		Logger.Log.Fatalln(err)
	}

	authConfig := auth.ConfigFromEnv()
	if err := authConfig.ValidateWebhook(); err != nil {
		Logger.Log.Fatalln("refuse to start webhook server: ", err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatalln("fail to connect to database: ", err)
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		Logger.Log.Fatalln(err)
	}

	metrics := newMetrics(setting)
	defer metrics.Close()
	if setting.TRACING_ENABLED {
		utils.StartTracer(*Flag.ServiceName)
		defer utils.CloseTracer()
	}
	if setting.PROFILING_ENABLED {
		if err := utils.StartProfiler(*Flag.ServiceName); err != nil {
			Logger.Log.Errorln("profiler disabled: ", err)
		} else {
			defer utils.CloseProfiler()
		}
	}

	webhookLedger := ledger.New(db, setting.WEBHOOK_SOURCE)
	if setting.REDIS_REPLAY_CACHE_ENABLED {
		cache, err := utils.GetRedisReplayStore(context.Background(), setting.ReplayTTL())
		if err != nil {
			// The database alone is enough to answer replays.
			Logger.Log.Errorln("redis replay cache disabled: ", err)
		} else {
			webhookLedger.WithCache(cache)
		}
	}

	handler := webhook.NewHandler(
		auth.NewGate(authConfig),
		webhookLedger,
		ingestion.NewPipeline(db, metrics),
	).WithMetrics(metrics)
	if notifier := newNotifier(setting); notifier != nil {
		handler.WithNotifier(notifier, setting.EnhancerTimeout())
	}

	router := gin.Default()
	if setting.TRACING_ENABLED {
		router.Use(gintrace.Middleware(*Flag.ServiceName))
	}

	// Add a debug route for testing and health check
	router.GET("/webhook/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, "pong")
	})
	AddIngestionWebhooks(router, handler)

	Logger.Log.Info("===== Webhook Server Started =====")
	if err := router.Run(fmt.Sprintf(":%d", setting.WEBHOOK_PORT)); err != nil {
		Logger.Log.Fatalln(errors.Wrap(err, "webhook server stopped"))
	}
}

func newMetrics(setting app_setting.WebhookAppSetting) *utils.MetricsReporter {
	if setting.STATSD_ADDR == "" {
		return nil
	}
	metrics, err := utils.NewMetricsReporter(setting.STATSD_ADDR)
	if err != nil {
		Logger.Log.Errorln("metrics disabled: ", err)
		return nil
	}
	return metrics
}

// newNotifier returns nil when no duplicate notification is configured.
func newNotifier(setting app_setting.WebhookAppSetting) enhancer.Notifier {
	notifiers := enhancer.MultiNotifier{}
	if secret := os.Getenv("ENHANCER_SECRET"); setting.ENHANCER_URL != "" && secret != "" {
		notifiers = append(notifiers, enhancer.NewHttpNotifier(setting.ENHANCER_URL, secret, setting.EnhancerTimeout()))
	} else if setting.ENHANCER_URL != "" {
		Logger.Log.Warnln("ENHANCER_URL is set without ENHANCER_SECRET, enhancer notification disabled")
	}
	if setting.SLACK_WEBHOOK_URL != "" {
		notifiers = append(notifiers, enhancer.NewSlackNotifier(setting.SLACK_WEBHOOK_URL))
	}
	if len(notifiers) == 0 {
		return nil
	}
	return notifiers
}
