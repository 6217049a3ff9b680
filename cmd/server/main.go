package main

import (
	"fmt"
	"net/http"

	"github.com/Luismorlan/nashbites/app_setting"
	"github.com/Luismorlan/nashbites/server"
	"github.com/Luismorlan/nashbites/server/middlewares"
	. "github.com/Luismorlan/nashbites/utils"
	"github.com/Luismorlan/nashbites/utils/dotenv"
	. "github.com/Luismorlan/nashbites/utils/flag"
	. "github.com/Luismorlan/nashbites/utils/log"
	"github.com/Luismorlan/nashbites/webhook/auth"
	"github.com/Luismorlan/nashbites/webhook/ledger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	CloseTracer()
	CloseProfiler()
	Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	ParseFlags()
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	InitLogger()

	setting, err := app_setting.ParseWebhookAppSetting(*AppSettingPath)
	if err != nil {
		Log.Fatalln(err)
	}
	authConfig := auth.ConfigFromEnv()
	if err := authConfig.ValidateAdmin(); err != nil && !*BypassAuth {
		Log.Fatalln("refuse to start api server: ", err)
	}

	db, err := GetDBConnection()
	if err != nil {
		Log.Fatalln("fail to connect to database: ", err)
	}
	if setting.TRACING_ENABLED {
		StartTracer(*ServiceName)
	}
	if setting.PROFILING_ENABLED {
		if err := StartProfiler(*ServiceName); err != nil {
			Log.Errorln("profiler disabled: ", err)
		}
	}

	api := server.NewAPI(db, ledger.New(db, setting.WEBHOOK_SOURCE))

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},
	}))
	if setting.TRACING_ENABLED {
		router.Use(gintrace.Middleware(*ServiceName))
	}

	api.RegisterPublic(router.Group("/api/public"))
	admin := router.Group("/admin")
	if !*BypassAuth {
		admin.Use(middlewares.BasicAuth(auth.NewGate(authConfig)))
	}
	api.RegisterAdmin(admin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	Log.Info("api server starts up")
	router.Run(fmt.Sprintf(":%d", setting.API_PORT))
}
