// @title BetterResults 后端 API
// @version 1.0
// @description Smartschool 成绩汇总服务：总分、网格、曲线和导出。
// @termsOfService http://swagger.io/terms/

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey SmartschoolSession
// @in header
// @name X-Smartschool-Session

package main

import (
	"better_results_backend/internal/app"
	"better_results_backend/internal/config"
	"better_results_backend/pkg/logger"
	"flag"
	"log"
	"path/filepath"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录，读取其中的 config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg, filepath.Join(*configDir, "config.yaml"))
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	application.Run()
}
