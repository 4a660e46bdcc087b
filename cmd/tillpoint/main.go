// tillpoint opens the shared store, keeps the table board snapshot warm and
// prints the day's totals on shutdown. The register, admin and report screens
// are separate front ends that call the same internal services in-process.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tillpoint/internal/config"
	"tillpoint/internal/domain"
	applog "tillpoint/internal/log"
	"tillpoint/internal/repos"
	"tillpoint/internal/services"
)

func main() {
	cfg := config.Load()

	if err := applog.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer applog.Sync()
	logger := applog.L()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		logger.Fatal("open store", zap.String("dsn", cfg.DBDSN), zap.Error(err))
	}
	defer db.Close()

	prodRepo := repos.NewProductRepo(db)
	tableRepo := repos.NewTableRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	reports := services.NewReportService(saleRepo, prodRepo)

	logger.Info("station up",
		zap.String("station", cfg.StationName),
		zap.String("db", cfg.DBDSN),
		zap.Duration("poll", cfg.PollInterval))

	watcher := services.NewTableWatcher(tableRepo, cfg.PollInterval, func(tables []domain.Table) {
		occupied := 0
		for _, t := range tables {
			if t.Status == domain.TableOccupied {
				occupied++
			}
		}
		logger.Debug("table snapshot", zap.Int("tables", len(tables)), zap.Int("occupied", occupied))
	})
	if err := watcher.Start(); err != nil {
		logger.Fatal("start table watcher", zap.Error(err))
	}
	defer watcher.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	total, err := reports.DailyTotal(time.Now())
	if err != nil {
		logger.Warn("daily total", zap.Error(err))
	} else {
		logger.Info("closing out", zap.String("today_total", total.StringFixed(2)))
	}

	if neg, err := reports.NegativeStock(); err == nil && len(neg) > 0 {
		logger.Warn("negative stock at close", zap.Int("products", len(neg)))
	}
}
