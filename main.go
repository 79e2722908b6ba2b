package main

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"divescraper/api"
	"divescraper/browser"
	"divescraper/cache"
	"divescraper/config"
	"divescraper/fetch"
	"divescraper/scraper"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(conf.Logging.Level); err == nil {
		log.SetLevel(level)
	}
	if conf.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	pool := browser.New(conf.Browser.PoolSize)
	defer pool.Shutdown()

	svc := scraper.NewService(
		fetch.NewClient(conf.Fetch.Timeout, log),
		pool,
		cache.New(conf.Redis.Addr, conf.Redis.TTL),
		scraper.DefaultRegistry(),
		conf.Browser.Timeout,
		log,
	)

	router := mux.NewRouter()
	api.NewHandlers(svc, log).Routes(router)

	chain := handlers.RecoveryHandler()(
		handlers.CombinedLoggingHandler(os.Stdout,
			handlers.CORS(handlers.AllowedMethods([]string{"GET"}))(router)))

	log.WithField("addr", conf.Server.Address()).Info("server listening")
	log.Fatal(http.ListenAndServe(conf.Server.Address(), chain))
}
