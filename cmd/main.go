package main

import (
	"os"
	"os/signal"
	"syscall"

	"assetmaster"
	"assetmaster/app"
	"assetmaster/bot"
	"assetmaster/config"
	"assetmaster/internal/db"
	"assetmaster/notify"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {

	conf, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	level, err := conf.LogLevel()
	if err != nil {
		panic(err)
	}
	/*
		memo.
		zerolog.SetGlobalLevel()는 이후에 생성되는 모든 zerolog.Logger의 로그 레벨을 설정함.
		단, gorm은 별도의 logger를 사용하기 때문에 영향을 받지 않음.
	*/
	zerolog.SetGlobalLevel(level)

	// 금액은 JSON number로 응답
	decimal.MarshalJSONWithoutQuotes = true

	cryptKey, err := conf.CryptKey()
	if err != nil {
		panic(err)
	}

	stg, err := db.NewStorage(conf.DbConfig(), conf.RedisConfig(), cryptKey)
	if err != nil {
		panic(err)
	}

	ch := make(chan string, 16)

	am := assetmaster.NewAssetMaster(assetmaster.AssetMasterConfig{
		Storage:   stg,
		Notifier:  notify.NewBark(conf.BarkConfig()),
		Channel:   ch,
		JobBudget: conf.Cron.Budget,
		CronSpec:  conf.Cron.Spec,
		QueueSize: conf.Snapshot.Queue,
	})
	if err := am.Run(); err != nil {
		panic(err)
	}
	defer am.Close()

	go func() {
		err := app.Run(conf.App.Port, app.Options{
			JwtKey:     conf.App.JwtKey,
			CronSecret: conf.Cron.Secret,
			Production: conf.IsProduction(),
			Origins:    conf.App.Origins,
		}, stg, am)
		if err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	botConf, err := conf.BotConfig()
	if err != nil {
		panic(err)
	}

	if botConf != nil {
		teleBot, err := bot.NewTeleBot(botConf)
		if err != nil {
			panic(err)
		}
		go teleBot.Run(ch, am)
	} else {
		go func() {
			for msg := range ch {
				log.Info().Str("msg", msg).Msg("operator message")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting Down")
}
