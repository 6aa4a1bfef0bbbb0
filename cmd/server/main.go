package main

import (
	"os"

	"github.com/AndriiIshchenko/social-media-api/app_setting"
	"github.com/AndriiIshchenko/social-media-api/server"
	"github.com/AndriiIshchenko/social-media-api/store"
	"github.com/AndriiIshchenko/social-media-api/utils"
	"github.com/AndriiIshchenko/social-media-api/utils/dotenv"
	. "github.com/AndriiIshchenko/social-media-api/utils/flag"
	. "github.com/AndriiIshchenko/social-media-api/utils/log"
)

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	ParseFlags()
	InitLogger()

	setting := app_setting.DefaultServerAppSetting()
	if _, err := os.Stat(AppSettingPath); err == nil {
		setting = app_setting.ParseServerAppSetting(AppSettingPath)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to DB: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	router := server.NewRouter(store.New(db), setting)

	Log.Info("api server starts up")
	router.Run(setting.LISTEN_ADDR)
}
