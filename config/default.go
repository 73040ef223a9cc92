package config

import (
	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/spf13/viper"
)

func setDefaultConfig() {
	viper.SetDefault("Data.LogConfig.EnableConsole", true)
	viper.SetDefault("Data.LogConfig.ConsoleJSONFormat", false)
	viper.SetDefault("Data.LogConfig.ConsoleLevel", "debug")
	viper.SetDefault("Data.LogConfig.EnableFile", true)
	viper.SetDefault("Data.LogConfig.FileJSONFormat", true)
	viper.SetDefault("Data.LogConfig.FileLevel", "debug")
	viper.SetDefault("Data.LogConfig.FileLocation", "./knapsack.log")
	viper.SetDefault("Data.Env", "prod")
	viper.SetDefault("Data.Port", "9876")
	viper.SetDefault("Data.Verbose", true)
	viper.SetDefault("Data.Workspace", "./")
	viper.SetDefault("Data.GracefulTimeout", constants.DefaultGracefulTimeout)
	viper.SetDefault("Data.ShutDownDelay", constants.DefaultShutDownDelay)
	viper.SetDefault("Data.LaunchTimeout", constants.DefaultLaunchTimeout)
	viper.SetDefault("Data.Executor.PatternFile", "EXCLUDES_FILE")
	viper.SetDefault("Data.Executor.TestReportFiles", constants.ReportsGlob)
	viper.SetDefault("Data.Executor.ArchiveTestResults", true)
	viper.SetDefault("Data.Executor.ParallelismMode", "count")
	viper.SetDefault("Data.Executor.ParallelismValue", constants.DefaultParallelism)
	viper.SetDefault("Data.Executor.AllowLineageFallback", true)
}
