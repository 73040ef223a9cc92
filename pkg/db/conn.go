package db

import (
	"net"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Connect opens the pool to the build history database and checks it is reachable.
func Connect(cfg *config.Config, logger lumber.Logger) (core.DB, error) {
	db, err := sqlx.Connect("mysql", dsn(&cfg.DB))
	if err != nil {
		return nil, err
	}
	logger.Infof("Database connected successfully")

	db.SetMaxIdleConns(constants.MysqlMaxIdleConnection)
	db.SetMaxOpenConns(constants.MysqlMaxOpenConnection)
	db.SetConnMaxLifetime(constants.MysqlMaxConnectionLifetime)

	return &DB{conn: db, logger: logger}, nil
}

// dsn parses DATETIME columns into time.Time, the build store scans them into structs.
func dsn(cfg *config.DBConfig) string {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.User
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Name
	mysqlCfg.ParseTime = true
	mysqlCfg.Params = map[string]string{"charset": "utf8mb4"}
	return mysqlCfg.FormatDSN()
}
