package db

import (
	"net"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"tasktime/internal/config"
)

const defaultDbParams = "parseTime=true&multiStatements=true"

// DSN builds the MySQL data source name from the configuration.
func DSN(conf *config.Config) (string, error) {
	params := conf.DbParams
	if params == "" {
		params = defaultDbParams
	}
	values, err := url.ParseQuery(params)
	if err != nil {
		return "", err
	}

	mysqlConf := mysql.NewConfig()
	mysqlConf.User = conf.DbUser
	mysqlConf.Passwd = conf.DbPassword
	mysqlConf.Net = "tcp"
	mysqlConf.Addr = net.JoinHostPort(conf.DbHost, conf.DbPort)
	mysqlConf.DBName = conf.DbName
	mysqlConf.Loc = time.UTC
	mysqlConf.Params = map[string]string{}
	for key := range values {
		switch key {
		case "parseTime":
			mysqlConf.ParseTime = values.Get(key) == "true"
		case "multiStatements":
			mysqlConf.MultiStatements = values.Get(key) == "true"
		default:
			mysqlConf.Params[key] = values.Get(key)
		}
	}

	return mysqlConf.FormatDSN(), nil
}

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	dsn, err := DSN(conf)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
