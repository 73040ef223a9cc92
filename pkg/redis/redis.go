package redis

import (
	"context"
	"crypto/tls"
	"runtime"
	"strings"
	"time"

	"github.com/LambdaTest/knapsack/config"
	"github.com/LambdaTest/knapsack/pkg/constants"
	"github.com/LambdaTest/knapsack/pkg/core"
	"github.com/LambdaTest/knapsack/pkg/lumber"
	"github.com/go-redis/redis/v8"
)

const minClusterNodes = 2

type redisDB struct {
	client redis.UniversalClient
}

// New initializes a pool redis client connections.
func New(ctx context.Context, cfg *config.Config, logger lumber.Logger) (core.RedisDB, error) {
	options := universalOptions(cfg)
	if len(options.Addrs) >= minClusterNodes {
		logger.Debugf("Creating Redis Cluster Client")
	} else {
		logger.Debugf("Creating Redis Client")
	}

	// if the number of Addrs is two or more, a ClusterClient is returned
	// otherwise a single-node Client is returned.
	client := redis.NewUniversalClient(options)

	// ping the redis to check the connection.
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, err
	}
	logger.Infof("Redis connection created successfully.")

	return &redisDB{
		client: client,
	}, nil
}

func universalOptions(cfg *config.Config) *redis.UniversalOptions {
	options := &redis.UniversalOptions{
		Addrs:              strings.Split(cfg.Redis.Addr, ","),
		IdleTimeout:        5 * time.Minute,
		IdleCheckFrequency: 1 * time.Minute,
		// reports are read in bursts while a plan loads its history
		PoolSize:   4 * runtime.GOMAXPROCS(0),
		MaxRetries: 3,
	}
	if cfg.Env != constants.Dev {
		options.Username = cfg.Redis.Username
		options.Password = cfg.Redis.Password
		if cfg.Redis.TLS {
			options.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}
	}
	return options
}

// Client exposes redis client interface
func (r *redisDB) Client() redis.UniversalClient {
	return r.client
}
