package config

import (
	"github.com/blues/fundme/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Campaign CampaignConfig `mapstructure:"campaign"`
	Vault    VaultConfig    `mapstructure:"vault"`
	Ethereum EthereumConfig `mapstructure:"ethereum"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// CampaignConfig 活动参数
type CampaignConfig struct {
	Owner        string `mapstructure:"owner"`         // 拥有者地址
	Goal         string `mapstructure:"goal"`          // 募集目标（基础单位，十进制字符串）
	Duration     int64  `mapstructure:"duration"`      // 募集时长（秒）
	LockPeriod   int64  `mapstructure:"lock_period"`   // 提取锁定期（秒）
	TokenAddress string `mapstructure:"token_address"` // 唯一支持的代币地址
}

// VaultConfig 资产托管配置
type VaultConfig struct {
	Mode     string `mapstructure:"mode"`     // memory 或 ethereum
	Treasury string `mapstructure:"treasury"` // memory 模式下的托管账户地址
}

// EthereumConfig 链端配置
type EthereumConfig struct {
	RpcUrl        string `mapstructure:"rpc_url"`       // RPC节点URL
	ChainId       int64  `mapstructure:"chain_id"`      // 链ID
	PrivateKey    string `mapstructure:"private_key"`   // 金库账户私钥
	Confirmations uint64 `mapstructure:"confirmations"` // 交易确认数
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"`  // 终态轮询间隔（秒）
	PoolSize int `mapstructure:"pool_size"` // 事件落库协程池大小
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/fundme")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "fundme")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("campaign.goal", "10000000000000000000") // 10 ETH
	viper.SetDefault("campaign.duration", 604800)             // 7天
	viper.SetDefault("campaign.lock_period", 3600)            // 1小时
	viper.SetDefault("vault.mode", "memory")
	viper.SetDefault("ethereum.chain_id", 1)
	viper.SetDefault("ethereum.confirmations", 12)
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("task.pool_size", 4)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
