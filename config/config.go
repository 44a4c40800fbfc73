package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config 存储所有配置信息
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	// 数据库配置
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	// Redis配置（可选，用于每日分析额度计数）
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Gemini API配置
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// 前端跨域来源
	FrontendOrigin string `mapstructure:"FRONTEND_ORIGIN"`

	// 是否开启语音反思（同一套代码路径，由部署配置决定）
	AudioSupported bool `mapstructure:"AUDIO_SUPPORTED"`

	// 每用户每日分析额度，0 表示不限制
	DailyAnalysisQuota int `mapstructure:"DAILY_ANALYSIS_QUOTA"`
}

// LoadConfig 从环境变量或配置文件加载配置
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("DAILY_ANALYSIS_QUOTA", 20)

	err = viper.ReadInConfig()
	if err != nil {
		// 允许配置文件不存在，此时会从环境变量中读取
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	// 缺少模型密钥时拒绝启动
	if config.GeminiAPIKey == "" {
		err = fmt.Errorf("缺少 GEMINI_API_KEY 配置")
	}
	return
}

// GetDBConnString 返回数据库连接字符串
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetRedisConnString 返回Redis连接字符串
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// RedisConfigured Redis配置是否存在
func (c *Config) RedisConfigured() bool {
	return c.RedisHost != ""
}
