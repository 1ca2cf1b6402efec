package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 结构体用于存储客户端的配置信息
type Config struct {
	APIBaseURL     string
	TokenPath      string
	LogLevel       string
	RequestTimeout time.Duration
	GetRetries     int // 幂等 GET 请求的重试次数（1 表示不重试）
	PageSize       int
	Debug          bool
}

// AppConfig 是全局配置变量
var AppConfig Config

// Init 函数用于初始化配置
func Init() {
	// 加载 .env 文件
	err := godotenv.Load()
	if err != nil {
		log.Printf("警告：无法加载 .env 文件: %v", err)
	}

	// 从环境变量中读取配置
	AppConfig = Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:9090/api"),
		TokenPath:      getEnv("TOKEN_PATH", defaultTokenPath()),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		GetRetries:     getEnvAsInt("GET_RETRIES", 1),
		PageSize:       getEnvAsInt("PAGE_SIZE", 10),
		Debug:          getEnvAsBool("DEBUG", false),
	}

	validateConfig()

	if AppConfig.Debug {
		log.Println("客户端运行在调试模式")
	}
	log.Printf("配置加载完成。API 地址：%s", AppConfig.APIBaseURL)
}

// defaultTokenPath 返回令牌文件的默认存放位置
func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".alumni-token"
	}
	return filepath.Join(dir, "alumni-client", "token")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func validateConfig() {
	if AppConfig.APIBaseURL == "" {
		log.Fatal("错误：API_BASE_URL 未设置")
	}
	if AppConfig.GetRetries < 1 {
		AppConfig.GetRetries = 1
	}
	if AppConfig.PageSize < 1 {
		AppConfig.PageSize = 10
	}
}
