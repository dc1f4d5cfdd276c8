package configs

import (
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type configs struct {
	Service  ServiceConfig  `yaml:"service"`
	Logs     LogsConfig     `yaml:"logs"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	MongoDB  MongoDBConfig  `yaml:"mongodb"`
	S3       S3Config       `yaml:"s3"`
	Email    EmailConfig    `yaml:"email"`
	Openai   OpenaiConfig   `yaml:"openai"`
	Register RegisterConfig `yaml:"register"`
	Report   ReportConfig   `yaml:"report"`
}

var Configs configs

func Init(ConfigPath *string) {
	var configPath string
	if ConfigPath == nil || *ConfigPath == "" {
		_, b, _, _ := runtime.Caller(0)
		BasePath := filepath.Dir(b)
		configPath = BasePath + "/file/configs.yaml"
	} else {
		configPath = *ConfigPath
	}
	load(configPath)

	applyDefaults()
	InitLogger()
}

func load(ConfigsPath string) {
	yamlFile, err := os.ReadFile(ConfigsPath)
	if err != nil {
		Logger.Error("Read config file", zap.Error(err))
	}
	err = yaml.Unmarshal(yamlFile, &Configs)
	if err != nil {
		Logger.Error("Unmarshal", zap.Error(err))
	}
}

func applyDefaults() {
	if len(Configs.Service.CorsOrigins) == 0 {
		Configs.Service.CorsOrigins = []string{"http://localhost:3000"}
	}
	if len(Configs.Register.Teams) == 0 {
		Configs.Register.Teams = []string{"UG", "PG/PRO", "PhD"}
	}
	if Configs.Register.StorageTimeoutSeconds <= 0 {
		Configs.Register.StorageTimeoutSeconds = 5
	}
	if Configs.Report.IntervalHours <= 0 {
		Configs.Report.IntervalHours = 168
	}
	if Configs.Openai.Model == "" {
		Configs.Openai.Model = "google/gemini-2.0-flash-lite-preview-02-05:free"
	}
	if Configs.Openai.BaseURL == "" {
		Configs.Openai.BaseURL = "https://openrouter.ai/api/v1"
	}
}
