// Copyright 2020 Qiniu Cloud (qiniu.com)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package utils

import (
	"log"
	"os"

	qconfig "github.com/qiniu/x/config"

	"github.com/solutions/ai-interview/internal/protodef/errors"
)

var (
	DefaultConf Config
)

func InitConf(configFilePath string) {
	err := qconfig.LoadFile(&DefaultConf, configFilePath)
	if err != nil {
		log.Fatalf("failed to load config file, error %v", err)
	}
	if err := DefaultConf.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
}

// MongoConfig mongo 数据库配置。
type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// GeminiConfig 文本补全服务配置。问题生成和面试评估共用一个模型。
type GeminiConfig struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
	// TimeoutSecond 单次补全请求的超时时间。
	TimeoutSecond int `json:"timeout_s"`
}

// MailConfig 发送邮件的配置。
type MailConfig struct {
	Enabled             bool   `json:"enabled"`
	SMTPHost            string `json:"smtp_host"`
	SMTPPort            int    `json:"smtp_port"`
	From                string `json:"from"`
	Username            string `json:"username"`
	Password            string `json:"password"`
	RetryTimes          int    `json:"retry_times"`
	RetryIntervalSecond int    `json:"retry_interval_s"`
}

// SessionConfig 面试会话的登录与token策略。
type SessionConfig struct {
	// TokenExpireSecond 登录token的有效时间，默认3小时。
	TokenExpireSecond int `json:"token_expire_s"`
	// AllowInterviewIDFallback 允许validate接口将未签名输入当作面试ID处理。
	// 这是给邮件直达链接用的低信任路径，默认关闭。
	AllowInterviewIDFallback bool `json:"allow_interview_id_fallback"`
}

// IntegrationConfig 外部招聘平台对接配置。
type IntegrationConfig struct {
	// APIKey 对接方调用integration接口时需携带的X-Api-Key。
	APIKey string `json:"api_key"`
	// InterviewExpireHour 面试链接的有效时长，默认24小时。
	InterviewExpireHour int `json:"interview_expire_h"`
}

// Config 后端配置。
type Config struct {
	// debug等级，为1时输出info/warn/error日志，为0除以上外还输出debug日志
	DebugLevel int    `json:"debug_level"`
	ListenAddr string `json:"listen_addr"`
	// 前端页面host，用于拼接面试登录链接
	FrontendUrlHost string `json:"frontend_url_host"`

	Mongo       *MongoConfig      `json:"mongo"`
	Gemini      *GeminiConfig     `json:"gemini"`
	Mail        *MailConfig       `json:"mail"`
	Session     SessionConfig     `json:"session"`
	Integration IntegrationConfig `json:"integration"`

	JwtKey string `json:"jwt_key"`
}

// Validate 进程启动时校验必需的secret。缺失视作配置错误，直接拒绝启动。
func (c *Config) Validate() error {
	if c.JwtKey == "" {
		return &errors.ServerError{Code: errors.ServerErrorConfiguration, Summary: "jwt_key is required"}
	}
	if c.Mongo == nil || c.Mongo.URI == "" {
		return &errors.ServerError{Code: errors.ServerErrorConfiguration, Summary: "mongo.uri is required"}
	}
	if c.Gemini == nil || c.Gemini.APIKey == "" {
		return &errors.ServerError{Code: errors.ServerErrorConfiguration, Summary: "gemini.api_key is required"}
	}
	return nil
}

// NewSample 返回样例配置。
func NewSample() *Config {
	return &Config{
		DebugLevel: 0,
		ListenAddr: ":8080",
		Mongo: &MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "ai_interview_test",
		},
		Gemini: &GeminiConfig{
			APIKey:        os.Getenv("GEMINI_API_KEY"),
			Model:         "gemini-1.5-flash",
			TimeoutSecond: 30,
		},
		Mail: &MailConfig{
			Enabled: false,
		},
		Session: SessionConfig{
			TokenExpireSecond: 3 * 60 * 60,
		},
		Integration: IntegrationConfig{
			APIKey:              os.Getenv("INTEGRATION_API_KEY"),
			InterviewExpireHour: 24,
		},
		JwtKey: "dev-secret-key",
	}
}
