package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Import   ImportConfig   `mapstructure:"import"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CalendarConfig 校历同步配置
//
// 学年推断规则属于校历数据而非算法：学校调整行事历时只改配置。
//   - YearPivotMonth: 学年分界月。事件月份 >= 分界月时民国学年 = 公历年-1911，
//     否则 = 公历年-1912（跨年学期的下半段归属前一学年）。
//   - FirstTermStartMonths / SecondTermStartMonths: 无学年学期标注的
//     开学类事件按所在月份归入第 1 / 第 2 学期。
type CalendarConfig struct {
	ICSURL                string        `mapstructure:"ics_url"`
	CacheTTL              time.Duration `mapstructure:"cache_ttl"`
	YearPivotMonth        int           `mapstructure:"year_pivot_month"`
	FirstTermStartMonths  []int         `mapstructure:"first_term_start_months"`
	SecondTermStartMonths []int         `mapstructure:"second_term_start_months"`
	SeedTerms             []SeedTerm    `mapstructure:"seed_terms"`
}

// SeedTerm 启动时预置的学期条目（日期格式 2006-01-02）
type SeedTerm struct {
	Year      int    `mapstructure:"year"`
	Term      int    `mapstructure:"term"`
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`
}

// ImportConfig 课程匯入配置
type ImportConfig struct {
	SessionCap      int `mapstructure:"session_cap"`       // 每门课程生成的课堂数上限
	MaxReportErrors int `mapstructure:"max_report_errors"` // 匯入结果中保留的错误条数
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "coursehub")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Taipei")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("calendar.cache_ttl", "6h")
	v.SetDefault("calendar.year_pivot_month", 8)
	v.SetDefault("calendar.first_term_start_months", []int{8, 9})
	v.SetDefault("calendar.second_term_start_months", []int{2, 3})

	v.SetDefault("import.session_cap", 18)
	v.SetDefault("import.max_report_errors", 10)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("COURSEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Calendar.YearPivotMonth < 1 || c.Calendar.YearPivotMonth > 12 {
		return fmt.Errorf("配置校验失败: calendar.year_pivot_month 必须在 1-12 之间")
	}
	if c.Import.SessionCap <= 0 {
		return fmt.Errorf("配置校验失败: import.session_cap 必须大于 0")
	}
	return nil
}
