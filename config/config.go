// config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Policy        PolicyConfiguration
	Redis         RedisConfiguration
	Elasticsearch ElasticsearchConfiguration
	Auth          AuthConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// PolicyConfiguration stores the location of the policy document
type PolicyConfiguration struct {
	File string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr string
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL string
}

// AuthConfiguration stores the token verification settings
type AuthConfiguration struct {
	JWTSecret string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.AutomaticEnv() // read in environment variables that match

	// Set default configurations
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("policy.file", "policies/policy.json")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("elasticsearch.url", "")
	viper.SetDefault("log.dir", "logging")
	viper.SetDefault("ratelimit.requests", 100)
	viper.SetDefault("ratelimit.window", "1m")
	viper.SetDefault("auth.jwtSecret", "")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}
