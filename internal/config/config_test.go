package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 5000, Mode: "release"},
		AI:      AIConfig{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o"},
		Chat:    ChatConfig{MaxMessageLength: 1000},
		Storage: StorageConfig{Backend: "memory"},
	}
}

func TestConfig_Validate(t *testing.T) {
	Convey("Validate catches misconfiguration", t, func() {
		Convey("a valid config passes", func() {
			So(validConfig().Validate(), ShouldBeNil)
		})

		Convey("invalid port is rejected", func() {
			cfg := validConfig()
			cfg.Server.Port = 0
			So(cfg.Validate(), ShouldNotBeNil)

			cfg.Server.Port = 70000
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("invalid mode is rejected", func() {
			cfg := validConfig()
			cfg.Server.Mode = "production"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("missing API key is rejected", func() {
			cfg := validConfig()
			cfg.AI.APIKey = ""
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("storage backend must be known", func() {
			cfg := validConfig()
			cfg.Storage.Backend = "postgres"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("mongo backend requires a URI", func() {
			cfg := validConfig()
			cfg.Storage.Backend = "mongo"
			So(cfg.Validate(), ShouldNotBeNil)

			cfg.Mongo.URI = "mongodb://localhost:27017"
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("redis backend requires an address", func() {
			cfg := validConfig()
			cfg.Storage.Backend = "redis"
			So(cfg.Validate(), ShouldNotBeNil)

			cfg.Redis.Addr = "localhost:6379"
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("non-positive message length is rejected", func() {
			cfg := validConfig()
			cfg.Chat.MaxMessageLength = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})
}
