package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/minicloud/portal/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"PORTAL_CONFIG",
	"PORTAL_ADDR",
	"PORTAL_LINK_HOST",
	"PORTAL_SOURCE",
	"PORTAL_DOCKER_SOCKET",
	"PORTAL_TIMEOUT",
	"PORTAL_LOG_LEVEL",
	"PORTAL_LOG_FORMAT",
	"PORTAL_METRICS",
	"PORTAINER_URL",
	"PORTAINER_API_TOKEN",
	"PORTAINER_ENDPOINT_ID",
}

func clearConfigEnvVars() {
	for _, key := range configEnvVars {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	t.Cleanup(clearConfigEnvVars)

	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load("")

			convey.Convey("Then the documented defaults apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, "0.0.0.0:8600")
				convey.So(cfg.PortainerURL, convey.ShouldEqual, "http://localhost:9000")
				convey.So(cfg.APIToken, convey.ShouldBeEmpty)
				convey.So(cfg.EndpointID, convey.ShouldEqual, 1)
				convey.So(cfg.Timeout, convey.ShouldEqual, 10*time.Second)
				convey.So(cfg.LinkHost, convey.ShouldEqual, "localhost")
				convey.So(cfg.Source, convey.ShouldEqual, config.SourcePortainer)
				convey.So(cfg.Metrics, convey.ShouldBeTrue)
				convey.So(cfg.MockMode(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When Portainer variables are set", func() {
			_ = os.Setenv("PORTAINER_URL", "http://portainer.lan:9000/")
			_ = os.Setenv("PORTAINER_API_TOKEN", "ptr_secret")
			_ = os.Setenv("PORTAINER_ENDPOINT_ID", "3")

			cfg, err := config.Load("")

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PortainerURL, convey.ShouldEqual, "http://portainer.lan:9000")
				convey.So(cfg.APIToken, convey.ShouldEqual, "ptr_secret")
				convey.So(cfg.EndpointID, convey.ShouldEqual, 3)
				convey.So(cfg.MockMode(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When portal variables are set", func() {
			_ = os.Setenv("PORTAL_ADDR", "127.0.0.1:9999")
			_ = os.Setenv("PORTAL_TIMEOUT", "3s")
			_ = os.Setenv("PORTAL_LINK_HOST", "minicloud.local")
			_ = os.Setenv("PORTAL_METRICS", "false")
			_ = os.Setenv("PORTAL_LOG_FORMAT", "json")

			cfg, err := config.Load("")

			convey.Convey("Then they are parsed into typed fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, "127.0.0.1:9999")
				convey.So(cfg.Timeout, convey.ShouldEqual, 3*time.Second)
				convey.So(cfg.LinkHost, convey.ShouldEqual, "minicloud.local")
				convey.So(cfg.Metrics, convey.ShouldBeFalse)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When a variable is set but empty", func() {
			_ = os.Setenv("PORTAINER_URL", "")

			cfg, err := config.Load("")

			convey.Convey("Then the default is kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PortainerURL, convey.ShouldEqual, "http://localhost:9000")
			})
		})

		convey.Convey("When a YAML file is given", func() {
			path := filepath.Join(t.TempDir(), "portal.yaml")
			content := "addr: \":8700\"\nsource: docker\nportainer_endpoint_id: 2\n"
			convey.So(os.WriteFile(path, []byte(content), 0o644), convey.ShouldBeNil)
			_ = os.Setenv("PORTAL_ADDR", ":8800")

			cfg, err := config.Load(path)

			convey.Convey("Then the file applies and env still wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Source, convey.ShouldEqual, config.SourceDocker)
				convey.So(cfg.EndpointID, convey.ShouldEqual, 2)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8800")
				convey.So(cfg.MockMode(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the YAML file is missing", func() {
			_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the source is unknown", func() {
			_ = os.Setenv("PORTAL_SOURCE", "kubernetes")

			_, err := config.Load("")

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the timeout is not positive", func() {
			_ = os.Setenv("PORTAL_TIMEOUT", "0s")

			_, err := config.Load("")

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
